// Package util provides small shared helpers.
//
//   - TruncateBody caps message bodies for safe logging
package util
