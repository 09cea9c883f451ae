package util

import "unicode/utf8"

// MaxLogBodySize is the default number of envelope bytes kept in log entries.
const MaxLogBodySize = 10 * 1024

const truncatedSuffix = "...(truncated)"

// TruncateBody shortens data to at most maxSize bytes for logging, cutting
// at a rune boundary and marking the cut. A maxSize <= 0 selects
// MaxLogBodySize.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(data) <= maxSize {
		return data
	}
	cut := maxSize
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return data[:cut] + truncatedSuffix
}
