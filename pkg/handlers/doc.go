// Package handlers provides the framework handler classes available to
// every client configuration through the server integration loader.
//
// Register binds them to their class names:
//
//	logging        protocol handler logging every envelope
//	message-id     protocol handler adding a WS-Addressing MessageID header
//	payload-guard  logical handler evaluating an expression against the payload
package handlers
