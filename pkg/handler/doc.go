// Package handler defines the message-handler capability shared by bindings,
// clients and the configurer.
//
// Two handler variants exist:
//   - ProtocolHandler sees the whole SOAP envelope through a MessageContext.
//   - LogicalHandler sees only the payload through a LogicalContext.
//
// Both share the Handler base, which only closes the handler at the end of an
// exchange. Values implementing neither variant are not handlers; Classify
// reports which variant a value implements.
//
// # Config Delegates
//
// Handlers installed from a client configuration are wrapped in a
// ConfigDelegate or LogicalConfigDelegate. The wrapper carries a Tag marking
// it as config-owned and recording whether it belongs to the pre or post
// group, and forwards every call unchanged. IsConfigHandler lets the
// configurer strip its own handlers before applying a configuration again.
//
// # Execution
//
// An Execution runs one exchange through a chain:
//
//	exec := handler.NewExecution(chain, logger)
//	defer exec.Close(mc)
//	ok, err := exec.HandleMessage(mc)
//
// Outbound messages visit handlers in chain order, inbound messages in
// reverse order. A handler returning false stops the pass; Close is called on
// every handler that was invoked, last invoked first.
package handler
