package handler

import (
	"context"

	"github.com/beevik/etree"
	"github.com/getmockd/wsconfig/pkg/soap"
)

// Well-known message context properties.
const (
	PropEndpointAddress = "endpoint.address"
	PropBindingID       = "binding.id"
	PropSOAPAction      = "soap.action"
	PropHTTPStatus      = "http.status"
)

// MessageContext carries one message through a handler chain.
type MessageContext struct {
	ctx      context.Context
	message  *soap.Message
	outbound bool
	props    map[string]any
}

// NewMessageContext creates a context for msg travelling in the given
// direction. A nil ctx is replaced with context.Background().
func NewMessageContext(ctx context.Context, msg *soap.Message, outbound bool) *MessageContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &MessageContext{
		ctx:      ctx,
		message:  msg,
		outbound: outbound,
		props:    make(map[string]any),
	}
}

// Context returns the request context.
func (mc *MessageContext) Context() context.Context {
	return mc.ctx
}

// Message returns the SOAP message.
func (mc *MessageContext) Message() *soap.Message {
	return mc.message
}

// SetMessage replaces the SOAP message, switching the direction.
// Clients call it when the response arrives.
func (mc *MessageContext) SetMessage(msg *soap.Message, outbound bool) {
	mc.message = msg
	mc.outbound = outbound
}

// Outbound reports whether the message is being sent.
func (mc *MessageContext) Outbound() bool {
	return mc.outbound
}

// Get returns a property.
func (mc *MessageContext) Get(key string) (any, bool) {
	v, ok := mc.props[key]
	return v, ok
}

// GetString returns a string property, or "" when absent or not a string.
func (mc *MessageContext) GetString(key string) string {
	s, _ := mc.props[key].(string)
	return s
}

// Set stores a property. Properties live for the whole exchange.
func (mc *MessageContext) Set(key string, value any) {
	mc.props[key] = value
}

// Logical returns the payload-only view of the context.
func (mc *MessageContext) Logical() *LogicalContext {
	return &LogicalContext{mc: mc}
}

// LogicalContext is the view logical handlers get: the payload and the
// exchange properties, but not the envelope or headers.
type LogicalContext struct {
	mc *MessageContext
}

// Context returns the request context.
func (lc *LogicalContext) Context() context.Context {
	return lc.mc.ctx
}

// Outbound reports whether the message is being sent.
func (lc *LogicalContext) Outbound() bool {
	return lc.mc.outbound
}

// Payload returns the message payload or nil.
func (lc *LogicalContext) Payload() *etree.Element {
	if lc.mc.message == nil {
		return nil
	}
	return lc.mc.message.Payload()
}

// SetPayload replaces the message payload.
func (lc *LogicalContext) SetPayload(elem *etree.Element) {
	if lc.mc.message != nil {
		lc.mc.message.SetPayload(elem)
	}
}

// Get returns a property.
func (lc *LogicalContext) Get(key string) (any, bool) {
	return lc.mc.Get(key)
}

// Set stores a property.
func (lc *LogicalContext) Set(key string, value any) {
	lc.mc.Set(key, value)
}
