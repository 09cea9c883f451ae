package handler

import "fmt"

// Handler is the base of every chain element.
type Handler interface {
	// Close is called once at the end of an exchange on every handler that
	// took part in it.
	Close(mc *MessageContext)
}

// ProtocolHandler processes the complete SOAP envelope.
type ProtocolHandler interface {
	Handler

	// HandleMessage processes a normal message. Returning false stops the
	// current pass; a non-nil error aborts the exchange.
	HandleMessage(mc *MessageContext) (bool, error)

	// HandleFault processes a fault message.
	HandleFault(mc *MessageContext) (bool, error)
}

// LogicalHandler processes only the message payload.
type LogicalHandler interface {
	Handler

	// HandleMessage processes a normal message payload.
	HandleMessage(lc *LogicalContext) (bool, error)

	// HandleFault processes a fault payload.
	HandleFault(lc *LogicalContext) (bool, error)
}

// Named is implemented by handlers that report a display name.
type Named interface {
	Name() string
}

// Kind identifies a handler variant.
type Kind int

// Handler kinds.
const (
	KindNone Kind = iota
	KindLogical
	KindProtocol
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLogical:
		return "logical"
	case KindProtocol:
		return "protocol"
	default:
		return "none"
	}
}

// Classify reports which handler variant v implements. A value implementing
// LogicalHandler is logical even if it has other methods.
func Classify(v any) Kind {
	switch v.(type) {
	case LogicalHandler:
		return KindLogical
	case ProtocolHandler:
		return KindProtocol
	default:
		return KindNone
	}
}

// Name returns the display name of h: its Name method when present,
// otherwise its Go type.
func Name(h any) string {
	if n, ok := h.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", h)
}

// Names returns the display names of a chain.
func Names(chain []Handler) []string {
	names := make([]string, len(chain))
	for i, h := range chain {
		names[i] = Name(h)
	}
	return names
}
