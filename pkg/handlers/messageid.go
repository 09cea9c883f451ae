package handlers

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/getmockd/wsconfig/pkg/handler"
)

// WS-Addressing names.
const (
	AddressingNamespace = "http://www.w3.org/2005/08/addressing"
	AddressingPrefix    = "wsa"
)

// Message properties set by MessageID.
const (
	PropMessageID = "addressing.messageID"
	PropRelatesTo = "addressing.relatesTo"
)

// MessageID adds a WS-Addressing MessageID header to outbound messages that
// lack one and records the RelatesTo header of inbound messages.
type MessageID struct {
	newID func() string
}

// NewMessageID creates a MessageID handler generating urn:uuid identifiers.
func NewMessageID() *MessageID {
	return &MessageID{newID: func() string { return "urn:uuid:" + uuid.NewString() }}
}

// Name implements handler.Named.
func (h *MessageID) Name() string { return ClassMessageID }

// HandleMessage implements handler.ProtocolHandler.
func (h *MessageID) HandleMessage(mc *handler.MessageContext) (bool, error) {
	m := mc.Message()
	if m == nil {
		return true, nil
	}

	if !mc.Outbound() {
		if rel := addressingHeader(m.Headers(), "RelatesTo"); rel != nil {
			mc.Set(PropRelatesTo, strings.TrimSpace(rel.Text()))
		}
		return true, nil
	}

	if existing := addressingHeader(m.Headers(), "MessageID"); existing != nil {
		mc.Set(PropMessageID, strings.TrimSpace(existing.Text()))
		return true, nil
	}

	id := h.newID()
	elem := etree.NewElement(AddressingPrefix + ":MessageID")
	elem.CreateAttr("xmlns:"+AddressingPrefix, AddressingNamespace)
	elem.SetText(id)
	m.AddHeader(elem)
	mc.Set(PropMessageID, id)
	return true, nil
}

// HandleFault implements handler.ProtocolHandler.
func (h *MessageID) HandleFault(mc *handler.MessageContext) (bool, error) {
	return h.HandleMessage(mc)
}

// Close implements handler.Handler.
func (h *MessageID) Close(*handler.MessageContext) {}

func addressingHeader(headers []*etree.Element, local string) *etree.Element {
	for _, e := range headers {
		if e.Tag == local && e.NamespaceURI() == AddressingNamespace {
			return e
		}
	}
	return nil
}
