// Package binding models the live client binding that carries a handler
// chain, together with the protocol-binding identifiers used to filter
// configured handler chains.
package binding

import (
	"strings"
	"sync"

	"github.com/getmockd/wsconfig/pkg/handler"
	"github.com/getmockd/wsconfig/pkg/soap"
)

// Binding IDs.
const (
	SOAP11HTTP     = "http://schemas.xmlsoap.org/wsdl/soap/http"
	SOAP12HTTP     = "http://www.w3.org/2003/05/soap/bindings/HTTP/"
	SOAP11HTTPMTOM = "http://schemas.xmlsoap.org/wsdl/soap/http?mtom=true"
	SOAP12HTTPMTOM = "http://www.w3.org/2003/05/soap/bindings/HTTP/?mtom=true"
	XMLHTTP        = "http://www.w3.org/2004/08/wsdl/http"
)

// Protocol-binding tokens as written in handler-chain declarations.
const (
	TokenSOAP11HTTP     = "##SOAP11_HTTP"
	TokenSOAP12HTTP     = "##SOAP12_HTTP"
	TokenSOAP11HTTPMTOM = "##SOAP11_HTTP_MTOM"
	TokenSOAP12HTTPMTOM = "##SOAP12_HTTP_MTOM"
	TokenXMLHTTP        = "##XML_HTTP"
)

// Aliases accepted by ParseID in place of a full binding ID.
var aliases = map[string]string{
	"soap11":      SOAP11HTTP,
	"soap12":      SOAP12HTTP,
	"soap11-mtom": SOAP11HTTPMTOM,
	"soap12-mtom": SOAP12HTTPMTOM,
	"xml":         XMLHTTP,
}

// ProtocolToken returns the protocol-binding token for a binding ID, or ""
// for an unknown ID.
func ProtocolToken(bindingID string) string {
	switch bindingID {
	case SOAP11HTTP:
		return TokenSOAP11HTTP
	case SOAP12HTTP:
		return TokenSOAP12HTTP
	case SOAP11HTTPMTOM:
		return TokenSOAP11HTTPMTOM
	case SOAP12HTTPMTOM:
		return TokenSOAP12HTTPMTOM
	case XMLHTTP:
		return TokenXMLHTTP
	default:
		return ""
	}
}

// KnownTokens returns every protocol-binding token.
func KnownTokens() []string {
	return []string{TokenSOAP11HTTP, TokenSOAP12HTTP, TokenSOAP11HTTPMTOM, TokenSOAP12HTTPMTOM, TokenXMLHTTP}
}

// IsKnownToken reports whether token is a protocol-binding token.
func IsKnownToken(token string) bool {
	for _, t := range KnownTokens() {
		if t == token {
			return true
		}
	}
	return false
}

// MatchProtocolBinding reports whether a handler chain with the given
// protocol-bindings filter applies to the current token. An empty filter
// matches everything; otherwise current must be one of the
// whitespace-separated entries.
func MatchProtocolBinding(current, filter string) bool {
	if strings.TrimSpace(filter) == "" {
		return true
	}
	for _, tok := range strings.Fields(filter) {
		if tok == current {
			return true
		}
	}
	return false
}

// ParseID resolves a binding ID or one of its short aliases (soap11,
// soap12, soap11-mtom, soap12-mtom, xml). ok is false for anything else.
func ParseID(s string) (id string, ok bool) {
	if ProtocolToken(s) != "" {
		return s, true
	}
	id, ok = aliases[strings.ToLower(s)]
	return id, ok
}

// SOAPVersion returns the envelope version used by a binding ID.
// Plain XML/HTTP bindings report SOAP 1.1.
func SOAPVersion(bindingID string) soap.SOAPVersion {
	switch bindingID {
	case SOAP12HTTP, SOAP12HTTPMTOM:
		return soap.SOAP12
	default:
		return soap.SOAP11
	}
}

// IsMTOM reports whether the binding ID enables MTOM.
func IsMTOM(bindingID string) bool {
	return bindingID == SOAP11HTTPMTOM || bindingID == SOAP12HTTPMTOM
}

// Binding is the live handler pipeline of a client for one protocol
// binding. The chain is copied on read and write, so a running exchange
// keeps its snapshot while the chain is replaced.
type Binding struct {
	id    string
	mu    sync.RWMutex
	chain []handler.Handler
}

// New creates a binding with an empty chain.
func New(id string) *Binding {
	return &Binding{id: id}
}

// BindingID returns the binding ID.
func (b *Binding) BindingID() string {
	return b.id
}

// HandlerChain returns a copy of the current chain.
func (b *Binding) HandlerChain() []handler.Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]handler.Handler, len(b.chain))
	copy(out, b.chain)
	return out
}

// SetHandlerChain replaces the chain with a copy of chain.
func (b *Binding) SetHandlerChain(chain []handler.Handler) {
	c := make([]handler.Handler, len(chain))
	copy(c, chain)
	b.mu.Lock()
	b.chain = c
	b.mu.Unlock()
}
