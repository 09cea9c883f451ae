package soap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Prefix is the namespace prefix used for envelopes built by NewMessage.
const Prefix = "soap"

// Errors returned by ParseMessage.
var (
	ErrEmptyEnvelope   = errors.New("empty document")
	ErrInvalidEnvelope = errors.New("not a SOAP envelope")
	ErrMissingBody     = errors.New("SOAP Body not found")
)

// Message is a SOAP envelope backed by an etree document.
type Message struct {
	doc     *etree.Document
	version SOAPVersion
}

// NewMessage creates an empty envelope (Header and Body) for the version.
func NewMessage(version SOAPVersion) *Message {
	if version != SOAP12 {
		version = SOAP11
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	env := doc.CreateElement(Prefix + ":Envelope")
	env.CreateAttr("xmlns:"+Prefix, version.Namespace())
	env.CreateElement(Prefix + ":Header")
	env.CreateElement(Prefix + ":Body")

	return &Message{doc: doc, version: version}
}

// ParseMessage parses a SOAP envelope. The version is taken from the
// envelope namespace.
func ParseMessage(data []byte) (*Message, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("invalid XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, ErrEmptyEnvelope
	}
	if root.Tag != "Envelope" {
		return nil, fmt.Errorf("%w: root element is %s", ErrInvalidEnvelope, root.FullTag())
	}

	version, ok := VersionForNamespace(root.NamespaceURI())
	if !ok {
		return nil, fmt.Errorf("%w: unknown namespace %q", ErrInvalidEnvelope, root.NamespaceURI())
	}

	m := &Message{doc: doc, version: version}
	if m.Body() == nil {
		return nil, ErrMissingBody
	}
	return m, nil
}

// Version returns the SOAP version of the envelope.
func (m *Message) Version() SOAPVersion {
	return m.version
}

// Document returns the underlying document.
func (m *Message) Document() *etree.Document {
	return m.doc
}

// Envelope returns the root element.
func (m *Message) Envelope() *etree.Element {
	return m.doc.Root()
}

// Body returns the Body element or nil.
func (m *Message) Body() *etree.Element {
	return m.child("Body")
}

// Header returns the Header element, creating it ahead of the Body when
// create is set and the envelope has none.
func (m *Message) Header(create bool) *etree.Element {
	if h := m.child("Header"); h != nil || !create {
		return h
	}

	env := m.Envelope()
	h := etree.NewElement(m.prefix() + "Header")
	if body := m.Body(); body != nil {
		env.InsertChildAt(body.Index(), h)
	} else {
		env.AddChild(h)
	}
	return h
}

// Headers returns the header blocks.
func (m *Message) Headers() []*etree.Element {
	h := m.child("Header")
	if h == nil {
		return nil
	}
	return h.ChildElements()
}

// AddHeader appends a header block to the envelope.
func (m *Message) AddHeader(block *etree.Element) {
	m.Header(true).AddChild(block)
}

// Payload returns the first child element of the Body, or nil.
func (m *Message) Payload() *etree.Element {
	body := m.Body()
	if body == nil {
		return nil
	}
	children := body.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// SetPayload replaces the Body content with elem. A nil elem empties the Body.
func (m *Message) SetPayload(elem *etree.Element) {
	body := m.Body()
	if body == nil {
		body = m.Envelope().CreateElement(m.prefix() + "Body")
	}
	for _, c := range body.ChildElements() {
		body.RemoveChild(c)
	}
	if elem != nil {
		body.AddChild(elem)
	}
}

// IsFault reports whether the Body carries a Fault.
func (m *Message) IsFault() bool {
	p := m.Payload()
	return p != nil && p.Tag == "Fault"
}

// Fault returns the fault carried by the Body, or nil.
// SOAP 1.2 codes and reasons are flattened into the version-independent form.
func (m *Message) Fault() *Fault {
	if !m.IsFault() {
		return nil
	}
	f := m.Payload()

	if m.version == SOAP12 {
		fault := &Fault{}
		if v := f.FindElement("./Code/Value"); v != nil {
			fault.Code = strings.TrimSpace(v.Text())
		}
		if t := f.FindElement("./Reason/Text"); t != nil {
			fault.Message = strings.TrimSpace(t.Text())
		}
		fault.Detail = innerXML(f.SelectElement("Detail"))
		return fault
	}

	fault := &Fault{}
	if c := f.SelectElement("faultcode"); c != nil {
		fault.Code = strings.TrimSpace(c.Text())
	}
	if s := f.SelectElement("faultstring"); s != nil {
		fault.Message = strings.TrimSpace(s.Text())
	}
	fault.Detail = innerXML(f.SelectElement("detail"))
	return fault
}

// ContentType returns the HTTP content type for the envelope.
func (m *Message) ContentType() string {
	return m.version.ContentType()
}

// Bytes serializes the envelope.
func (m *Message) Bytes() ([]byte, error) {
	return m.doc.WriteToBytes()
}

// String serializes the envelope, returning an empty string on error.
func (m *Message) String() string {
	s, err := m.doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func (m *Message) child(tag string) *etree.Element {
	env := m.Envelope()
	if env == nil {
		return nil
	}
	for _, c := range env.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func (m *Message) prefix() string {
	if env := m.Envelope(); env != nil && env.Space != "" {
		return env.Space + ":"
	}
	return ""
}

// innerXML renders the child elements of elem, or its text when it has none.
func innerXML(elem *etree.Element) string {
	if elem == nil {
		return ""
	}
	children := elem.ChildElements()
	if len(children) == 0 {
		return strings.TrimSpace(elem.Text())
	}

	doc := etree.NewDocument()
	for _, c := range children {
		doc.AddChild(c.Copy())
	}
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
