package soaptest

import (
	"fmt"
	"net/http"

	"github.com/beevik/etree"

	"github.com/getmockd/wsconfig/pkg/soap"
)

// ReplyBuilder builds replies using a fluent API.
type ReplyBuilder struct {
	endpoint *Endpoint
	reply    *reply
	err      error // First error encountered during building
}

// setError records the first error encountered during building.
// Subsequent errors are ignored (first error wins pattern).
func (b *ReplyBuilder) setError(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns any error encountered during building.
func (b *ReplyBuilder) Err() error {
	return b.err
}

// WithStatus sets the HTTP response status code.
// Default is 200 (OK), or 500 for faults.
func (b *ReplyBuilder) WithStatus(status int) *ReplyBuilder {
	b.reply.status = status
	return b
}

// WithPayload sets the reply payload from an XML fragment.
func (b *ReplyBuilder) WithPayload(xml string) *ReplyBuilder {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		b.setError(fmt.Errorf("WithPayload: invalid XML: %w", err))
		return b
	}
	if doc.Root() == nil {
		b.setError(fmt.Errorf("WithPayload: no root element"))
		return b
	}
	b.reply.payload = doc.Root()
	return b
}

// WithFault replies with a fault. Codes are translated for SOAP 1.2
// requests.
func (b *ReplyBuilder) WithFault(code, message string) *ReplyBuilder {
	b.reply.fault = &soap.Fault{Code: code, Message: message}
	return b
}

// WithHeader adds an HTTP response header.
func (b *ReplyBuilder) WithHeader(key, value string) *ReplyBuilder {
	if b.reply.headers == nil {
		b.reply.headers = make(map[string]string)
	}
	b.reply.headers[key] = value
	return b
}

// RelatesTo adds a WS-Addressing RelatesTo header carrying the request's
// MessageID, when it has one.
func (b *ReplyBuilder) RelatesTo() *ReplyBuilder {
	b.reply.relatesTo = true
	return b
}

// OneWay replies with an empty 202 Accepted.
func (b *ReplyBuilder) OneWay() *ReplyBuilder {
	b.reply.oneWay = true
	b.reply.status = http.StatusAccepted
	return b
}

// Times limits the reply to n uses. Zero means unlimited.
func (b *ReplyBuilder) Times(n int) *ReplyBuilder {
	b.reply.times = n
	return b
}

// Once is a convenience method for Times(1).
func (b *ReplyBuilder) Once() *ReplyBuilder {
	return b.Times(1)
}

// Twice is a convenience method for Times(2).
func (b *ReplyBuilder) Twice() *ReplyBuilder {
	return b.Times(2)
}

// Reply registers the reply. A building error fails the test.
func (b *ReplyBuilder) Reply() {
	b.endpoint.t.Helper()
	if b.err != nil {
		b.endpoint.t.Fatalf("soaptest: %v", b.err)
		return
	}
	b.endpoint.addReply(b.reply)
}
