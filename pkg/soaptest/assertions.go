package soaptest

import (
	"net/http"
	"strings"
	"testing"

	"github.com/getmockd/wsconfig/pkg/soap"
)

// Request is a recorded SOAP request for assertions.
type Request struct {
	// Operation is the local name of the payload element.
	Operation string
	// SOAPAction is the SOAP 1.1 SOAPAction header, unquoted.
	SOAPAction string
	// ContentType is the HTTP Content-Type header.
	ContentType string
	// Headers are the HTTP request headers (single value per key)
	Headers map[string]string
	// Body is the raw request envelope
	Body string
	// Message is the parsed envelope.
	Message *soap.Message
}

func newRequest(r *http.Request, body []byte, msg *soap.Message) Request {
	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	req := Request{
		SOAPAction:  strings.Trim(r.Header.Get("SOAPAction"), `"`),
		ContentType: r.Header.Get("Content-Type"),
		Headers:     headers,
		Body:        string(body),
		Message:     msg,
	}
	if p := msg.Payload(); p != nil {
		req.Operation = p.Tag
	}
	return req
}

// AssertBodyContains asserts that the request envelope contains substr.
func (r *Request) AssertBodyContains(t testing.TB, substr string) {
	t.Helper()

	if !strings.Contains(r.Body, substr) {
		t.Errorf("request body does not contain %q\nbody: %s", substr, r.Body)
	}
}

// AssertHeaderBlock asserts that the envelope carries a header block with
// the given local name.
func (r *Request) AssertHeaderBlock(t testing.TB, local string) {
	t.Helper()

	for _, h := range r.Message.Headers() {
		if h.Tag == local {
			return
		}
	}
	t.Errorf("request has no %s header block\nbody: %s", local, r.Body)
}

// AssertNoHeaderBlock asserts that the envelope has no header block with
// the given local name.
func (r *Request) AssertNoHeaderBlock(t testing.TB, local string) {
	t.Helper()

	for _, h := range r.Message.Headers() {
		if h.Tag == local {
			t.Errorf("request has unexpected %s header block", local)
			return
		}
	}
}

// AssertXPath asserts that the value at xpath in the envelope matches.
func (r *Request) AssertXPath(t testing.TB, xpath, expected string) {
	t.Helper()

	actual := r.Message.XPath(xpath)
	if actual != expected {
		t.Errorf("xpath %q mismatch\nexpected: %q\nactual: %q", xpath, expected, actual)
	}
}

// AssertHeader asserts that the request had the specified HTTP header with
// the expected value.
func (r *Request) AssertHeader(t testing.TB, key, expected string) {
	t.Helper()

	actual, ok := r.Headers[key]
	if !ok {
		// Try case-insensitive match
		for k, v := range r.Headers {
			if strings.EqualFold(k, key) {
				actual = v
				ok = true
				break
			}
		}
	}

	if !ok {
		t.Errorf("request does not have header %q", key)
		return
	}

	if actual != expected {
		t.Errorf("header %q value mismatch\nexpected: %q\nactual: %q", key, expected, actual)
	}
}

// AssertSOAPVersion asserts the envelope version.
func (r *Request) AssertSOAPVersion(t testing.TB, expected soap.SOAPVersion) {
	t.Helper()

	if r.Message.Version() != expected {
		t.Errorf("SOAP version mismatch\nexpected: %s\nactual: %s", expected, r.Message.Version())
	}
}
