// Package soap provides the SOAP envelope model used by wsconfig clients and
// handlers.
//
// A Message wraps an etree document holding a SOAP 1.1 or SOAP 1.2 envelope.
// Protocol handlers work on the whole envelope (headers included) while
// logical handlers only see the payload, the first child of the Body.
//
// # Building a Request
//
//	msg := soap.NewMessage(soap.SOAP11)
//	payload := etree.NewElement("GetUser")
//	payload.CreateElement("id").SetText("42")
//	msg.SetPayload(payload)
//	data, err := msg.Bytes()
//
// # Reading a Response
//
//	msg, err := soap.ParseMessage(body)
//	if msg.IsFault() {
//	    fault := msg.Fault()
//	    ...
//	}
//
// # SOAP Versions
//
// The version is detected from the envelope namespace:
//   - SOAP 1.1: http://schemas.xmlsoap.org/soap/envelope/
//   - SOAP 1.2: http://www.w3.org/2003/05/soap-envelope
//
// # XPath
//
// ExtractXPath and MatchXPath evaluate etree paths against a message
// document; handlers use them to inspect headers and payloads.
package soap
