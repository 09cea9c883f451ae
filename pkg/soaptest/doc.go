// Package soaptest provides an in-process SOAP endpoint for Go tests.
//
// The endpoint replies to requests by the local name of their payload
// element, with a fluent builder API for configuring replies, and records
// every request for assertions.
//
// # Basic Usage
//
//	func TestPlaceOrder(t *testing.T) {
//	    ep := soaptest.New(t)
//
//	    ep.On("PlaceOrder").
//	        WithPayload(`<ord:Ack xmlns:ord="urn:orders">accepted</ord:Ack>`).
//	        RelatesTo().
//	        Reply()
//
//	    url := ep.Start()
//
//	    port := client.NewPort(url, binding.SOAP11HTTP)
//	    // ... invoke the port ...
//
//	    ep.AssertCalled(t, "PlaceOrder")
//	    ep.Requests()[0].AssertHeaderBlock(t, "MessageID")
//	}
//
// # Faults
//
//	ep.On("CancelOrder").
//	    WithFault("soap:Client", "order already shipped").
//	    Reply()
//
// Requests for operations without a configured reply get a soap:Client
// fault. Requests that are not SOAP envelopes get a plain 400.
//
// # Limits
//
// Times, Once and Twice limit how often a reply is used; later requests
// fall through to the next matching reply.
package soaptest
