package soaptest

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/getmockd/wsconfig/pkg/soap"
)

const placeOrder11 = `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Header>
    <wsa:MessageID xmlns:wsa="http://www.w3.org/2005/08/addressing">urn:uuid:42</wsa:MessageID>
  </soap:Header>
  <soap:Body><ord:PlaceOrder xmlns:ord="urn:orders"><ord:id>A1</ord:id></ord:PlaceOrder></soap:Body>
</soap:Envelope>`

const cancelOrder12 = `<env:Envelope xmlns:env="http://www.w3.org/2003/05/soap-envelope">
  <env:Body><ord:CancelOrder xmlns:ord="urn:orders"/></env:Body>
</env:Envelope>`

func post(t *testing.T, url, contentType, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("SOAPAction", `"urn:orders/Place"`)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func TestStartAndStop(t *testing.T) {
	ep := New(t)
	url := ep.Start()
	if !strings.HasPrefix(url, "http://") {
		t.Errorf("Expected URL to start with http://, got %s", url)
	}
	if again := ep.Start(); again != url {
		t.Errorf("Start() is not idempotent: %s != %s", again, url)
	}

	ep.Stop()
	ep.Stop()

	if ep.URL() != url {
		t.Errorf("URL() mismatch: expected %s, got %s", url, ep.URL())
	}
}

func TestReplyWithPayload(t *testing.T) {
	ep := New(t)
	ep.On("PlaceOrder").
		WithPayload(`<ord:Ack xmlns:ord="urn:orders"><ord:status>accepted</ord:status></ord:Ack>`).
		WithHeader("X-Trace", "abc").
		RelatesTo().
		Reply()
	url := ep.Start()

	resp, body := post(t, url, soap.SOAP11ContentType, placeOrder11)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}
	if got := resp.Header.Get("X-Trace"); got != "abc" {
		t.Errorf("Expected X-Trace header, got %q", got)
	}

	msg, err := soap.ParseMessage(body)
	if err != nil {
		t.Fatalf("reply is not SOAP: %v", err)
	}
	if got := msg.XPath("//ord:status"); got != "accepted" {
		t.Errorf("Expected status accepted, got %q", got)
	}
	if got := msg.XPath("//wsa:RelatesTo"); got != "urn:uuid:42" {
		t.Errorf("Expected RelatesTo urn:uuid:42, got %q", got)
	}

	ep.AssertCalled(t, "PlaceOrder")
	ep.AssertCalledTimes(t, "PlaceOrder", 1)
	ep.AssertNotCalled(t, "CancelOrder")

	reqs := ep.Requests()
	if len(reqs) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.SOAPAction != "urn:orders/Place" {
		t.Errorf("Expected unquoted SOAPAction, got %q", req.SOAPAction)
	}
	req.AssertHeaderBlock(t, "MessageID")
	req.AssertNoHeaderBlock(t, "RelatesTo")
	req.AssertXPath(t, "//ord:id", "A1")
	req.AssertBodyContains(t, "PlaceOrder")
	req.AssertHeader(t, "content-type", soap.SOAP11ContentType)
	req.AssertSOAPVersion(t, soap.SOAP11)
}

func TestReplyWithFault(t *testing.T) {
	ep := New(t)
	ep.On("CancelOrder").WithFault("soap:Client", "order already shipped").Reply()
	url := ep.Start()

	resp, body := post(t, url, soap.SOAP12ContentType, cancelOrder12)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", resp.StatusCode)
	}
	msg, err := soap.ParseMessage(body)
	if err != nil {
		t.Fatalf("reply is not SOAP: %v", err)
	}
	if msg.Version() != soap.SOAP12 {
		t.Errorf("Expected SOAP 1.2 fault, got %s", msg.Version())
	}
	if f := msg.Fault(); f == nil || f.Code != "soap:Sender" || f.Message != "order already shipped" {
		t.Errorf("unexpected fault %+v", f)
	}
}

func TestUnconfiguredOperation(t *testing.T) {
	ep := New(t)
	url := ep.Start()

	resp, body := post(t, url, soap.SOAP11ContentType, placeOrder11)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte("no reply configured for PlaceOrder")) {
		t.Errorf("unexpected body %s", body)
	}

	resp, _ = post(t, url, "text/plain", "hello")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for non-SOAP request, got %d", resp.StatusCode)
	}
	if n := len(ep.Requests()); n != 1 {
		t.Errorf("Expected only SOAP requests to be recorded, got %d", n)
	}
}

func TestTimesAndOneWay(t *testing.T) {
	ep := New(t)
	ep.On("PlaceOrder").WithPayload(`<Ack/>`).Once().Reply()
	ep.On("PlaceOrder").OneWay().Reply()
	url := ep.Start()

	resp, _ := post(t, url, soap.SOAP11ContentType, placeOrder11)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("first call: expected 200, got %d", resp.StatusCode)
	}
	resp, body := post(t, url, soap.SOAP11ContentType, placeOrder11)
	if resp.StatusCode != http.StatusAccepted || len(body) != 0 {
		t.Errorf("second call: expected empty 202, got %d %q", resp.StatusCode, body)
	}

	ep.Reset()
	if len(ep.Requests()) != 0 {
		t.Error("Reset() did not clear requests")
	}
	resp, _ = post(t, url, soap.SOAP11ContentType, placeOrder11)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("after Reset: expected fault, got %d", resp.StatusCode)
	}
}

func TestBuilderError(t *testing.T) {
	ep := New(t)
	b := ep.On("PlaceOrder").WithPayload("<unclosed").WithPayload("<also-bad")
	if b.Err() == nil {
		t.Fatal("expected builder error for invalid XML")
	}
	if !strings.Contains(b.Err().Error(), "WithPayload") {
		t.Errorf("unexpected error %v", b.Err())
	}
}
