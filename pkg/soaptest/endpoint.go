package soaptest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/beevik/etree"

	"github.com/getmockd/wsconfig/pkg/httputil"
	"github.com/getmockd/wsconfig/pkg/soap"
)

// addressingNamespace is the WS-Addressing namespace used by RelatesTo.
const addressingNamespace = "http://www.w3.org/2005/08/addressing"

// Endpoint is a test helper serving SOAP replies.
type Endpoint struct {
	t        testing.TB
	mu       sync.Mutex
	replies  []*reply
	requests []Request
	httpSrv  *httptest.Server
	baseURL  string
}

// New creates a new endpoint for testing.
// The endpoint is stopped automatically when the test completes.
func New(t testing.TB) *Endpoint {
	t.Helper()
	return &Endpoint{t: t}
}

// Start starts the endpoint and returns its URL.
func (e *Endpoint) Start() string {
	e.t.Helper()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.httpSrv != nil {
		return e.baseURL
	}
	e.httpSrv = httptest.NewServer(e)
	e.baseURL = e.httpSrv.URL
	e.t.Cleanup(e.Stop)
	return e.baseURL
}

// Stop stops the endpoint. It is safe to call more than once.
func (e *Endpoint) Stop() {
	e.mu.Lock()
	srv := e.httpSrv
	e.httpSrv = nil
	e.mu.Unlock()

	if srv != nil {
		srv.Close()
	}
}

// URL returns the base URL of the endpoint.
// Returns empty string if the endpoint is not started.
func (e *Endpoint) URL() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.baseURL
}

// Client returns an http.Client configured to work with the endpoint.
func (e *Endpoint) Client() *http.Client {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.httpSrv != nil {
		return e.httpSrv.Client()
	}
	return http.DefaultClient
}

// On adds a reply for requests whose payload element has the given local
// name and returns a builder for configuration.
func (e *Endpoint) On(operation string) *ReplyBuilder {
	e.t.Helper()
	return &ReplyBuilder{
		endpoint: e,
		reply:    &reply{operation: operation, status: http.StatusOK},
	}
}

// Reset clears all replies and recorded requests.
func (e *Endpoint) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.replies = nil
	e.requests = nil
}

// Requests returns the recorded requests, oldest first.
func (e *Endpoint) Requests() []Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Request, len(e.requests))
	copy(out, e.requests)
	return out
}

// AssertCalled asserts that an operation was called at least once.
func (e *Endpoint) AssertCalled(t testing.TB, operation string) {
	t.Helper()

	if e.countCalls(operation) == 0 {
		t.Errorf("expected %s to be called, but it was not called", operation)
	}
}

// AssertCalledTimes asserts that an operation was called exactly n times.
func (e *Endpoint) AssertCalledTimes(t testing.TB, operation string, times int) {
	t.Helper()

	count := e.countCalls(operation)
	if count != times {
		t.Errorf("expected %s to be called %d times, but was called %d times",
			operation, times, count)
	}
}

// AssertNotCalled asserts that an operation was not called.
func (e *Endpoint) AssertNotCalled(t testing.TB, operation string) {
	t.Helper()

	count := e.countCalls(operation)
	if count > 0 {
		t.Errorf("expected %s to not be called, but it was called %d times",
			operation, count)
	}
}

func (e *Endpoint) countCalls(operation string) int {
	count := 0
	for _, r := range e.Requests() {
		if r.Operation == operation {
			count++
		}
	}
	return count
}

func (e *Endpoint) addReply(r *reply) {
	e.mu.Lock()
	e.replies = append(e.replies, r)
	e.mu.Unlock()
}

// ServeHTTP implements http.Handler.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	msg, err := soap.ParseMessage(data)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	req := newRequest(r, data, msg)

	e.mu.Lock()
	e.requests = append(e.requests, req)
	rep := e.match(req.Operation)
	e.mu.Unlock()

	if rep == nil {
		httputil.WriteClientFault(w, msg.Version(), fmt.Sprintf("no reply configured for %s", req.Operation))
		return
	}
	rep.write(w, msg)
}

// match returns the first reply for operation with uses left and counts the
// use. The caller holds e.mu.
func (e *Endpoint) match(operation string) *reply {
	for _, rep := range e.replies {
		if rep.operation != operation {
			continue
		}
		if rep.times > 0 && rep.used >= rep.times {
			continue
		}
		rep.used++
		return rep
	}
	return nil
}

// reply is a configured response.
type reply struct {
	operation string
	status    int
	payload   *etree.Element
	fault     *soap.Fault
	headers   map[string]string
	relatesTo bool
	oneWay    bool
	times     int
	used      int
}

func (rep *reply) write(w http.ResponseWriter, req *soap.Message) {
	for k, v := range rep.headers {
		w.Header().Set(k, v)
	}

	switch {
	case rep.oneWay:
		httputil.WriteAccepted(w)
	case rep.fault != nil:
		status := rep.status
		if status == http.StatusOK {
			status = http.StatusInternalServerError
		}
		httputil.WriteFault(w, status, rep.fault, req.Version())
	default:
		out := soap.NewMessage(req.Version())
		if rep.relatesTo {
			if id := headerText(req, "MessageID"); id != "" {
				rel := etree.NewElement("wsa:RelatesTo")
				rel.CreateAttr("xmlns:wsa", addressingNamespace)
				rel.SetText(id)
				out.AddHeader(rel)
			}
		}
		if rep.payload != nil {
			out.SetPayload(rep.payload.Copy())
		}
		httputil.WriteSOAP(w, rep.status, out)
	}
}

func headerText(msg *soap.Message, local string) string {
	for _, h := range msg.Headers() {
		if h.Tag == local {
			return h.Text()
		}
	}
	return ""
}
