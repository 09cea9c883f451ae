package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/beevik/etree"

	"github.com/getmockd/wsconfig/pkg/binding"
	"github.com/getmockd/wsconfig/pkg/handler"
	"github.com/getmockd/wsconfig/pkg/logging"
	"github.com/getmockd/wsconfig/pkg/soap"
)

// MaxResponseSize caps the response body read by Invoke (10MB).
const MaxResponseSize = 10 << 20

// DefaultTimeout is the timeout of the default HTTP client.
const DefaultTimeout = 30 * time.Second

// Errors returned by Invoke.
var (
	ErrHandlerStopped   = errors.New("handler chain stopped the exchange")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

// FaultError is returned by Invoke when the endpoint replied with a fault.
type FaultError struct {
	Fault      *soap.Fault
	StatusCode int
}

func (e *FaultError) Error() string {
	if e.Fault == nil {
		return fmt.Sprintf("soap fault (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("soap fault %s: %s", e.Fault.Code, e.Fault.Message)
}

// Port is a client port bound to one endpoint address.
type Port struct {
	address    string
	soapAction string
	binding    *binding.Binding
	httpClient *http.Client
	properties map[string]any
	logger     *slog.Logger
}

// PortOption configures a Port.
type PortOption func(*Port)

// WithHTTPClient sets the HTTP client used by Invoke.
func WithHTTPClient(c *http.Client) PortOption {
	return func(p *Port) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// WithSOAPAction sets the SOAP action sent with every request.
func WithSOAPAction(action string) PortOption {
	return func(p *Port) { p.soapAction = action }
}

// WithProperty sets a message context property for every exchange.
func WithProperty(key string, value any) PortOption {
	return func(p *Port) { p.properties[key] = value }
}

// WithLogger sets the port logger.
func WithLogger(logger *slog.Logger) PortOption {
	return func(p *Port) { p.logger = logging.WithComponent(logger, logging.ComponentClient) }
}

// NewPort creates a port for the endpoint address using the binding ID.
func NewPort(address, bindingID string, opts ...PortOption) *Port {
	p := &Port{
		address:    address,
		binding:    binding.New(bindingID),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		properties: make(map[string]any),
		logger:     logging.WithComponent(nil, logging.ComponentClient),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Binding returns the port's binding.
func (p *Port) Binding() *binding.Binding {
	return p.binding
}

// Address returns the endpoint address.
func (p *Port) Address() string {
	return p.address
}

// Invoke sends payload to the endpoint and returns the reply envelope.
//
// The outbound message passes the handler chain in order, the reply passes
// it in reverse, and every invoked handler is closed before Invoke returns.
// A one-way exchange (empty 2xx reply) returns a nil message.
func (p *Port) Invoke(ctx context.Context, payload *etree.Element) (*soap.Message, error) {
	bindingID := p.binding.BindingID()
	msg := soap.NewMessage(binding.SOAPVersion(bindingID))
	if payload != nil {
		msg.SetPayload(payload.Copy())
	}

	mc := handler.NewMessageContext(ctx, msg, true)
	for k, v := range p.properties {
		mc.Set(k, v)
	}
	mc.Set(handler.PropEndpointAddress, p.address)
	mc.Set(handler.PropBindingID, bindingID)
	mc.Set(handler.PropSOAPAction, p.soapAction)

	exec := handler.NewExecution(p.binding.HandlerChain(), p.logger)
	defer exec.Close(mc)

	cont, err := exec.HandleMessage(mc)
	if err != nil {
		return nil, err
	}
	if !cont {
		return nil, ErrHandlerStopped
	}

	status, data, err := p.post(mc)
	if err != nil {
		return nil, err
	}
	mc.Set(handler.PropHTTPStatus, status)

	if len(bytes.TrimSpace(data)) == 0 {
		if status >= 200 && status < 300 {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}

	reply, err := soap.ParseMessage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reply (HTTP %d): %w", status, err)
	}
	mc.SetMessage(reply, false)

	if reply.IsFault() {
		if _, err := exec.HandleFault(mc); err != nil {
			return nil, err
		}
		return mc.Message(), &FaultError{Fault: mc.Message().Fault(), StatusCode: status}
	}

	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
	if _, err := exec.HandleMessage(mc); err != nil {
		return nil, err
	}
	return mc.Message(), nil
}

func (p *Port) post(mc *handler.MessageContext) (int, []byte, error) {
	msg := mc.Message()
	body, err := msg.Bytes()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to serialize request: %w", err)
	}

	req, err := http.NewRequestWithContext(mc.Context(), http.MethodPost, p.address, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	action := mc.GetString(handler.PropSOAPAction)
	if msg.Version() == soap.SOAP12 {
		ct := msg.ContentType()
		if action != "" {
			ct += fmt.Sprintf("; action=%q", action)
		}
		req.Header.Set("Content-Type", ct)
	} else {
		req.Header.Set("Content-Type", msg.ContentType())
		req.Header.Set("SOAPAction", fmt.Sprintf("%q", action))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	p.logger.Debug("soap exchange",
		"endpoint", p.address,
		"status", resp.StatusCode,
		"requestBytes", len(body),
		"responseBytes", len(data),
	)
	return resp.StatusCode, data, nil
}
