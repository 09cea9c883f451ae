package handlers

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/wsconfig/pkg/handler"
	"github.com/getmockd/wsconfig/pkg/soap"
)

// PropGuard holds the predicate evaluated by PayloadGuard.
const PropGuard = "payload.guard"

// ErrPayloadRejected is returned when an outbound payload fails the guard.
var ErrPayloadRejected = errors.New("payload rejected by guard")

// PayloadGuard rejects outbound payloads for which the expression stored in
// the PropGuard message property is false. Messages without the property
// pass unchecked.
//
// The expression sees name, namespace, text, attrs and children of the
// payload element, and can call XPath("path") relative to it.
type PayloadGuard struct {
	programs *programCache
}

// NewPayloadGuard creates a PayloadGuard with its own program cache.
func NewPayloadGuard() *PayloadGuard {
	return &PayloadGuard{programs: newProgramCache()}
}

// Name implements handler.Named.
func (g *PayloadGuard) Name() string { return ClassPayloadGuard }

// HandleMessage implements handler.LogicalHandler.
func (g *PayloadGuard) HandleMessage(lc *handler.LogicalContext) (bool, error) {
	if !lc.Outbound() {
		return true, nil
	}
	v, ok := lc.Get(PropGuard)
	if !ok {
		return true, nil
	}
	expression, _ := v.(string)
	if strings.TrimSpace(expression) == "" {
		return true, nil
	}

	pass, err := g.evaluate(expression, newGuardEnv(lc.Payload()))
	if err != nil {
		return false, err
	}
	if !pass {
		return false, fmt.Errorf("%w: %s", ErrPayloadRejected, expression)
	}
	return true, nil
}

// HandleFault implements handler.LogicalHandler.
func (g *PayloadGuard) HandleFault(*handler.LogicalContext) (bool, error) {
	return true, nil
}

// Close implements handler.Handler.
func (g *PayloadGuard) Close(*handler.MessageContext) {}

func (g *PayloadGuard) evaluate(expression string, env guardEnv) (bool, error) {
	if g.programs == nil {
		g.programs = newProgramCache()
	}
	program, err := g.programs.compile(expression)
	if err != nil {
		return false, fmt.Errorf("compile %q: %w", expression, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", expression, err)
	}
	pass, _ := out.(bool)
	return pass, nil
}

// guardEnv is the expression environment for one payload.
type guardEnv struct {
	Name      string            `expr:"name"`
	Namespace string            `expr:"namespace"`
	Text      string            `expr:"text"`
	Attrs     map[string]string `expr:"attrs"`
	Children  int               `expr:"children"`

	payload *etree.Element
}

func newGuardEnv(payload *etree.Element) guardEnv {
	env := guardEnv{Attrs: map[string]string{}, payload: payload}
	if payload == nil {
		return env
	}
	env.Name = payload.Tag
	env.Namespace = payload.NamespaceURI()
	env.Text = strings.TrimSpace(payload.Text())
	env.Children = len(payload.ChildElements())
	for _, a := range payload.Attr {
		if a.Space == "xmlns" || a.Key == "xmlns" {
			continue
		}
		env.Attrs[a.Key] = a.Value
	}
	return env
}

// XPath returns the text at path relative to the payload.
func (e guardEnv) XPath(path string) string {
	if e.payload == nil {
		return ""
	}
	return soap.ExtractXPathFromElement(e.payload, path)
}

// programCache holds compiled guard expressions.
type programCache struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

func newProgramCache() *programCache {
	return &programCache{programs: make(map[string]*vm.Program)}
}

func (c *programCache) compile(expression string) (*vm.Program, error) {
	c.mu.RLock()
	if p, ok := c.programs[expression]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	program, err := expr.Compile(expression, expr.Env(guardEnv{}), expr.AsBool())
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.programs[expression]; ok {
		return existing, nil
	}
	c.programs[expression] = program
	return program, nil
}
