package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/beevik/etree"
	"github.com/getmockd/wsconfig/pkg/soap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trace records handler calls in order.
type trace struct {
	calls []string
}

type protoHandler struct {
	name string
	tr   *trace
	cont bool
	err  error
}

func (h *protoHandler) Name() string { return h.name }

func (h *protoHandler) HandleMessage(mc *MessageContext) (bool, error) {
	h.tr.calls = append(h.tr.calls, h.name+".message")
	return h.cont, h.err
}

func (h *protoHandler) HandleFault(mc *MessageContext) (bool, error) {
	h.tr.calls = append(h.tr.calls, h.name+".fault")
	return h.cont, h.err
}

func (h *protoHandler) Close(mc *MessageContext) {
	h.tr.calls = append(h.tr.calls, h.name+".close")
}

type logicalHandler struct {
	name string
	tr   *trace
}

func (h *logicalHandler) Name() string { return h.name }

func (h *logicalHandler) HandleMessage(lc *LogicalContext) (bool, error) {
	h.tr.calls = append(h.tr.calls, h.name+".logical")
	if p := lc.Payload(); p != nil {
		p.CreateAttr("seen-by", h.name)
	}
	return true, nil
}

func (h *logicalHandler) HandleFault(lc *LogicalContext) (bool, error) {
	h.tr.calls = append(h.tr.calls, h.name+".logical-fault")
	return true, nil
}

func (h *logicalHandler) Close(mc *MessageContext) {
	h.tr.calls = append(h.tr.calls, h.name+".close")
}

type closeOnly struct{}

func (closeOnly) Close(*MessageContext) {}

func newContext(outbound bool) *MessageContext {
	msg := soap.NewMessage(soap.SOAP11)
	msg.SetPayload(etree.NewElement("Ping"))
	return NewMessageContext(context.Background(), msg, outbound)
}

func TestClassify(t *testing.T) {
	tr := &trace{}
	assert.Equal(t, KindProtocol, Classify(&protoHandler{tr: tr}))
	assert.Equal(t, KindLogical, Classify(&logicalHandler{tr: tr}))
	assert.Equal(t, KindNone, Classify(closeOnly{}))
	assert.Equal(t, KindNone, Classify("not a handler"))
	assert.Equal(t, KindNone, Classify(nil))
	assert.Equal(t, "logical", KindLogical.String())
}

func TestName(t *testing.T) {
	assert.Equal(t, "named", Name(&protoHandler{name: "named"}))
	assert.Equal(t, "handler.closeOnly", Name(closeOnly{}))
}

func TestWrap(t *testing.T) {
	tr := &trace{}

	h, ok := Wrap(&protoHandler{name: "p", tr: tr}, true)
	require.True(t, ok)
	d, isProto := h.(*ConfigDelegate)
	require.True(t, isProto)
	assert.True(t, d.IsPre())
	assert.Equal(t, Tag{Config: true, Pre: true}, d.Tag())
	assert.Equal(t, "p", d.Name())

	h, ok = Wrap(&logicalHandler{name: "l", tr: tr}, false)
	require.True(t, ok)
	ld, isLogical := h.(*LogicalConfigDelegate)
	require.True(t, isLogical)
	assert.False(t, ld.IsPre())
	assert.Equal(t, "l", ld.Name())

	_, ok = Wrap(closeOnly{}, true)
	assert.False(t, ok)
}

func TestIsConfigHandler(t *testing.T) {
	tr := &trace{}
	user := &protoHandler{name: "user", tr: tr}

	assert.False(t, IsConfigHandler(user))
	assert.True(t, IsConfigHandler(NewConfigDelegate(user, true)))
	assert.True(t, IsConfigHandler(NewLogicalConfigDelegate(&logicalHandler{tr: tr}, false)))
}

func TestSplitConfigHandlers(t *testing.T) {
	tr := &trace{}
	u1 := &protoHandler{name: "u1", tr: tr}
	u2 := &logicalHandler{name: "u2", tr: tr}
	p1 := NewConfigDelegate(&protoHandler{name: "p1", tr: tr}, true)
	q1 := NewConfigDelegate(&protoHandler{name: "q1", tr: tr}, false)

	config, others := SplitConfigHandlers([]Handler{p1, u1, u2, q1})

	assert.Equal(t, []Handler{p1, q1}, config)
	assert.Equal(t, []Handler{u1, u2}, others)
}

func TestDelegates_Forward(t *testing.T) {
	tr := &trace{}
	inner := &protoHandler{name: "inner", tr: tr, cont: false, err: errors.New("boom")}
	d := NewConfigDelegate(inner, true)
	mc := newContext(true)

	cont, err := d.HandleMessage(mc)
	assert.False(t, cont)
	assert.EqualError(t, err, "boom")
	_, _ = d.HandleFault(mc)
	d.Close(mc)
	assert.Same(t, inner, d.Delegate())

	logical := &logicalHandler{name: "logic", tr: tr}
	ld := NewLogicalConfigDelegate(logical, false)
	cont, err = ld.HandleMessage(mc.Logical())
	assert.True(t, cont)
	assert.NoError(t, err)
	_, _ = ld.HandleFault(mc.Logical())
	ld.Close(mc)
	assert.Same(t, logical, ld.Delegate())

	assert.Equal(t, []string{
		"inner.message", "inner.fault", "inner.close",
		"logic.logical", "logic.logical-fault", "logic.close",
	}, tr.calls)
	assert.Equal(t, "logic", mc.Message().Payload().SelectAttrValue("seen-by", ""))
}

func TestMessageContext_Properties(t *testing.T) {
	mc := NewMessageContext(nil, nil, true)
	require.NotNil(t, mc.Context())

	mc.Set(PropSOAPAction, "urn:ping")
	mc.Set("count", 3)

	assert.Equal(t, "urn:ping", mc.GetString(PropSOAPAction))
	assert.Equal(t, "", mc.GetString("count"))
	v, ok := mc.Logical().Get("count")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	lc := mc.Logical()
	assert.Nil(t, lc.Payload())
	lc.SetPayload(etree.NewElement("Ignored"))
	assert.True(t, lc.Outbound())
}
