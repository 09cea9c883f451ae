package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecution_OutboundThenInbound(t *testing.T) {
	tr := &trace{}
	chain := []Handler{
		&protoHandler{name: "a", tr: tr, cont: true},
		&logicalHandler{name: "b", tr: tr},
		&protoHandler{name: "c", tr: tr, cont: true},
	}
	exec := NewExecution(chain, nil)
	mc := newContext(true)

	ok, err := exec.HandleMessage(mc)
	require.NoError(t, err)
	require.True(t, ok)

	mc.SetMessage(mc.Message(), false)
	ok, err = exec.HandleMessage(mc)
	require.NoError(t, err)
	require.True(t, ok)

	exec.Close(mc)

	assert.Equal(t, []string{
		"a.message", "b.logical", "c.message",
		"c.message", "b.logical", "a.message",
		"c.close", "b.close", "a.close",
	}, tr.calls)
}

func TestExecution_StopClosesInvokedOnly(t *testing.T) {
	tr := &trace{}
	chain := []Handler{
		&protoHandler{name: "a", tr: tr, cont: true},
		&protoHandler{name: "b", tr: tr, cont: false},
		&protoHandler{name: "c", tr: tr, cont: true},
	}
	exec := NewExecution(chain, nil)
	mc := newContext(true)

	ok, err := exec.HandleMessage(mc)
	require.NoError(t, err)
	assert.False(t, ok)

	exec.Close(mc)
	exec.Close(mc)

	assert.Equal(t, []string{"a.message", "b.message", "b.close", "a.close"}, tr.calls)
}

func TestExecution_ErrorNamesHandler(t *testing.T) {
	tr := &trace{}
	boom := errors.New("boom")
	exec := NewExecution([]Handler{&protoHandler{name: "bad", tr: tr, err: boom}}, nil)

	ok, err := exec.HandleMessage(newContext(true))
	assert.False(t, ok)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "handler bad")
}

func TestExecution_Fault(t *testing.T) {
	tr := &trace{}
	exec := NewExecution([]Handler{
		&protoHandler{name: "a", tr: tr, cont: true},
		&logicalHandler{name: "b", tr: tr},
	}, nil)

	ok, err := exec.HandleFault(newContext(false))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"b.logical-fault", "a.fault"}, tr.calls)
}

func TestExecution_SnapshotsChain(t *testing.T) {
	tr := &trace{}
	chain := []Handler{&protoHandler{name: "a", tr: tr, cont: true}}
	exec := NewExecution(chain, nil)
	chain[0] = &protoHandler{name: "replaced", tr: tr, cont: true}

	_, err := exec.HandleMessage(newContext(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.message"}, tr.calls)
}

func TestExecution_SkipsNonVariantHandlers(t *testing.T) {
	exec := NewExecution([]Handler{closeOnly{}}, nil)
	ok, err := exec.HandleMessage(newContext(true))
	require.NoError(t, err)
	assert.True(t, ok)
}
