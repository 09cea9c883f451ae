package classloading

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct{ from string }

func factoryFor(from string) Factory {
	return func() (any, error) { return &widget{from: from}, nil }
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("com.example.Widget", factoryFor("r")))

	err := r.Register("com.example.Widget", factoryFor("r"))
	assert.ErrorIs(t, err, ErrClassExists)

	assert.ErrorIs(t, r.Register("", factoryFor("r")), ErrInvalidClass)
	assert.ErrorIs(t, r.Register("x", nil), ErrInvalidClass)

	assert.Equal(t, []string{"com.example.Widget"}, r.Names())
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("a", factoryFor("r"))
	assert.Panics(t, func() { r.MustRegister("a", factoryFor("r")) })
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("a", factoryFor("r"))

	assert.True(t, r.Unregister("a"))
	assert.False(t, r.Unregister("a"))

	_, err := r.LoadClass("a")
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestRegisterType(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterType[widget](r, "widget"))

	v, err := Instantiate(r, "widget")
	require.NoError(t, err)
	assert.IsType(t, &widget{}, v)

	v2, err := Instantiate(r, "widget")
	require.NoError(t, err)
	assert.NotSame(t, v, v2)
}

func TestDelegateLoader_Order(t *testing.T) {
	caller := NewRegistry()
	server := NewRegistry()
	caller.MustRegister("shared", factoryFor("caller"))
	server.MustRegister("shared", factoryFor("server"))
	server.MustRegister("framework", factoryFor("server"))

	l := NewDelegateLoader(caller, nil, server)

	v, err := Instantiate(l, "shared")
	require.NoError(t, err)
	assert.Equal(t, "caller", v.(*widget).from)

	v, err = Instantiate(l, "framework")
	require.NoError(t, err)
	assert.Equal(t, "server", v.(*widget).from)

	_, err = Instantiate(l, "missing")
	assert.ErrorIs(t, err, ErrClassNotFound)
}

type panickingLoader struct{}

func (panickingLoader) LoadClass(string) (Factory, error) { panic("loader broke") }

func TestInstantiate_NilRegistryInDelegate(t *testing.T) {
	var nilReg *Registry
	server := NewRegistry()
	server.MustRegister("framework", factoryFor("server"))

	_, err := nilReg.LoadClass("framework")
	assert.ErrorIs(t, err, ErrClassNotFound)

	v, err := Instantiate(NewDelegateLoader(nilReg, server), "framework")
	require.NoError(t, err)
	assert.Equal(t, "server", v.(*widget).from)
}

func TestInstantiate_LoaderPanic(t *testing.T) {
	v, err := Instantiate(panickingLoader{}, "x")
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrInstantiation)
}

func TestInstantiate_Failures(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.MustRegister("fails", func() (any, error) { return nil, boom })
	r.MustRegister("panics", func() (any, error) { panic("bad constructor") })

	_, err := Instantiate(r, "fails")
	assert.ErrorIs(t, err, ErrInstantiation)
	assert.ErrorIs(t, err, boom)

	v, err := Instantiate(r, "panics")
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrInstantiation)
	assert.Contains(t, err.Error(), "bad constructor")

	_, err = Instantiate(nil, "anything")
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestStaticProvider(t *testing.T) {
	r := NewRegistry()
	p := StaticProvider{Loader: r}
	assert.Same(t, r, p.ServerIntegrationLoader())
}
