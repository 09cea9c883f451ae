package classloading

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a new instance of a registered class. It plays the
// role of a no-argument constructor.
type Factory func() (any, error)

// Loader resolves class names to factories.
type Loader interface {
	// LoadClass returns the factory for name or an error wrapping
	// ErrClassNotFound.
	LoadClass(name string) (Factory, error)
}

// Interface compliance checks.
var (
	_ Loader = (*Registry)(nil)
	_ Loader = (*DelegateLoader)(nil)
)

// Registry is a Loader backed by explicit registrations.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("%w: %q", ErrInvalidClass, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrClassExists, name)
	}
	r.factories[name] = f
	return nil
}

// MustRegister is Register that panics on error. Use it from init code.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// RegisterType registers a factory returning a fresh zero value of T.
func RegisterType[T any](r *Registry, name string) error {
	return r.Register(name, func() (any, error) {
		return new(T), nil
	})
}

// Unregister removes name. It reports whether name was registered.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.factories[name]
	delete(r.factories, name)
	return ok
}

// LoadClass implements Loader.
func (r *Registry) LoadClass(name string) (Factory, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	return f, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DelegateLoader tries an ordered list of loaders and returns the first
// factory found. Nil loaders are skipped.
type DelegateLoader struct {
	loaders []Loader
}

// NewDelegateLoader layers loaders; earlier loaders win.
func NewDelegateLoader(loaders ...Loader) *DelegateLoader {
	ls := make([]Loader, 0, len(loaders))
	for _, l := range loaders {
		if l != nil {
			ls = append(ls, l)
		}
	}
	return &DelegateLoader{loaders: ls}
}

// LoadClass implements Loader.
func (d *DelegateLoader) LoadClass(name string) (Factory, error) {
	for _, l := range d.loaders {
		f, err := l.LoadClass(name)
		if err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
}

// Instantiate loads name through l and calls its factory. A panic in the
// loader or the factory is returned as an error wrapping ErrInstantiation.
func Instantiate(l Loader, name string) (v any, err error) {
	if l == nil {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}

	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = fmt.Errorf("%w %s: panic: %v", ErrInstantiation, name, r)
		}
	}()

	f, err := l.LoadClass(name)
	if err != nil {
		return nil, err
	}
	v, err = f()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInstantiation, name, err)
	}
	return v, nil
}
