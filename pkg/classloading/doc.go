// Package classloading resolves handler class names from configuration
// files to handler instances.
//
// Handler classes are named in configuration but Go has no dynamic class
// loading, so every handler implementation is registered at startup under
// its class name in a Registry:
//
//	reg := classloading.NewRegistry()
//	reg.MustRegister("com.example.AuthHandler", func() (any, error) {
//	    return &AuthHandler{}, nil
//	})
//
// A Loader resolves a name to a Factory. DelegateLoader layers several
// loaders and tries them in order, the way a caller's registry is layered
// over the server integration registry so that framework handlers resolve
// regardless of what the caller registered.
package classloading
