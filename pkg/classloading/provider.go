package classloading

// Provider supplies the server integration loader, which holds the
// framework-provided handler classes.
type Provider interface {
	ServerIntegrationLoader() Loader
}

// StaticProvider is a Provider returning a fixed loader.
type StaticProvider struct {
	Loader Loader
}

// ServerIntegrationLoader implements Provider.
func (p StaticProvider) ServerIntegrationLoader() Loader {
	return p.Loader
}
