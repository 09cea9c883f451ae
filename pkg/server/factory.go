package server

// Factory hands out the server configuration. ServerConfig returns nil
// outside a managed server.
type Factory interface {
	ServerConfig() *Config
}

// StaticFactory is a Factory returning a fixed Config, possibly nil.
type StaticFactory struct {
	Config *Config
}

// ServerConfig implements Factory.
func (f StaticFactory) ServerConfig() *Config {
	return f.Config
}
