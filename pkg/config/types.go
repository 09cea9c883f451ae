package config

// Root is a parsed configuration file.
type Root struct {
	ClientConfigs   []*ClientConfig   `json:"clientConfigs,omitempty" yaml:"clientConfigs,omitempty"`
	EndpointConfigs []*EndpointConfig `json:"endpointConfigs,omitempty" yaml:"endpointConfigs,omitempty"`
}

// ClientConfigByName returns the client config with exactly the given name,
// or nil.
func (r *Root) ClientConfigByName(name string) *ClientConfig {
	if r == nil {
		return nil
	}
	for _, c := range r.ClientConfigs {
		if c != nil && c.Name == name {
			return c
		}
	}
	return nil
}

// EndpointConfigByName returns the endpoint config with exactly the given
// name, or nil.
func (r *Root) EndpointConfigByName(name string) *EndpointConfig {
	if r == nil {
		return nil
	}
	for _, c := range r.EndpointConfigs {
		if c != nil && c.Name == name {
			return c
		}
	}
	return nil
}

// Merge appends the configs of other to r.
func (r *Root) Merge(other *Root) {
	if other == nil {
		return
	}
	r.ClientConfigs = append(r.ClientConfigs, other.ClientConfigs...)
	r.EndpointConfigs = append(r.EndpointConfigs, other.EndpointConfigs...)
}

// CommonConfig is the part shared by client and endpoint configs.
type CommonConfig struct {
	Name              string            `json:"name" yaml:"name"`
	Properties        map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	PreHandlerChains  []*HandlerChain   `json:"preHandlerChains,omitempty" yaml:"preHandlerChains,omitempty"`
	PostHandlerChains []*HandlerChain   `json:"postHandlerChains,omitempty" yaml:"postHandlerChains,omitempty"`
}

// Common returns the config itself. It lets ClientConfig and EndpointConfig
// be passed where a *CommonConfig is expected.
func (c *CommonConfig) Common() *CommonConfig {
	return c
}

// ClientConfig is a named configuration applied to client ports.
type ClientConfig struct {
	CommonConfig `yaml:",inline"`
}

// EndpointConfig is a named configuration applied to service endpoints.
type EndpointConfig struct {
	CommonConfig `yaml:",inline"`
}

// HandlerChain declares an ordered list of handlers and the filters that
// decide where they apply.
type HandlerChain struct {
	// ID is the optional id attribute of the declaration.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// PortNamePattern restricts the chain to matching ports. Accepted but
	// not applied.
	PortNamePattern string `json:"portNamePattern,omitempty" yaml:"portNamePattern,omitempty"`

	// ServiceNamePattern restricts the chain to matching services. Accepted
	// but not applied.
	ServiceNamePattern string `json:"serviceNamePattern,omitempty" yaml:"serviceNamePattern,omitempty"`

	// ProtocolBindings is a space-separated list of protocol-binding tokens
	// such as "##SOAP11_HTTP ##SOAP12_HTTP". Empty applies everywhere.
	ProtocolBindings string `json:"protocolBindings,omitempty" yaml:"protocolBindings,omitempty"`

	Handlers []*Handler `json:"handlers,omitempty" yaml:"handlers,omitempty"`
}

// HasNameFilter reports whether a port or service name pattern is set.
func (c *HandlerChain) HasNameFilter() bool {
	return c.PortNamePattern != "" || c.ServiceNamePattern != ""
}

// Handler declares one handler of a chain.
type Handler struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Class is the name the handler implementation is registered under.
	Class string `json:"class" yaml:"class"`

	// InitParams are accepted but not applied.
	InitParams []InitParam `json:"initParams,omitempty" yaml:"initParams,omitempty"`

	SOAPRoles   []string `json:"soapRoles,omitempty" yaml:"soapRoles,omitempty"`
	SOAPHeaders []string `json:"soapHeaders,omitempty" yaml:"soapHeaders,omitempty"`
}

// InitParam is a handler initialization parameter.
type InitParam struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
