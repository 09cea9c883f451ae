package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/getmockd/wsconfig/pkg/config"
	"github.com/getmockd/wsconfig/pkg/logging"
)

// UndefinedHostname is the host reported when none is configured. Display
// addresses then use the host of the incoming request.
const UndefinedHostname = "jbossws.undefined.host"

// Errors returned by Config setters.
var (
	ErrInvalidHost = errors.New("invalid web service host")
	ErrInvalidPort = errors.New("invalid web service port")
)

// Settings are the environment-driven server settings.
type Settings struct {
	Host              string `env:"HOST" envDefault:"jbossws.undefined.host"`
	Port              int    `env:"PORT" envDefault:"8080"`
	SecurePort        int    `env:"SECURE_PORT" envDefault:"8443"`
	ModifySOAPAddress bool   `env:"MODIFY_SOAP_ADDRESS" envDefault:"true"`
	TempDir           string `env:"TEMP_DIR"`
	DataDir           string `env:"DATA_DIR"`
	ConfigDir         string `env:"CONFIG_DIR"`
	ConfigPattern     string `env:"CONFIG_PATTERN" envDefault:"**/*.{xml,yaml,yml}"`
}

// EnvPrefix prefixes every settings variable.
const EnvPrefix = "WSCONFIG_"

// ParseSettings reads settings from environ, or from the process
// environment when environ is nil.
func ParseSettings(environ map[string]string) (Settings, error) {
	var s Settings
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// Config is the server configuration and config registry.
// It is safe for concurrent use.
type Config struct {
	mu              sync.RWMutex
	settings        Settings
	clientConfigs   []*config.ClientConfig
	endpointConfigs []*config.EndpointConfig
	logger          *slog.Logger
}

// New creates a Config with the given settings.
func New(s Settings, logger *slog.Logger) *Config {
	return &Config{
		settings: s,
		logger:   logging.WithComponent(logger, logging.ComponentServer),
	}
}

// FromEnv creates a Config from the process environment and loads the
// configs found in the configured directory.
func FromEnv(logger *slog.Logger) (*Config, error) {
	s, err := ParseSettings(nil)
	if err != nil {
		return nil, err
	}
	c := New(s, logger)
	if s.ConfigDir != "" {
		if err := c.LoadConfigs(s.ConfigDir, s.ConfigPattern); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Settings returns a copy of the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// WebServiceHost returns the published host.
func (c *Config) WebServiceHost() string {
	return c.Settings().Host
}

// SetWebServiceHost sets the published host. The host must be an IP
// address or a syntactically valid host name. IPv6 literals are stored
// without brackets.
func (c *Config) SetWebServiceHost(host string) error {
	if !validHost(host) {
		return fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	c.mu.Lock()
	c.settings.Host = host
	c.mu.Unlock()
	return nil
}

// WebServicePort returns the published HTTP port.
func (c *Config) WebServicePort() int {
	return c.Settings().Port
}

// SetWebServicePort sets the published HTTP port.
func (c *Config) SetWebServicePort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}
	c.mu.Lock()
	c.settings.Port = port
	c.mu.Unlock()
	return nil
}

// WebServiceSecurePort returns the published HTTPS port.
func (c *Config) WebServiceSecurePort() int {
	return c.Settings().SecurePort
}

// SetWebServiceSecurePort sets the published HTTPS port.
func (c *Config) SetWebServiceSecurePort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}
	c.mu.Lock()
	c.settings.SecurePort = port
	c.mu.Unlock()
	return nil
}

// ModifySOAPAddress reports whether endpoint addresses are rewritten.
func (c *Config) ModifySOAPAddress() bool {
	return c.Settings().ModifySOAPAddress
}

// SetModifySOAPAddress enables or disables address rewriting.
func (c *Config) SetModifySOAPAddress(flag bool) {
	c.mu.Lock()
	c.settings.ModifySOAPAddress = flag
	c.mu.Unlock()
}

// ServerTempDir returns the temp directory setting.
func (c *Config) ServerTempDir() string {
	return c.Settings().TempDir
}

// ServerDataDir returns the data directory setting.
func (c *Config) ServerDataDir() string {
	return c.Settings().DataDir
}

// DisplayHost returns the host to publish for endpointAddress. An
// undefined web service host falls back to the request host, then to the
// endpoint's own host.
func (c *Config) DisplayHost(endpointAddress string, requestURL *url.URL) (string, error) {
	u, err := parseAddress(endpointAddress)
	if err != nil {
		return "", err
	}

	host := strings.TrimSuffix(strings.TrimPrefix(c.WebServiceHost(), "["), "]")
	if host != "" && host != UndefinedHostname {
		return host, nil
	}
	if requestURL != nil && requestURL.Hostname() != "" {
		return requestURL.Hostname(), nil
	}
	return u.Hostname(), nil
}

// DisplayAddress rewrites endpointAddress with the published scheme, host
// and port. With ModifySOAPAddress disabled the address is returned as is.
// The scheme follows the request; the port is the request port when the
// host is undefined and the configured port for the scheme otherwise.
// Default ports for the scheme are omitted.
func (c *Config) DisplayAddress(endpointAddress string, requestURL *url.URL) (string, error) {
	u, err := parseAddress(endpointAddress)
	if err != nil {
		return "", err
	}
	if !c.ModifySOAPAddress() {
		return endpointAddress, nil
	}

	host, err := c.DisplayHost(endpointAddress, requestURL)
	if err != nil {
		return "", err
	}

	scheme := u.Scheme
	if requestURL != nil && requestURL.Scheme != "" {
		scheme = requestURL.Scheme
	}

	s := c.Settings()
	var port string
	switch {
	case s.Host == "" || s.Host == UndefinedHostname:
		if requestURL != nil {
			port = requestURL.Port()
		} else {
			port = u.Port()
		}
	case scheme == "https":
		port = strconv.Itoa(s.SecurePort)
	default:
		port = strconv.Itoa(s.Port)
	}
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}

	out := *u
	out.Scheme = scheme
	switch {
	case port != "":
		out.Host = net.JoinHostPort(host, port)
	case strings.Contains(host, ":"):
		out.Host = "[" + host + "]"
	default:
		out.Host = host
	}
	return out.String(), nil
}

// ClientConfigs returns the registered client configs.
func (c *Config) ClientConfigs() []*config.ClientConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*config.ClientConfig, len(c.clientConfigs))
	copy(out, c.clientConfigs)
	return out
}

// EndpointConfigs returns the registered endpoint configs.
func (c *Config) EndpointConfigs() []*config.EndpointConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*config.EndpointConfig, len(c.endpointConfigs))
	copy(out, c.endpointConfigs)
	return out
}

// AddClientConfig registers client configs.
func (c *Config) AddClientConfig(cfgs ...*config.ClientConfig) {
	c.mu.Lock()
	c.clientConfigs = append(c.clientConfigs, cfgs...)
	c.mu.Unlock()
}

// AddEndpointConfig registers endpoint configs.
func (c *Config) AddEndpointConfig(cfgs ...*config.EndpointConfig) {
	c.mu.Lock()
	c.endpointConfigs = append(c.endpointConfigs, cfgs...)
	c.mu.Unlock()
}

// LoadConfigs registers every config found under dir. Files that fail to
// parse are logged and skipped.
func (c *Config) LoadConfigs(dir, pattern string) error {
	loader := &config.DirectoryLoader{Path: dir, Pattern: pattern}
	result, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configs from %s: %w", dir, err)
	}
	for _, e := range result.Errors {
		c.logger.Warn("skipping configuration file", "path", e.Path, "error", e.Err)
	}

	c.AddClientConfig(result.Root.ClientConfigs...)
	c.AddEndpointConfig(result.Root.EndpointConfigs...)
	c.logger.Info("loaded configurations",
		"dir", dir,
		"files", len(result.Files),
		"clientConfigs", len(result.Root.ClientConfigs),
		"endpointConfigs", len(result.Root.EndpointConfigs),
	)
	return nil
}

func parseAddress(addr string) (*url.URL, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("malformed endpoint address %q: %w", addr, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("malformed endpoint address %q: missing scheme or host", addr)
	}
	return u, nil
}

func validHost(host string) bool {
	if host == "" || len(host) > 253 {
		return false
	}
	if strings.HasPrefix(host, "[") != strings.HasSuffix(host, "]") {
		return false
	}
	if net.ParseIP(strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")) != nil {
		return true
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if !(r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				return false
			}
		}
	}
	return true
}
