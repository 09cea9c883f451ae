package configurer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/getmockd/wsconfig/pkg/binding"
	"github.com/getmockd/wsconfig/pkg/classloading"
	"github.com/getmockd/wsconfig/pkg/config"
	"github.com/getmockd/wsconfig/pkg/handler"
	"github.com/getmockd/wsconfig/pkg/logging"
	"github.com/getmockd/wsconfig/pkg/server"
)

// Binding is the part of a live binding the configurer works on.
type Binding interface {
	BindingID() string
	HandlerChain() []handler.Handler
	SetHandlerChain(chain []handler.Handler)
}

// BindingProvider is implemented by client ports.
type BindingProvider interface {
	Binding() *binding.Binding
}

// ClientConfigurer configures client ports from named configurations.
type ClientConfigurer interface {
	// SetConfigHandlers installs the handler chains of the named
	// configuration on the port's binding. An empty configFile selects
	// the server configuration registry.
	SetConfigHandlers(port BindingProvider, configFile, configName string) error

	// SetConfigProperties applies the properties of the named
	// configuration to a client proxy.
	SetConfigProperties(proxy any, configFile, configName string) error
}

// Interface compliance checks.
var (
	_ ClientConfigurer = (*Helper)(nil)
	_ Binding          = (*binding.Binding)(nil)
)

// Options configures a Helper.
type Options struct {
	// Resources is searched for configuration files named by callers.
	Resources fs.FS

	// Loader resolves handler classes registered by the caller. It takes
	// precedence over the server integration loader.
	Loader classloading.Loader

	// Provider supplies the server integration loader holding the
	// framework handler classes.
	Provider classloading.Provider

	// Servers supplies the server configuration registry used when no
	// configuration file is named. Nil outside a managed server.
	Servers server.Factory

	// Logger receives warnings about skipped handlers and unsupported
	// configuration features.
	Logger *slog.Logger
}

// Helper is the ClientConfigurer implementation.
type Helper struct {
	resources fs.FS
	loader    classloading.Loader
	provider  classloading.Provider
	servers   server.Factory
	logger    *slog.Logger
}

// New creates a Helper.
func New(opts Options) *Helper {
	return &Helper{
		resources: opts.Resources,
		loader:    opts.Loader,
		provider:  opts.Provider,
		servers:   opts.Servers,
		logger:    logging.WithComponent(opts.Logger, logging.ComponentConfigurer),
	}
}

// SetConfigHandlers implements ClientConfigurer.
func (h *Helper) SetConfigHandlers(port BindingProvider, configFile, configName string) error {
	if port == nil {
		return errors.New("binding provider cannot be nil")
	}
	cc, err := h.ReadConfig(configFile, configName)
	if err != nil {
		return err
	}
	return h.SetupConfigHandlers(port.Binding(), &cc.CommonConfig)
}

// SetConfigProperties implements ClientConfigurer. It is not supported.
func (h *Helper) SetConfigProperties(proxy any, configFile, configName string) error {
	return fmt.Errorf("%w: SetConfigProperties by %T", ErrOperationNotSupported, h)
}

// ReadConfig resolves a client configuration by name. With a configFile it
// is read from the helper's resources; otherwise the server configuration
// registry is scanned.
func (h *Helper) ReadConfig(configFile, configName string) (*config.ClientConfig, error) {
	if configFile != "" {
		cc, err := h.readConfigFile(configFile, configName)
		if err != nil {
			return nil, err
		}
		if cc != nil {
			return cc, nil
		}
	} else if sc := h.serverConfig(); sc != nil {
		for _, cc := range sc.ClientConfigs() {
			if cc != nil && cc.Name == configName {
				return cc, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrConfigurationNotFound, configName)
}

func (h *Helper) readConfigFile(configFile, configName string) (*config.ClientConfig, error) {
	if h.resources == nil {
		return nil, fmt.Errorf("%w %s: no resources configured", ErrCouldNotReadConfiguration, configFile)
	}

	f, err := h.resources.Open(strings.TrimPrefix(configFile, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCouldNotReadConfiguration, configFile, err)
	}
	defer func() { _ = f.Close() }()

	root, err := config.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCouldNotReadConfiguration, configFile, err)
	}
	return root.ClientConfigByName(configName), nil
}

func (h *Helper) serverConfig() *server.Config {
	if h.servers == nil {
		return nil
	}
	return h.servers.ServerConfig()
}

// SetupConfigHandlers replaces the chain of b with the pre handlers of cfg,
// the handlers already on b that were not installed from a configuration,
// and the post handlers of cfg, in that order. A nil cfg is a no-op. When a
// configured class is not a handler, ErrNotHandler is returned and b is not
// modified.
func (h *Helper) SetupConfigHandlers(b Binding, cfg *config.CommonConfig) error {
	if cfg == nil {
		return nil
	}

	_, endpoint := handler.SplitConfigHandlers(b.HandlerChain())
	token := binding.ProtocolToken(b.BindingID())

	pre, err := h.convertToHandlers(cfg.PreHandlerChains, token, true)
	if err != nil {
		return err
	}
	post, err := h.convertToHandlers(cfg.PostHandlerChains, token, false)
	if err != nil {
		return err
	}

	chain := make([]handler.Handler, 0, len(pre)+len(endpoint)+len(post))
	chain = append(chain, pre...)
	chain = append(chain, endpoint...)
	chain = append(chain, post...)
	b.SetHandlerChain(chain)

	h.logger.Debug("installed handler chain",
		"config", cfg.Name,
		"binding", b.BindingID(),
		"pre", len(pre),
		"endpoint", len(endpoint),
		"post", len(post),
	)
	return nil
}

func (h *Helper) convertToHandlers(chains []*config.HandlerChain, token string, pre bool) ([]handler.Handler, error) {
	var handlers []handler.Handler
	for _, chain := range chains {
		if chain == nil {
			continue
		}
		if chain.HasNameFilter() {
			h.logger.Warn("handler chain filters not supported",
				"portNamePattern", chain.PortNamePattern,
				"serviceNamePattern", chain.ServiceNamePattern,
			)
		}
		if !binding.MatchProtocolBinding(token, chain.ProtocolBindings) {
			h.logger.Debug("skipping handler chain for protocol binding",
				"protocolBindings", chain.ProtocolBindings,
				"binding", token,
			)
			continue
		}

		for _, decl := range chain.Handlers {
			if decl == nil {
				continue
			}
			if len(decl.InitParams) > 0 {
				h.logger.Warn("handler init params not supported", "class", decl.Class)
			}

			v := h.newInstance(decl.Class)
			if v == nil {
				continue
			}
			wrapped, ok := handler.Wrap(v, pre)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrNotHandler, decl.Class)
			}
			handlers = append(handlers, wrapped)
		}
	}
	return handlers, nil
}

// newInstance instantiates className through the caller's loader layered
// over the server integration loader. Failures are logged and yield nil.
func (h *Helper) newInstance(className string) any {
	var serverLoader classloading.Loader
	if h.provider != nil {
		serverLoader = h.provider.ServerIntegrationLoader()
	}
	loader := classloading.NewDelegateLoader(h.loader, serverLoader)

	v, err := classloading.Instantiate(loader, className)
	if err == nil && v == nil {
		err = fmt.Errorf("%w %s: factory returned nil", classloading.ErrInstantiation, className)
	}
	if err != nil {
		h.logger.Warn("cannot add handler", "class", className, "error", err)
		return nil
	}
	return v
}
