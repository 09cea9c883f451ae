package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/getmockd/wsconfig/pkg/binding"
	"github.com/getmockd/wsconfig/pkg/classloading"
	"github.com/getmockd/wsconfig/pkg/configurer"
	"github.com/getmockd/wsconfig/pkg/handler"
	"github.com/getmockd/wsconfig/pkg/handlers"
	"github.com/getmockd/wsconfig/pkg/server"
)

// ErrUnknownBinding is returned for a --binding value that is neither an
// alias nor a known binding ID.
var ErrUnknownBinding = errors.New("unknown binding")

// resolver holds what a command needs to resolve and install configs.
type resolver struct {
	helper       *configurer.Helper
	resource     string
	serverLoader *classloading.Registry
}

// newResolver builds a configurer reading configFile, or the server
// configuration directory when configFile is empty. The framework handlers
// are available through the server integration loader.
func newResolver(configFile string, logger *slog.Logger) (*resolver, error) {
	r := &resolver{serverLoader: handlers.NewServerLoader(logger)}
	opts := configurer.Options{
		Provider: classloading.StaticProvider{Loader: r.serverLoader},
		Logger:   logger,
	}

	if configFile != "" {
		abs, err := filepath.Abs(configFile)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		opts.Resources = os.DirFS(filepath.Dir(abs))
		r.resource = filepath.Base(abs)
	} else {
		sc, err := server.FromEnv(logger)
		if err != nil {
			return nil, err
		}
		opts.Servers = server.StaticFactory{Config: sc}
	}

	r.helper = configurer.New(opts)
	return r, nil
}

// endpointHandlers instantiates framework handler classes to stand in for
// the handlers an application put on its binding.
func (r *resolver) endpointHandlers(classes []string) ([]handler.Handler, error) {
	chain := make([]handler.Handler, 0, len(classes))
	for _, class := range classes {
		v, err := classloading.Instantiate(r.serverLoader, class)
		if err != nil {
			return nil, err
		}
		h, ok := v.(handler.Handler)
		if !ok || handler.Classify(v) == handler.KindNone {
			return nil, fmt.Errorf("%w: %s", configurer.ErrNotHandler, class)
		}
		chain = append(chain, h)
	}
	return chain, nil
}

// parseBinding accepts an alias (soap11, soap12, soap11-mtom, soap12-mtom,
// xml) or a binding ID.
func parseBinding(s string) (string, error) {
	id, ok := binding.ParseID(s)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownBinding, s)
	}
	return id, nil
}
