// Package loader is the project's template-loading facility: it builds one
// engine per configured backend (conf.Settings.Templates) and resolves names
// by trying the engines in declaration order.
package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formrender/pkg/apps"
	"github.com/goliatone/go-formrender/pkg/conf"
	"github.com/goliatone/go-formrender/pkg/render/template"
	"github.com/goliatone/go-formrender/pkg/render/template/django"
	"github.com/goliatone/go-formrender/pkg/render/template/handlebars"
)

// Backend constructs an engine from its configuration.
type Backend func(cfg template.Config) (template.Engine, error)

var backends = map[string]Backend{
	django.BackendName: func(cfg template.Config) (template.Engine, error) {
		return django.New(cfg)
	},
	handlebars.BackendName: func(cfg template.Config) (template.Engine, error) {
		return handlebars.New(cfg)
	},
}

// Backends returns the supported backend identifiers.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Option configures a Loader.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	processors []template.ContextProcessor
}

// WithLogger sets the logger handed to every engine.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithContextProcessors registers processors on every engine.
func WithContextProcessors(processors ...template.ContextProcessor) Option {
	return func(cfg *config) {
		cfg.processors = append(cfg.processors, processors...)
	}
}

// Loader tries its engines in order.
type Loader struct {
	engines []template.Engine
}

// New builds a loader for the declared backends. Engine names default to the
// backend identifier and must be unique.
func New(backendsCfg []conf.TemplateBackend, registry *apps.Registry, options ...Option) (*Loader, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	loader := &Loader{}
	seen := make(map[string]struct{}, len(backendsCfg))
	for idx, backendCfg := range backendsCfg {
		id := strings.ToLower(strings.TrimSpace(backendCfg.Backend))
		backend, ok := backends[id]
		if !ok {
			return nil, &conf.ConfigurationError{
				Setting: fmt.Sprintf("templates[%d].backend", idx),
				Value:   backendCfg.Backend,
				Reason:  "unknown template backend",
				Known:   Backends(),
			}
		}

		name := strings.TrimSpace(backendCfg.Name)
		if name == "" {
			name = id
		}
		if _, exists := seen[name]; exists {
			return nil, &conf.ConfigurationError{
				Setting: "templates",
				Value:   name,
				Reason:  "template engine names aren't unique",
			}
		}
		seen[name] = struct{}{}

		engineCfg := template.Config{
			Name:              name,
			AppDirs:           backendCfg.AppDirs,
			Dirs:              backendCfg.Dirs,
			Options:           backendCfg.Options,
			ContextProcessors: cfg.processors,
			Logger:            cfg.logger,
		}
		if registry != nil {
			engineCfg.Apps = registry
		}
		engine, err := backend(engineCfg)
		if err != nil {
			return nil, fmt.Errorf("loader: configure engine %q: %w", name, err)
		}
		loader.engines = append(loader.engines, engine)
	}
	return loader, nil
}

// FromSettings builds a loader from settings.Templates and settings.InstalledApps.
func FromSettings(settings conf.Settings, options ...Option) (*Loader, error) {
	registry, err := apps.FromSettings(settings)
	if err != nil {
		return nil, err
	}
	return New(settings.Templates, registry, options...)
}

// Engines returns the configured engines in lookup order.
func (l *Loader) Engines() []template.Engine {
	return append([]template.Engine(nil), l.engines...)
}

// Engine returns the engine registered under name.
func (l *Loader) Engine(name string) (template.Engine, bool) {
	for _, engine := range l.engines {
		if engine.Name() == name {
			return engine, true
		}
	}
	return nil, false
}

// GetTemplate returns the first engine's match for name. Only not-found
// errors move on to the next engine; the returned NotFoundError lists every
// location tried by every engine.
func (l *Loader) GetTemplate(name string) (template.Template, error) {
	var tried []template.Origin
	for _, engine := range l.engines {
		tpl, err := engine.GetTemplate(name)
		if err == nil {
			return tpl, nil
		}
		var notFound *template.NotFoundError
		if errors.As(err, &notFound) {
			tried = append(tried, notFound.Tried...)
			continue
		}
		if errors.Is(err, template.ErrTemplateNotFound) {
			continue
		}
		return nil, err
	}
	return nil, &template.NotFoundError{Name: name, Tried: tried}
}

var (
	defaultMu     sync.Mutex
	defaultLoader *Loader
)

// Default returns the process-wide loader built from conf.Current() on first
// successful use.
func Default() (*Loader, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLoader != nil {
		return defaultLoader, nil
	}
	loader, err := FromSettings(conf.Current())
	if err != nil {
		return nil, err
	}
	defaultLoader = loader
	return loader, nil
}
