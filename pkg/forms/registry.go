package forms

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formrender/pkg/apps"
	"github.com/goliatone/go-formrender/pkg/conf"
	tplloader "github.com/goliatone/go-formrender/pkg/render/template/loader"
)

// Built-in renderer identifiers accepted by FORM_RENDERER.
const (
	RendererDjango     = "django"
	RendererHandlebars = "handlebars"
	RendererProject    = "project"
)

// Factory builds a renderer from settings.
type Factory func(settings conf.Settings, opts ...Option) (Renderer, error)

// Registry maps renderer identifiers to factories. Identifiers are matched
// case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

var defaultRegistry = newBuiltinRegistry()

// DefaultRegistry returns the process-wide registry holding the built-in
// renderers. Custom renderers registered here become valid FORM_RENDERER
// values.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func newBuiltinRegistry() *Registry {
	reg := NewRegistry()
	reg.MustRegister(RendererDjango, func(settings conf.Settings, opts ...Option) (Renderer, error) {
		registry, err := apps.FromSettings(settings)
		if err != nil {
			return nil, err
		}
		return NewDjangoRenderer(append([]Option{WithApps(registry)}, opts...)...), nil
	})
	reg.MustRegister(RendererHandlebars, func(settings conf.Settings, opts ...Option) (Renderer, error) {
		registry, err := apps.FromSettings(settings)
		if err != nil {
			return nil, err
		}
		return NewHandlebarsRenderer(append([]Option{WithApps(registry)}, opts...)...), nil
	})
	reg.MustRegister(RendererProject, func(settings conf.Settings, opts ...Option) (Renderer, error) {
		o := applyOptions(opts)
		loader, err := tplloader.FromSettings(settings,
			tplloader.WithLogger(o.logger),
			tplloader.WithContextProcessors(o.processors...),
		)
		if err != nil {
			return nil, err
		}
		return NewProjectRenderer(loader), nil
	})
	return reg
}

func normalizeID(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a factory. Duplicate identifiers return an error.
func (r *Registry) Register(name string, factory Factory) error {
	id := normalizeID(name)
	if id == "" {
		return fmt.Errorf("forms: renderer name is required")
	}
	if factory == nil {
		return fmt.Errorf("forms: renderer %q needs a factory", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("forms: renderer %q already registered", id)
	}
	r.factories[id] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for name or a configuration error listing the
// known identifiers.
func (r *Registry) Lookup(name string) (Factory, error) {
	id := normalizeID(name)

	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, &conf.ConfigurationError{
			Setting: "form_renderer",
			Value:   name,
			Reason:  "unknown renderer",
			Known:   r.List(),
		}
	}
	return factory, nil
}

// Validate checks that settings.FormRenderer names a registered renderer.
func (r *Registry) Validate(settings conf.Settings) error {
	_, err := r.Lookup(settings.FormRenderer)
	return err
}

// New instantiates the renderer named by settings.FormRenderer.
func (r *Registry) New(settings conf.Settings, opts ...Option) (Renderer, error) {
	factory, err := r.Lookup(settings.FormRenderer)
	if err != nil {
		return nil, err
	}
	renderer, err := factory(settings, opts...)
	if err != nil {
		return nil, fmt.Errorf("forms: build renderer %q: %w", normalizeID(settings.FormRenderer), err)
	}
	return renderer, nil
}

// List returns a sorted list of renderer identifiers.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[normalizeID(name)]
	return ok
}
