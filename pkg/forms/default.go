package forms

import (
	"sync"

	"github.com/goliatone/go-formrender/pkg/conf"
)

// DefaultCell holds a renderer that is built once from settings. The first
// successful Renderer call reads the settings and caches the result; later
// calls return the same instance even if the settings change. Failed builds
// are not cached.
type DefaultCell struct {
	// Registry resolves the renderer identifier; nil means DefaultRegistry.
	Registry *Registry
	// Settings supplies the settings; nil means conf.Current.
	Settings func() conf.Settings
	// Options are passed to the renderer factory.
	Options []Option

	mu       sync.Mutex
	renderer Renderer
}

// Renderer returns the cached renderer, building it on first use.
func (c *DefaultCell) Renderer() (Renderer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.renderer != nil {
		return c.renderer, nil
	}

	registry := c.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	settingsFn := c.Settings
	if settingsFn == nil {
		settingsFn = conf.Current
	}

	renderer, err := registry.New(settingsFn(), c.Options...)
	if err != nil {
		return nil, err
	}
	c.renderer = renderer
	return renderer, nil
}

var defaultCell = &DefaultCell{}

// DefaultRenderer returns the process-wide renderer named by the
// FORM_RENDERER setting (conf.Current). It is built on first successful call
// and never rebuilt.
func DefaultRenderer() (Renderer, error) {
	return defaultCell.Renderer()
}
