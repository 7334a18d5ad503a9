// Package apps tracks installed applications. Each application is a directory
// tree that may ship template overrides in a conventionally named
// subdirectory; the registry yields those directories in registration order.
package apps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-formrender/pkg/conf"
)

// App is an installed application rooted at Path.
type App struct {
	Label string
	Path  string
}

// Registry stores applications in registration order.
type Registry struct {
	mu   sync.RWMutex
	apps []App
}

// NewRegistry creates a registry holding the supplied applications.
func NewRegistry(apps ...App) (*Registry, error) {
	reg := &Registry{}
	for _, app := range apps {
		if err := reg.Register(app); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// FromSettings builds a registry from conf.Settings.InstalledApps.
func FromSettings(settings conf.Settings) (*Registry, error) {
	apps := make([]App, 0, len(settings.InstalledApps))
	for _, app := range settings.InstalledApps {
		apps = append(apps, App{Label: app.Label, Path: app.Path})
	}
	return NewRegistry(apps...)
}

// Register appends an application. Labels must be unique.
func (r *Registry) Register(app App) error {
	label := strings.TrimSpace(app.Label)
	if label == "" {
		return fmt.Errorf("apps: application label is required")
	}
	path := strings.TrimSpace(app.Path)
	if path == "" {
		return fmt.Errorf("apps: application %q has no path", label)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("apps: resolve path for %q: %w", label, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.apps {
		if existing.Label == label {
			return fmt.Errorf("apps: application %q already registered", label)
		}
	}
	r.apps = append(r.apps, App{Label: label, Path: abs})
	return nil
}

// Get returns the application registered under label.
func (r *Registry) Get(label string) (App, bool) {
	if r == nil {
		return App{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, app := range r.apps {
		if app.Label == label {
			return app, true
		}
	}
	return App{}, false
}

// Apps returns a copy of the registered applications in order.
func (r *Registry) Apps() []App {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]App(nil), r.apps...)
}

// TemplateDirs returns <app>/<dirname> for every application where that
// directory exists, in registration order.
func (r *Registry) TemplateDirs(dirname string) []string {
	var dirs []string
	for _, app := range r.Apps() {
		candidate := filepath.Join(app.Path, dirname)
		info, err := os.Stat(candidate)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, candidate)
	}
	return dirs
}
