// Package django adapts pongo2, a Django-syntax template engine, to the
// template.Engine contract. Per-application templates live in each
// application's "templates" directory.
package django

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formrender/pkg/render/template"
)

// AppDirname is the per-application template directory searched by this
// engine.
const AppDirname = "templates"

// BackendName identifies this engine in project settings.
const BackendName = "django"

// Engine resolves templates along its search path and parses them with a
// dedicated pongo2 template set.
type Engine struct {
	name       string
	dirs       []template.Dir
	set        *pongo2.TemplateSet
	globals    map[string]any
	debug      bool
	processors []template.ContextProcessor
	logger     *slog.Logger

	mu        sync.RWMutex
	templates map[string]*Template
}

var _ template.Engine = (*Engine)(nil)

// New builds an engine from cfg. An empty search path is valid and resolves
// nothing. The pongo2 set loads {% include %} and
// {% extends %} targets through the same search path.
func New(cfg template.Config) (*Engine, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = BackendName
	}

	opts, err := template.ParseOptions(name, cfg.Options)
	if err != nil {
		return nil, err
	}

	dirs := template.SearchPath(cfg, AppDirname)
	loaders := make([]pongo2.TemplateLoader, 0, len(dirs))
	for _, dir := range dirs {
		loaders = append(loaders, pongo2.NewFSLoader(dir.FS))
	}

	registerDefaultFilters()

	engine := &Engine{
		name:       name,
		dirs:       dirs,
		globals:    opts.Globals,
		debug:      opts.Debug,
		processors: cfg.ContextProcessors,
		logger:     cfg.Log(),
		templates:  make(map[string]*Template),
	}
	// pongo2 refuses sets without loaders; an engine with an empty search
	// path never gets past Find anyway.
	if len(loaders) > 0 {
		engine.set = pongo2.NewSet(name, loaders...)
	}
	return engine, nil
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return e.name
}

// Dirs returns the search path in lookup order.
func (e *Engine) Dirs() []template.Dir {
	return append([]template.Dir(nil), e.dirs...)
}

// GetTemplate resolves name along the search path and parses it.
func (e *Engine) GetTemplate(name string) (template.Template, error) {
	if !e.debug {
		e.mu.RLock()
		tpl, ok := e.templates[name]
		e.mu.RUnlock()
		if ok {
			return tpl, nil
		}
	}

	origin, source, err := template.Find(e.dirs, e.name, name)
	if err != nil {
		return nil, err
	}

	parsed, err := e.set.FromBytes(source)
	if err != nil {
		return nil, &template.SyntaxError{Origin: origin, Err: err}
	}
	e.logger.Debug("template resolved",
		slog.String("engine", e.name),
		slog.String("template", name),
		slog.String("origin", origin.Path()),
	)

	tpl := &Template{tpl: parsed, origin: origin, engine: e}
	if !e.debug {
		e.mu.Lock()
		e.templates[name] = tpl
		e.mu.Unlock()
	}
	return tpl, nil
}

// Template is a parsed pongo2 template.
type Template struct {
	tpl    *pongo2.Template
	origin template.Origin
	engine *Engine
}

var _ template.Template = (*Template)(nil)

// Origin reports where the template was loaded from.
func (t *Template) Origin() template.Origin {
	return t.origin
}

// Render executes the template with data layered over the engine globals.
func (t *Template) Render(data map[string]any, req *http.Request) (string, error) {
	ctx, err := template.BuildContext(t.engine.globals, t.engine.processors, data, req)
	if err != nil {
		return "", fmt.Errorf("django: build context: %w", err)
	}
	out, err := t.tpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return "", fmt.Errorf("django: execute template %q: %w", t.origin.Name, err)
	}
	return out, nil
}

var filtersOnce sync.Once

// registerDefaultFilters installs the widget filters in pongo2's global
// filter table.
func registerDefaultFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("flatatt") {
			_ = pongo2.RegisterFilter("flatatt", filterFlatAttrs)
		}
		if !pongo2.FilterExists("sanitize") {
			_ = pongo2.RegisterFilter("sanitize", filterSanitize)
		}
	})
}

func filterFlatAttrs(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in == nil || in.IsNil() {
		return pongo2.AsSafeValue(""), nil
	}
	return pongo2.AsSafeValue(template.FlatAttrs(in.Interface())), nil
}

func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in == nil || in.IsNil() {
		return pongo2.AsSafeValue(""), nil
	}
	return pongo2.AsSafeValue(template.Sanitize(in.String())), nil
}
