// Package handlebars adapts raymond, a Handlebars implementation, to the
// template.Engine contract. Per-application templates live in each
// application's "handlebars" directory.
package handlebars

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aymerick/raymond"

	"github.com/goliatone/go-formrender/pkg/render/template"
)

const (
	// AppDirname is the per-application template directory searched by this
	// engine.
	AppDirname = "handlebars"
	// BackendName identifies this engine in project settings.
	BackendName = "handlebars"
)

// Engine resolves templates along its search path and parses them with
// raymond.
type Engine struct {
	name       string
	dirs       []template.Dir
	globals    map[string]any
	debug      bool
	processors []template.ContextProcessor
	logger     *slog.Logger

	mu        sync.RWMutex
	templates map[string]*Template
}

var _ template.Engine = (*Engine)(nil)

// New builds an engine from cfg.
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

	return &Engine{
		name:       name,
		dirs:       dirs,
		globals:    opts.Globals,
		debug:      opts.Debug,
		processors: cfg.ContextProcessors,
		logger:     cfg.Log(),
		templates:  make(map[string]*Template),
	}, nil
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

	parsed, err := raymond.Parse(string(source))
	if err != nil {
		return nil, &template.SyntaxError{Origin: origin, Err: err}
	}
	parsed.RegisterHelpers(defaultHelpers())
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

// Template is a parsed Handlebars template.
type Template struct {
	tpl    *raymond.Template
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
		return "", fmt.Errorf("handlebars: build context: %w", err)
	}
	out, err := t.tpl.Exec(ctx)
	if err != nil {
		return "", fmt.Errorf("handlebars: execute template %q: %w", t.origin.Name, err)
	}
	return out, nil
}

// defaultHelpers are registered on every parsed template rather than in
// raymond's global table, where names owned by the host program would clash.
// Template helpers shadow global ones.
func defaultHelpers() map[string]interface{} {
	return map[string]interface{}{
		"attrs":    helperAttrs,
		"sanitize": helperSanitize,
	}
}

func helperAttrs(attrs interface{}) raymond.SafeString {
	return raymond.SafeString(template.FlatAttrs(attrs))
}

func helperSanitize(value interface{}) raymond.SafeString {
	if value == nil {
		return ""
	}
	return raymond.SafeString(template.Sanitize(raymond.Str(value)))
}
