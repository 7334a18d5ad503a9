package template

import (
	"io"
	"log/slog"
	"net/http"
)

// Template is a parsed template bound to the location it was loaded from.
type Template interface {
	Origin() Origin
	// Render executes the template. req may be nil; when present it is exposed
	// as "request" and the engine's context processors run.
	Render(data map[string]any, req *http.Request) (string, error)
}

// Engine resolves template names to parsed templates.
type Engine interface {
	Name() string
	GetTemplate(name string) (Template, error)
}

// AppSource yields per-application template directories in registration
// order. *apps.Registry satisfies it.
type AppSource interface {
	TemplateDirs(dirname string) []string
}

// ContextProcessor contributes values to the render context of requests.
type ContextProcessor func(req *http.Request) map[string]any

// Config describes an engine instance.
type Config struct {
	// Name distinguishes the engine from other configured engines.
	Name string
	// AppDirs enables the per-application directories from Apps.
	AppDirs bool
	Apps    AppSource
	// Dirs are searched first, in order.
	Dirs []string
	// FallbackDirs are searched last, in order.
	FallbackDirs []Dir
	// Options holds backend options; see ParseOptions.
	Options           map[string]any
	ContextProcessors []ContextProcessor
	Logger            *slog.Logger
}

// Log returns the configured logger or one that discards everything.
func (c Config) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
