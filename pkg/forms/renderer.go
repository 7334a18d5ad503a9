package forms

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-formrender/pkg/render/template"
	"github.com/goliatone/go-formrender/pkg/render/template/django"
	"github.com/goliatone/go-formrender/pkg/render/template/handlebars"
	tplloader "github.com/goliatone/go-formrender/pkg/render/template/loader"
)

// EngineName names the private engines of the self-contained renderers so
// they never collide with the project's own engines.
const EngineName = "formrender"

// Renderer resolves widget templates and renders them.
type Renderer interface {
	GetTemplate(name string) (template.Template, error)
	// Render resolves name, renders it with data (and req, which may be nil)
	// and trims surrounding whitespace from the result.
	Render(name string, data map[string]any, req *http.Request) (string, error)
}

// TemplateLoader is anything that resolves template names.
type TemplateLoader interface {
	GetTemplate(name string) (template.Template, error)
}

// RenderTemplate is the shared Render implementation: resolve, render, trim.
// Errors are returned unchanged.
func RenderTemplate(loader TemplateLoader, name string, data map[string]any, req *http.Request) (string, error) {
	tpl, err := loader.GetTemplate(name)
	if err != nil {
		return "", err
	}
	out, err := tpl.Render(data, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Option configures a renderer.
type Option func(*options)

type options struct {
	apps       template.AppSource
	logger     *slog.Logger
	processors []template.ContextProcessor
}

// WithApps sets the installed applications searched for overrides.
func WithApps(apps template.AppSource) Option {
	return func(o *options) {
		o.apps = apps
	}
}

// WithLogger sets the logger handed to the renderer's engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithContextProcessors registers processors that run for request renders.
func WithContextProcessors(processors ...template.ContextProcessor) Option {
	return func(o *options) {
		o.processors = append(o.processors, processors...)
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	return o
}

func (o options) engineConfig(fallback template.Dir) template.Config {
	return template.Config{
		Name:              EngineName,
		AppDirs:           true,
		Apps:              o.apps,
		FallbackDirs:      []template.Dir{fallback},
		ContextProcessors: o.processors,
		Logger:            o.logger,
	}
}

// engineCell builds an engine on first successful use and keeps it for the
// renderer's lifetime. Failed builds are retried on the next call.
type engineCell struct {
	build func() (template.Engine, error)

	mu     sync.Mutex
	engine template.Engine
}

func (c *engineCell) get() (template.Engine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.engine != nil {
		return c.engine, nil
	}
	engine, err := c.build()
	if err != nil {
		return nil, err
	}
	c.engine = engine
	return engine, nil
}

// DjangoRenderer renders Django-syntax templates from installed applications
// with the built-in widget templates as fallback.
type DjangoRenderer struct {
	cell engineCell
}

var _ Renderer = (*DjangoRenderer)(nil)

// NewDjangoRenderer constructs the renderer. The engine is built lazily.
func NewDjangoRenderer(opts ...Option) *DjangoRenderer {
	cfg := applyOptions(opts).engineConfig(builtinTemplatesDir())
	return &DjangoRenderer{cell: engineCell{build: func() (template.Engine, error) {
		return django.New(cfg)
	}}}
}

// Engine returns the renderer's engine, building it on first use.
func (r *DjangoRenderer) Engine() (template.Engine, error) {
	return r.cell.get()
}

func (r *DjangoRenderer) GetTemplate(name string) (template.Template, error) {
	engine, err := r.Engine()
	if err != nil {
		return nil, err
	}
	return engine.GetTemplate(name)
}

func (r *DjangoRenderer) Render(name string, data map[string]any, req *http.Request) (string, error) {
	return RenderTemplate(r, name, data, req)
}

// HandlebarsRenderer renders Handlebars templates from installed applications
// with the built-in Handlebars widget templates as fallback.
type HandlebarsRenderer struct {
	cell engineCell
}

var _ Renderer = (*HandlebarsRenderer)(nil)

// NewHandlebarsRenderer constructs the renderer. The engine is built lazily.
func NewHandlebarsRenderer(opts ...Option) *HandlebarsRenderer {
	cfg := applyOptions(opts).engineConfig(builtinHandlebarsDir())
	return &HandlebarsRenderer{cell: engineCell{build: func() (template.Engine, error) {
		return handlebars.New(cfg)
	}}}
}

// Engine returns the renderer's engine, building it on first use.
func (r *HandlebarsRenderer) Engine() (template.Engine, error) {
	return r.cell.get()
}

func (r *HandlebarsRenderer) GetTemplate(name string) (template.Template, error) {
	engine, err := r.Engine()
	if err != nil {
		return nil, err
	}
	return engine.GetTemplate(name)
}

func (r *HandlebarsRenderer) Render(name string, data map[string]any, req *http.Request) (string, error) {
	return RenderTemplate(r, name, data, req)
}

// ProjectRenderer delegates every lookup to the project's template loader.
// Whether the built-in widgets resolve depends entirely on the project's
// template settings.
type ProjectRenderer struct {
	loader TemplateLoader
}

var _ Renderer = (*ProjectRenderer)(nil)

// NewProjectRenderer wraps loader. A nil loader means the process-wide
// project loader (loader.Default), resolved on each lookup.
func NewProjectRenderer(loader TemplateLoader) *ProjectRenderer {
	return &ProjectRenderer{loader: loader}
}

func (r *ProjectRenderer) GetTemplate(name string) (template.Template, error) {
	if r.loader != nil {
		return r.loader.GetTemplate(name)
	}
	loader, err := tplloader.Default()
	if err != nil {
		return nil, err
	}
	return loader.GetTemplate(name)
}

func (r *ProjectRenderer) Render(name string, data map[string]any, req *http.Request) (string, error) {
	return RenderTemplate(r, name, data, req)
}
