package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formrender/pkg/apps"
	"github.com/goliatone/go-formrender/pkg/conf"
	"github.com/goliatone/go-formrender/pkg/render/template"
)

func TestLoader_TriesEnginesInOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "hbs", "shared.html"), "{{name}}")
	writeFile(t, filepath.Join(root, "hbs", "hbs-only.html"), "hbs")
	writeFile(t, filepath.Join(root, "blog", "templates", "shared.html"), "{{ name }}")

	registry, err := apps.NewRegistry(apps.App{Label: "blog", Path: filepath.Join(root, "blog")})
	if err != nil {
		t.Fatalf("apps: %v", err)
	}

	loader, err := New([]conf.TemplateBackend{
		{Backend: "django", AppDirs: true},
		{Backend: "handlebars", Name: "hbs", Dirs: []string{filepath.Join(root, "hbs")}},
	}, registry)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	tpl, err := loader.GetTemplate("shared.html")
	if err != nil {
		t.Fatalf("get template: %v", err)
	}
	if tpl.Origin().Engine != "django" {
		t.Fatalf("expected the django engine to win, got %q", tpl.Origin().Engine)
	}

	tpl, err = loader.GetTemplate("hbs-only.html")
	if err != nil {
		t.Fatalf("get template: %v", err)
	}
	if tpl.Origin().Engine != "hbs" {
		t.Fatalf("expected the hbs engine, got %q", tpl.Origin().Engine)
	}

	if _, ok := loader.Engine("hbs"); !ok {
		t.Fatalf("expected engine lookup by name")
	}
	if got := len(loader.Engines()); got != 2 {
		t.Fatalf("expected 2 engines, got %d", got)
	}
}

func TestLoader_NotFoundListsEveryEngine(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	loader, err := New([]conf.TemplateBackend{
		{Backend: "django", Dirs: []string{first}},
		{Backend: "handlebars", Dirs: []string{second}},
	}, nil)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	_, err = loader.GetTemplate("missing.html")
	var notFound *template.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(notFound.Tried) != 2 {
		t.Fatalf("expected both engines in the tried list, got %+v", notFound.Tried)
	}
	if notFound.Tried[0].Dir != first || notFound.Tried[1].Dir != second {
		t.Fatalf("unexpected tried order %+v", notFound.Tried)
	}
}

func TestLoader_SyntaxErrorStopsLookup(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "page.html"), "{% for %}")
	writeFile(t, filepath.Join(second, "page.html"), "fine")

	loader, err := New([]conf.TemplateBackend{
		{Backend: "django", Dirs: []string{first}},
		{Backend: "handlebars", Dirs: []string{second}},
	}, nil)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	if _, err := loader.GetTemplate("page.html"); !errors.Is(err, template.ErrTemplateSyntax) {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestLoader_EmptyProjectFindsNothing(t *testing.T) {
	loader, err := New(nil, nil)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	if _, err := loader.GetTemplate("forms/widgets/input.html"); !errors.Is(err, template.ErrTemplateNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNew_ConfigurationErrors(t *testing.T) {
	cases := map[string][]conf.TemplateBackend{
		"unknown backend": {{Backend: "jinja2"}},
		"duplicate names": {{Backend: "django"}, {Backend: "handlebars", Name: "django"}},
		"bad options":     {{Backend: "django", Options: map[string]any{"loaders": true}}},
	}
	for name, backends := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(backends, nil)
			if !errors.Is(err, conf.ErrImproperlyConfigured) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
