package forms

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formrender/pkg/conf"
	"github.com/goliatone/go-formrender/pkg/testsupport"
)

func TestDefaultCell_CachesFirstRenderer(t *testing.T) {
	settings := conf.Settings{FormRenderer: "django"}
	reads := 0
	cell := &DefaultCell{Settings: func() conf.Settings {
		reads++
		return settings
	}}

	first, err := cell.Renderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	settings.FormRenderer = "handlebars"

	second, err := cell.Renderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	if first != second {
		t.Fatalf("expected the cached renderer to be returned")
	}
	if _, ok := second.(*DjangoRenderer); !ok {
		t.Fatalf("expected settings changes to be ignored, got %T", second)
	}
	if reads != 1 {
		t.Fatalf("expected settings to be read once, got %d", reads)
	}
}

func TestDefaultCell_DoesNotCacheFailures(t *testing.T) {
	settings := conf.Settings{FormRenderer: "missing"}
	cell := &DefaultCell{
		Registry: DefaultRegistry(),
		Settings: func() conf.Settings { return settings },
	}

	if _, err := cell.Renderer(); !errors.Is(err, conf.ErrImproperlyConfigured) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	settings.FormRenderer = "handlebars"
	renderer, err := cell.Renderer()
	if err != nil {
		t.Fatalf("renderer after fixing settings: %v", err)
	}
	if _, ok := renderer.(*HandlebarsRenderer); !ok {
		t.Fatalf("expected handlebars renderer, got %T", renderer)
	}
}

// The package-level renderer is process-wide; this is the only test that
// touches it.
func TestDefaultRenderer_ProcessWide(t *testing.T) {
	root := t.TempDir()
	projectDir := filepath.Join(root, "project")
	testsupport.WriteFile(t, filepath.Join(projectDir, "page.html"), "  <h1>{{ title }}</h1>\n")

	conf.Configure(conf.Settings{
		FormRenderer: "project",
		Templates:    []conf.TemplateBackend{{Backend: "django", Dirs: []string{projectDir}}},
	})
	t.Cleanup(func() { conf.Configure(conf.Defaults()) })

	first, err := DefaultRenderer()
	if err != nil {
		t.Fatalf("default renderer: %v", err)
	}
	out, err := first.Render("page.html", map[string]any{"title": "Welcome"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<h1>Welcome</h1>" {
		t.Fatalf("unexpected output %q", out)
	}

	conf.Configure(conf.Settings{FormRenderer: "handlebars"})
	second, err := DefaultRenderer()
	if err != nil {
		t.Fatalf("default renderer: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical default renderer instances")
	}
	if _, err := second.Render("page.html", nil, nil); err != nil {
		t.Fatalf("expected the renderer to keep the settings it was built from: %v", err)
	}
}

// loader.Default is process-wide; this is the only test in the package that
// reaches it.
func TestProjectRenderer_NilLoaderUsesProcessLoader(t *testing.T) {
	projectDir := filepath.Join(t.TempDir(), "project")
	testsupport.WriteFile(t, filepath.Join(projectDir, "site.html"), "<p>{{ name }}</p>")

	conf.Configure(conf.Settings{
		FormRenderer: RendererProject,
		Templates:    []conf.TemplateBackend{{Backend: "django", Dirs: []string{projectDir}}},
	})
	t.Cleanup(func() { conf.Configure(conf.Defaults()) })

	renderer := NewProjectRenderer(nil)
	out, err := renderer.Render("site.html", map[string]any{"name": "Acme"}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<p>Acme</p>" {
		t.Fatalf("unexpected output %q", out)
	}
}
