package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

type staticApps []string

func (s staticApps) TemplateDirs(dirname string) []string {
	out := make([]string, 0, len(s))
	for _, root := range s {
		out = append(out, filepath.Join(root, dirname))
	}
	return out
}

func TestSearchPath_Order(t *testing.T) {
	fallback := EmbeddedDir("forms/templates", fstest.MapFS{})
	cfg := Config{
		AppDirs:      true,
		Apps:         staticApps{"/apps/one", "/apps/two"},
		Dirs:         []string{"/project/templates", " "},
		FallbackDirs: []Dir{fallback, {Path: "builtin:empty"}},
	}

	got := make([]string, 0)
	for _, dir := range SearchPath(cfg, "templates") {
		got = append(got, dir.Path)
	}
	want := []string{
		"/project/templates",
		"/apps/one/templates",
		"/apps/two/templates",
		"builtin:forms/templates",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("search path mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchPath_AppDirsDisabled(t *testing.T) {
	cfg := Config{Apps: staticApps{"/apps/one"}}
	if dirs := SearchPath(cfg, "templates"); len(dirs) != 0 {
		t.Fatalf("expected app dirs to be skipped, got %v", dirs)
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeTemplate(t, filepath.Join(second, "widgets", "input.html"), "second")
	writeTemplate(t, filepath.Join(first, "widgets", "other.html"), "first")
	if err := os.MkdirAll(filepath.Join(first, "widgets", "input.html"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	builtin := EmbeddedDir("forms", fstest.MapFS{
		"widgets/input.html": {Data: []byte("builtin")},
	})

	dirs := []Dir{DiskDir(first), DiskDir(second), builtin}
	origin, source, err := Find(dirs, "test", "widgets/input.html")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if string(source) != "second" {
		t.Fatalf("expected the second directory to win, got %q", source)
	}
	if want := filepath.Join(second, "widgets", "input.html"); origin.Path() != want {
		t.Fatalf("origin mismatch\nwant: %s\n got: %s", want, origin.Path())
	}
	if origin.Engine != "test" {
		t.Fatalf("expected engine name on origin, got %q", origin.Engine)
	}
}

func TestFind_Builtin(t *testing.T) {
	builtin := EmbeddedDir("forms/templates", fstest.MapFS{
		"widgets/input.html": {Data: []byte("builtin")},
	})
	origin, _, err := Find([]Dir{DiskDir(t.TempDir()), builtin}, "test", "widgets/input.html")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got := origin.Path(); got != "builtin:forms/templates/widgets/input.html" {
		t.Fatalf("unexpected builtin origin %q", got)
	}
}

func TestFind_NotFound(t *testing.T) {
	root := t.TempDir()
	_, _, err := Find([]Dir{DiskDir(root)}, "test", "missing.html")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if len(notFound.Tried) != 1 || notFound.Tried[0].Path() != filepath.Join(root, "missing.html") {
		t.Fatalf("unexpected tried list %+v", notFound.Tried)
	}
}

func TestFind_RejectsEscapingNames(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, filepath.Join(root, "secret.html"), "secret")
	inner := filepath.Join(root, "inner")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	for _, name := range []string{"../secret.html", "/etc/passwd", "", "."} {
		_, _, err := Find([]Dir{DiskDir(inner)}, "test", name)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Fatalf("%q: expected not found, got %v", name, err)
		}
	}
}

func TestSyntaxError_Wraps(t *testing.T) {
	cause := errors.New("unexpected token")
	err := error(&SyntaxError{Origin: Origin{Name: "a.html", Dir: "/t"}, Err: cause})
	if !errors.Is(err, ErrTemplateSyntax) || !errors.Is(err, cause) {
		t.Fatalf("expected syntax error to match sentinel and cause: %v", err)
	}
}

func writeTemplate(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
