// Package testsupport holds helpers shared by the renderer tests: on-disk
// application trees, settings files and golden comparisons.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrender/pkg/apps"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// AppTree creates an application directory under root named label and writes
// files (paths relative to the application root). The returned App is ready
// to register.
func AppTree(t *testing.T, root, label string, files map[string]string) apps.App {
	t.Helper()

	appRoot := filepath.Join(root, label)
	if err := os.MkdirAll(appRoot, 0o755); err != nil {
		t.Fatalf("mkdir app %s: %v", label, err)
	}
	for rel, content := range files {
		WriteFile(t, filepath.Join(appRoot, filepath.FromSlash(rel)), content)
	}
	return apps.App{Label: label, Path: appRoot}
}

// MustRegistry builds an apps.Registry or fails the test.
func MustRegistry(t *testing.T, installed ...apps.App) *apps.Registry {
	t.Helper()

	reg, err := apps.NewRegistry(installed...)
	if err != nil {
		t.Fatalf("apps registry: %v", err)
	}
	return reg
}

// WriteSettings writes a YAML settings document into dir and returns its
// path.
func WriteSettings(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "settings.yaml")
	WriteFile(t, path, content)
	return path
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGoldenString reads a golden file, or writes got to it first when
// UPDATE_GOLDENS is set.
func MustReadGoldenString(t *testing.T, path, got string) string {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") != "" {
		WriteFile(t, path, got)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}
