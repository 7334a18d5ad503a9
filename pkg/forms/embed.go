package forms

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-formrender/pkg/render/template"
)

//go:embed templates/forms/widgets/*.html
var embeddedTemplates embed.FS

//go:embed handlebars/forms/widgets/*.html
var embeddedHandlebars embed.FS

// Labels of the built-in fallback directories as they appear in template
// origins.
const (
	BuiltinTemplatesLabel  = "forms/templates"
	BuiltinHandlebarsLabel = "forms/handlebars"
)

// TemplatesFS exposes the built-in Django-syntax widget templates rooted so
// that names match the Template* constants.
func TemplatesFS() fs.FS {
	return subFS(embeddedTemplates, "templates")
}

// HandlebarsFS exposes the built-in Handlebars widget templates.
func HandlebarsFS() fs.FS {
	return subFS(embeddedHandlebars, "handlebars")
}

func subFS(fsys embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return fsys
	}
	return sub
}

func builtinTemplatesDir() template.Dir {
	return template.EmbeddedDir(BuiltinTemplatesLabel, TemplatesFS())
}

func builtinHandlebarsDir() template.Dir {
	return template.EmbeddedDir(BuiltinHandlebarsLabel, HandlebarsFS())
}
