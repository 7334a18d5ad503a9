package formrender

import (
	"io/fs"

	"github.com/goliatone/go-formrender/pkg/forms"
)

// EmbeddedTemplates exposes the built-in Django-syntax widget templates so
// projects using the project renderer can mount them in their own template
// directories without importing the forms package directly.
func EmbeddedTemplates() fs.FS {
	return forms.TemplatesFS()
}

// EmbeddedHandlebars exposes the built-in Handlebars widget templates.
func EmbeddedHandlebars() fs.FS {
	return forms.HandlebarsFS()
}
