// Package forms selects and invokes the template renderer used for form
// widgets.
//
// Three renderers are provided:
//
//   - DjangoRenderer parses Django-syntax templates with pongo2. It searches
//     each installed application's "templates" directory, then the built-in
//     widget templates embedded in this package.
//   - HandlebarsRenderer does the same with raymond, searching each
//     application's "handlebars" directory, then the built-in Handlebars
//     widget templates.
//   - ProjectRenderer hands lookups to the project's template loader
//     (conf.Settings.Templates). It has no built-in fallback: projects that
//     want the stock widgets must add a directory containing them.
//
// DefaultRenderer returns the renderer named by the FORM_RENDERER setting,
// built once per process:
//
//	conf.Configure(settings)
//	renderer, err := forms.DefaultRenderer()
//	if err != nil {
//		return err
//	}
//	html, err := renderer.Render(forms.TemplateText, map[string]any{
//		"widget": map[string]any{"name": "title", "attrs": map[string]any{"required": true}},
//	}, req)
package forms
