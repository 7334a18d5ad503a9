// Package template defines the engine-agnostic contracts shared by the form
// renderers: engines resolve a template name against an ordered search path
// and hand back a Template bound to the Origin it was loaded from.
//
// Search order is always explicit directories, then per-application
// directories (in application registration order), then fallback directories.
// The first regular file wins. Engines in the django and handlebars
// subpackages implement Engine on top of pongo2 and raymond.
package template
