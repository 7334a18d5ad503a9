// Package conf holds the process-wide settings consulted by the form renderers:
// the FORM_RENDERER identifier, the installed applications and the project's
// template backends. Settings are usually loaded from a YAML document and then
// published with Configure so lazily-initialised components can read them.
package conf
