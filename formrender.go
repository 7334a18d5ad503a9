// Package formrender is the convenience entry point: it loads settings,
// publishes them and renders widget templates through the process-wide
// default renderer.
package formrender

import (
	"net/http"

	"github.com/goliatone/go-formrender/pkg/conf"
	"github.com/goliatone/go-formrender/pkg/forms"
)

// Setup loads the settings file at path, checks that its renderer is known
// and publishes the settings for the default renderer.
func Setup(path string) (conf.Settings, error) {
	settings, err := conf.Load(path)
	if err != nil {
		return conf.Settings{}, err
	}
	if err := forms.DefaultRegistry().Validate(settings); err != nil {
		return conf.Settings{}, err
	}
	conf.Configure(settings)
	return settings, nil
}

// Render renders name with the default renderer. req may be nil.
func Render(name string, data map[string]any, req *http.Request) (string, error) {
	renderer, err := forms.DefaultRenderer()
	if err != nil {
		return "", err
	}
	return renderer.Render(name, data, req)
}
