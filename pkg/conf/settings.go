package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// EnvFormRenderer overrides Settings.FormRenderer when set.
	EnvFormRenderer = "FORM_RENDERER"

	// DefaultFormRenderer is used when no renderer is configured.
	DefaultFormRenderer = "django"
)

// Settings is the configuration surface read by the renderers.
type Settings struct {
	// FormRenderer names the renderer returned by the default renderer cell.
	FormRenderer string `yaml:"form_renderer" json:"form_renderer"`
	// InstalledApps are searched for template overrides in declaration order.
	InstalledApps []App `yaml:"installed_apps,omitempty" json:"installed_apps,omitempty"`
	// Templates configures the project's own template engines.
	Templates []TemplateBackend `yaml:"templates,omitempty" json:"templates,omitempty"`
}

// App declares an installed application rooted at Path.
type App struct {
	Label string `yaml:"label" json:"label"`
	Path  string `yaml:"path" json:"path"`
}

// TemplateBackend declares one project template engine.
type TemplateBackend struct {
	Backend string         `yaml:"backend" json:"backend"`
	Name    string         `yaml:"name,omitempty" json:"name,omitempty"`
	Dirs    []string       `yaml:"dirs,omitempty" json:"dirs,omitempty"`
	AppDirs bool           `yaml:"app_dirs,omitempty" json:"app_dirs,omitempty"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// Defaults returns the settings used before Configure is called.
func Defaults() Settings {
	return Settings{FormRenderer: DefaultFormRenderer}
}

// Load reads a YAML settings file. Relative app and template paths are
// resolved against the file's directory and the FORM_RENDERER environment
// variable takes precedence over the file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("conf: read %s: %w", path, err)
	}
	settings, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("conf: parse %s: %w", path, err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return Settings{}, fmt.Errorf("conf: resolve %s: %w", path, err)
	}
	settings.resolvePaths(base)

	if env := strings.TrimSpace(os.Getenv(EnvFormRenderer)); env != "" {
		settings.FormRenderer = env
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Parse decodes a YAML document and applies defaults.
func Parse(data []byte) (Settings, error) {
	settings := Defaults()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}
	settings.FormRenderer = strings.TrimSpace(settings.FormRenderer)
	if settings.FormRenderer == "" {
		settings.FormRenderer = DefaultFormRenderer
	}
	return settings, nil
}

// Marshal encodes settings as YAML.
func Marshal(settings Settings) ([]byte, error) {
	return yaml.Marshal(settings)
}

// Validate checks the settings for values no component could use.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.FormRenderer) == "" {
		return &ConfigurationError{Setting: "form_renderer", Reason: "must not be empty"}
	}

	labels := make(map[string]struct{}, len(s.InstalledApps))
	for idx, app := range s.InstalledApps {
		label := strings.TrimSpace(app.Label)
		if label == "" {
			return &ConfigurationError{
				Setting: fmt.Sprintf("installed_apps[%d].label", idx),
				Reason:  "must not be empty",
			}
		}
		if _, exists := labels[label]; exists {
			return &ConfigurationError{
				Setting: "installed_apps",
				Value:   label,
				Reason:  "application labels aren't unique",
			}
		}
		labels[label] = struct{}{}
		if strings.TrimSpace(app.Path) == "" {
			return &ConfigurationError{
				Setting: fmt.Sprintf("installed_apps[%d].path", idx),
				Value:   label,
				Reason:  "must not be empty",
			}
		}
	}

	for idx, backend := range s.Templates {
		if strings.TrimSpace(backend.Backend) == "" {
			return &ConfigurationError{
				Setting: fmt.Sprintf("templates[%d].backend", idx),
				Reason:  "must not be empty",
			}
		}
	}
	return nil
}

func (s *Settings) resolvePaths(base string) {
	for idx := range s.InstalledApps {
		s.InstalledApps[idx].Path = absPath(base, s.InstalledApps[idx].Path)
	}
	for idx := range s.Templates {
		for d, dir := range s.Templates[idx].Dirs {
			s.Templates[idx].Dirs[d] = absPath(base, dir)
		}
	}
}

func absPath(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

var (
	currentMu sync.RWMutex
	current   *Settings
)

// Configure publishes settings for the process. Components that already read
// the settings (such as the default form renderer) keep what they read.
func Configure(settings Settings) {
	currentMu.Lock()
	defer currentMu.Unlock()

	copied := settings.Clone()
	current = &copied
}

// Current returns the published settings, or Defaults when Configure has not
// been called.
func Current() Settings {
	currentMu.RLock()
	defer currentMu.RUnlock()

	if current == nil {
		return Defaults()
	}
	return current.Clone()
}

// Clone returns a deep copy of s. Slices and option maps are not shared.
func (s Settings) Clone() Settings {
	out := s
	if s.InstalledApps != nil {
		out.InstalledApps = append([]App(nil), s.InstalledApps...)
	}
	if s.Templates != nil {
		out.Templates = make([]TemplateBackend, len(s.Templates))
		for i, backend := range s.Templates {
			if backend.Dirs != nil {
				backend.Dirs = append([]string(nil), backend.Dirs...)
			}
			if backend.Options != nil {
				backend.Options = cloneValue(backend.Options).(map[string]any)
			}
			out.Templates[i] = backend
		}
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return v
	}
}
