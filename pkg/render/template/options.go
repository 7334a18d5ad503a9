package template

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formrender/pkg/conf"
)

// Option keys accepted in Config.Options.
const (
	OptionGlobals = "globals"
	OptionDebug   = "debug"
)

// EngineOptions is the typed form of Config.Options.
type EngineOptions struct {
	// Globals are available to every template beneath the render context.
	Globals map[string]any
	// Debug disables the engine's parsed-template cache.
	Debug bool
}

// ParseOptions validates backend options. Unknown keys are a configuration
// error so typos don't silently fall back to defaults.
func ParseOptions(engine string, raw map[string]any) (EngineOptions, error) {
	var opts EngineOptions
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		setting := fmt.Sprintf("templates[%s].options.%s", engine, key)
		switch strings.TrimSpace(key) {
		case OptionGlobals:
			if value == nil {
				continue
			}
			globals, ok := value.(map[string]any)
			if !ok {
				return EngineOptions{}, &conf.ConfigurationError{
					Setting: setting,
					Reason:  fmt.Sprintf("expected a mapping, got %T", value),
				}
			}
			opts.Globals = globals
		case OptionDebug:
			debug, ok := value.(bool)
			if !ok {
				return EngineOptions{}, &conf.ConfigurationError{
					Setting: setting,
					Reason:  fmt.Sprintf("expected a boolean, got %T", value),
				}
			}
			opts.Debug = debug
		default:
			return EngineOptions{}, &conf.ConfigurationError{
				Setting: setting,
				Reason:  "unknown option",
				Known:   []string{OptionDebug, OptionGlobals},
			}
		}
	}
	return opts, nil
}
