package conf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrImproperlyConfigured is matched by every ConfigurationError.
var ErrImproperlyConfigured = errors.New("conf: improperly configured")

// ConfigurationError reports a setting whose value cannot be used.
type ConfigurationError struct {
	Setting string
	Value   string
	Reason  string
	// Known lists accepted values when the setting is an identifier.
	Known []string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("conf: ")
	b.WriteString(e.Setting)
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if len(e.Known) > 0 {
		fmt.Fprintf(&b, " (supported: %s)", strings.Join(e.Known, ", "))
	}
	return b.String()
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrImproperlyConfigured
}
