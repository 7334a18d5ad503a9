package template

import (
	"fmt"
	"html"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// FlatAttrs renders an attribute mapping as HTML attributes, each preceded by
// a space. Keys are sorted. true renders a bare attribute; false and nil are
// dropped; other values are escaped.
func FlatAttrs(attrs any) string {
	values := attrMap(attrs)
	if len(values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		switch v := values[key].(type) {
		case nil:
			continue
		case bool:
			if v {
				b.WriteString(" ")
				b.WriteString(html.EscapeString(name))
			}
		default:
			fmt.Fprintf(&b, ` %s="%s"`, html.EscapeString(name), html.EscapeString(fmt.Sprint(v)))
		}
	}
	return b.String()
}

func attrMap(attrs any) map[string]any {
	switch v := attrs.(type) {
	case nil:
		return nil
	case map[string]any:
		return v
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = value
		}
		return out
	}
	rv := reflect.ValueOf(attrs)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

var (
	sanitizePolicyOnce sync.Once
	sanitizePolicy     *bluemonday.Policy
)

// Sanitize strips markup that is unsafe in user-generated content, such as
// help text supplied by form authors.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	sanitizePolicyOnce.Do(func() {
		sanitizePolicy = bluemonday.UGCPolicy()
	})
	return sanitizePolicy.Sanitize(trimmed)
}
