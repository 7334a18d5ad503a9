package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// BuildContext assembles the values a template sees. Precedence from lowest
// to highest: globals, context processor output, "request", data. Processors
// only run when req is non-nil.
func BuildContext(globals map[string]any, processors []ContextProcessor, data map[string]any, req *http.Request) (map[string]any, error) {
	out := make(map[string]any, len(globals)+len(data)+1)

	layers := []map[string]any{globals}
	if req != nil {
		for _, processor := range processors {
			if processor == nil {
				continue
			}
			layers = append(layers, processor(req))
		}
	}

	for _, layer := range layers {
		if err := mergeNormalized(out, layer); err != nil {
			return nil, err
		}
	}
	if req != nil {
		out["request"] = req
	}
	if err := mergeNormalized(out, data); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeContext converts values into plain maps, slices and scalars so
// both engines see the same shapes regardless of the Go types the caller
// used. Structs are converted through their JSON form.
func NormalizeContext(data map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(data))
	if err := mergeNormalized(out, data); err != nil {
		return nil, err
	}
	return out, nil
}

func mergeNormalized(dst, src map[string]any) error {
	for key, value := range src {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		converted, err := normalizeValue(value)
		if err != nil {
			return fmt.Errorf("template: context key %q: %w", key, err)
		}
		dst[key] = converted
	}
	return nil
}

func normalizeValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	case *http.Request:
		return v, nil
	case map[string]any:
		return NormalizeContext(v)
	case []any:
		return normalizeSlice(v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Func:
		return value, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Elem().Kind() != reflect.Struct {
			return normalizeValue(rv.Elem().Interface())
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			out := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				converted, err := normalizeValue(iter.Value().Interface())
				if err != nil {
					return nil, err
				}
				out[iter.Key().String()] = converted
			}
			return out, nil
		}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			items := make([]any, rv.Len())
			for i := range items {
				items[i] = rv.Index(i).Interface()
			}
			return normalizeSlice(items)
		}
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}

	decoded, err := jsonRoundTrip(value)
	if err != nil {
		return nil, err
	}
	switch d := decoded.(type) {
	case map[string]any:
		return NormalizeContext(d)
	case []any:
		return normalizeSlice(d)
	default:
		return d, nil
	}
}

func normalizeSlice(in []any) ([]any, error) {
	out := make([]any, 0, len(in))
	for _, value := range in {
		converted, err := normalizeValue(value)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func jsonRoundTrip(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
