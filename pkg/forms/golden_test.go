package forms

import (
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formrender/pkg/testsupport"
)

func goldenWidgetContext() map[string]any {
	return map[string]any{
		"widget": map[string]any{
			"name":     "field",
			"type":     "search",
			"value":    "hello",
			"label":    "Field",
			"checked":  true,
			"selected": true,
			"attrs": map[string]any{
				"id":          "id_field",
				"placeholder": "Say hi",
				"required":    true,
				"disabled":    false,
			},
			"options": []map[string]any{
				{"value": "a", "label": "Alpha", "selected": true},
				{"value": "b", "label": "Beta"},
			},
		},
	}
}

// Both built-in bundles must produce the markup recorded under
// testdata/widgets. Run with UPDATE_GOLDENS=1 to rewrite the files.
func TestBuiltinWidgets_Golden(t *testing.T) {
	renderers := map[string]Renderer{
		RendererDjango:     NewDjangoRenderer(),
		RendererHandlebars: NewHandlebarsRenderer(),
	}

	for _, name := range WidgetTemplates() {
		golden := filepath.Join("testdata", "widgets", strings.TrimSuffix(path.Base(name), ".html")+".golden")
		for id, renderer := range renderers {
			t.Run(id+"/"+path.Base(name), func(t *testing.T) {
				got, err := renderer.Render(name, goldenWidgetContext(), nil)
				if err != nil {
					t.Fatalf("render: %v", err)
				}
				want := testsupport.MustReadGoldenString(t, golden, got)
				if diff := testsupport.CompareGolden(want, got); diff != "" {
					t.Fatalf("%s output mismatch (-want +got):\n%s", name, diff)
				}
			})
		}
	}
}
