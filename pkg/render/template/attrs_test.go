package template

import (
	"strings"
	"testing"
)

func TestFlatAttrs(t *testing.T) {
	got := FlatAttrs(map[string]any{
		"required":    true,
		"disabled":    false,
		"placeholder": `Say "hi"`,
		"maxlength":   10,
		"data-x":      nil,
	})
	want := ` maxlength="10" placeholder="Say &#34;hi&#34;" required`
	if got != want {
		t.Fatalf("flat attrs mismatch\nwant: %q\n got: %q", want, got)
	}

	if got := FlatAttrs(map[string]string{"id": "id_name"}); got != ` id="id_name"` {
		t.Fatalf("unexpected string map rendering %q", got)
	}
	if got := FlatAttrs(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := FlatAttrs("nope"); got != "" {
		t.Fatalf("expected empty output for non-map, got %q", got)
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize(`<b>Bold</b><script>alert(1)</script>`)
	if !strings.Contains(got, "<b>Bold</b>") || strings.Contains(got, "script") {
		t.Fatalf("unexpected sanitized output %q", got)
	}
	if Sanitize("   ") != "" {
		t.Fatalf("expected blank input to stay blank")
	}
}
