package ssr_test

import (
	"strings"
	"testing"

	"github.com/solstice-ui/vdom/pkg/ssr"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

func TestRenderToString_BasicElement(t *testing.T) {
	out, err := ssr.RenderToString(vdom.H("div#app.card", "hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div id="app" class="card">hello</div>`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestRenderToString_EscapesText(t *testing.T) {
	out, err := ssr.RenderToString(vdom.H("p", "<script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected text to be escaped, got %q", out)
	}
}

func TestRenderToString_VoidElementHasNoClosingTag(t *testing.T) {
	out, err := ssr.RenderToString(vdom.H("img", vdom.VData{Attrs: map[string]string{"src": "a.png"}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "</img>") {
		t.Fatalf("expected no closing tag for a void element, got %q", out)
	}
}

func TestRenderToString_BooleanProp(t *testing.T) {
	out, err := ssr.RenderToString(vdom.H("input", vdom.VData{Props: map[string]any{"checked": true}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "checked") || strings.Contains(out, `checked="true"`) {
		t.Fatalf("expected a bare boolean attribute, got %q", out)
	}
}

func TestRenderToString_FalseBooleanPropOmitted(t *testing.T) {
	out, err := ssr.RenderToString(vdom.H("input", vdom.VData{Props: map[string]any{"checked": false}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "checked") {
		t.Fatalf("expected the boolean attribute omitted when false, got %q", out)
	}
}

func TestRenderToString_HydrationIDStampedOnlyWithListeners(t *testing.T) {
	withHandler, err := ssr.RenderToString(vdom.H("button", vdom.VData{
		On: map[string]any{"click": func(any) {}},
	}, "go"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(withHandler, `data-hid="h1"`) {
		t.Fatalf("expected a hydration id on an element carrying a listener, got %q", withHandler)
	}

	withoutHandler, err := ssr.RenderToString(vdom.H("button", "go"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(withoutHandler, "data-hid") {
		t.Fatalf("expected no hydration id on a plain element, got %q", withoutHandler)
	}
}

func TestRenderToString_StyleAndDataset(t *testing.T) {
	out, err := ssr.RenderToString(vdom.H("div", vdom.VData{
		Style:   map[string]string{"color": "red"},
		Dataset: map[string]string{"id": "7"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `style="color: red"`) {
		t.Fatalf("expected inline style, got %q", out)
	}
	if !strings.Contains(out, `data-id="7"`) {
		t.Fatalf("expected a data-* attribute, got %q", out)
	}
}

func TestRenderToString_ScriptContentIsNotEscaped(t *testing.T) {
	out, err := ssr.RenderToString(vdom.H("script", "if (1 < 2) {}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "1 < 2") {
		t.Fatalf("expected raw script content preserved, got %q", out)
	}
}

func TestRenderToString_Comment(t *testing.T) {
	out, err := ssr.RenderToString(vdom.NewComment("note"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<!--note-->" {
		t.Fatalf("got %q", out)
	}
}

func TestRenderToString_JavascriptURLSanitized(t *testing.T) {
	out, err := ssr.RenderToString(vdom.H("a", vdom.VData{
		Attrs: map[string]string{"href": "javascript:alert(1)"},
	}, "click"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "javascript:") {
		t.Fatalf("expected javascript: URL scrubbed, got %q", out)
	}
}

func TestHydrationIDGenerator_Sequential(t *testing.T) {
	g := ssr.NewHydrationIDGenerator()
	if g.Next() != "h1" || g.Next() != "h2" {
		t.Fatal("expected sequential hydration ids")
	}
}
