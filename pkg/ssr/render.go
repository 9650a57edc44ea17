// Package ssr renders a VNode tree to an HTML string for a page's
// first paint, stamping a hydration id onto every element that carries
// event listeners so a client-side engine can re-attach them against
// the exact same markup without a full remount.
package ssr

import (
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/solstice-ui/vdom/pkg/vdom"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var booleanAttributes = map[string]bool{
	"checked": true, "disabled": true, "readonly": true, "required": true,
	"selected": true, "defer": true, "async": true, "multiple": true,
	"autofocus": true,
}

// HydrationIDGenerator hands out sequential hydration ids.
type HydrationIDGenerator struct {
	mu      sync.Mutex
	counter uint32
}

// NewHydrationIDGenerator returns a generator starting at h1.
func NewHydrationIDGenerator() *HydrationIDGenerator {
	return &HydrationIDGenerator{counter: 1}
}

// Next returns the next hydration id.
func (g *HydrationIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.counter
	g.counter++
	return fmt.Sprintf("h%d", id)
}

// Renderer writes a VNode tree to an io.Writer as HTML.
type Renderer struct {
	w      io.Writer
	hidGen *HydrationIDGenerator
	err    error
}

// NewRenderer returns a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, hidGen: NewHydrationIDGenerator()}
}

// Render writes node to the renderer's writer and returns the first
// write error encountered, if any.
func (r *Renderer) Render(node *vdom.VNode) error {
	r.renderNode(node)
	return r.err
}

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *Renderer) renderNode(node *vdom.VNode) {
	if node == nil || r.err != nil {
		return
	}
	switch {
	case node.IsComment():
		r.write("<!--")
		r.write(html.EscapeString(derefOr(node.Text)))
		r.write("-->")
	case node.IsText():
		r.write(html.EscapeString(derefOr(node.Text)))
	default:
		r.renderElement(node)
	}
}

func (r *Renderer) renderElement(node *vdom.VNode) {
	tag, id, classes := parseSelector(*node.Sel)

	r.write("<")
	r.write(tag)

	if id != "" {
		r.writeAttr("id", id)
	}
	if class := mergedClass(classes, node.Data); class != "" {
		r.writeAttr("class", class)
	}

	var hid string
	if hasListeners(node.Data) {
		hid = r.hidGen.Next()
		r.writeAttr("data-hid", hid)
	}

	if node.Data != nil {
		for key, value := range node.Data.Attrs {
			r.writeAttr(key, value)
		}
		for key, value := range node.Data.Dataset {
			r.writeAttr("data-"+key, value)
		}
		if len(node.Data.Style) > 0 {
			r.writeAttr("style", inlineStyle(node.Data.Style))
		}
		for key, value := range node.Data.Props {
			if booleanAttributes[key] {
				if on, ok := value.(bool); ok && on {
					r.write(" ")
					r.write(key)
				}
				continue
			}
			r.writeAttr(key, fmt.Sprintf("%v", value))
		}
	}

	r.write(">")

	if voidElements[tag] {
		return
	}

	rawText := tag == "script" || tag == "style"
	if rawText {
		if node.Text != nil {
			r.write(*node.Text)
		}
		for _, child := range node.Children {
			r.renderRaw(child)
		}
	} else {
		if node.Text != nil {
			r.write(html.EscapeString(*node.Text))
		}
		for _, child := range node.Children {
			r.renderNode(child)
		}
	}

	r.write("</")
	r.write(tag)
	r.write(">")
}

func (r *Renderer) renderRaw(node *vdom.VNode) {
	if node == nil || r.err != nil {
		return
	}
	if node.IsText() {
		r.write(derefOr(node.Text))
		return
	}
	r.renderElement(node)
}

func (r *Renderer) writeAttr(key, value string) {
	valueStr := value
	if (key == "href" || key == "src") && strings.HasPrefix(strings.ToLower(valueStr), "javascript:") {
		valueStr = "#"
	}
	r.write(" ")
	r.write(key)
	r.write(`="`)
	r.write(html.EscapeString(valueStr))
	r.write(`"`)
}

func hasListeners(data *vdom.VData) bool {
	return data != nil && len(data.On) > 0
}

func mergedClass(selectorClasses []string, data *vdom.VData) string {
	seen := make(map[string]bool, len(selectorClasses))
	var out []string
	for _, c := range selectorClasses {
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	if data != nil {
		for name, on := range data.Class {
			if on && !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return strings.Join(out, " ")
}

func inlineStyle(style map[string]string) string {
	var b strings.Builder
	first := true
	for prop, val := range style {
		if !first {
			b.WriteString("; ")
		}
		first = false
		b.WriteString(prop)
		b.WriteString(": ")
		b.WriteString(val)
	}
	return b.String()
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// parseSelector splits a selector of the form tag('#'id)?('.'class)*
// into its tag, optional id, and class tokens, mirroring the grammar
// the hyperscript builder parses on the way in.
func parseSelector(sel string) (tag, id string, classes []string) {
	hashIdx := strings.IndexByte(sel, '#')
	dotIdx := strings.IndexByte(sel, '.')

	cut := len(sel)
	if hashIdx >= 0 && hashIdx < cut {
		cut = hashIdx
	}
	if dotIdx >= 0 && dotIdx < cut {
		cut = dotIdx
	}
	tag = sel[:cut]

	if hashIdx >= 0 && (dotIdx < 0 || hashIdx < dotIdx) {
		end := len(sel)
		if dotIdx >= 0 {
			end = dotIdx
		}
		id = sel[hashIdx+1 : end]
	}

	if dotIdx >= 0 {
		classes = strings.Split(sel[dotIdx+1:], ".")
	}
	return tag, id, classes
}

// RenderToString is a convenience wrapper for a one-shot render.
func RenderToString(node *vdom.VNode) (string, error) {
	var buf strings.Builder
	r := NewRenderer(&buf)
	if err := r.Render(node); err != nil {
		return "", err
	}
	return buf.String(), nil
}
