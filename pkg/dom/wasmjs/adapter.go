//go:build js && wasm

// Package wasmjs implements dom.API and its optional capability
// interfaces against a real browser document, grounded on the pack's
// js.Value-based DOM applier: the same attribute special-casing
// (class/for/boolean attrs/value on form controls) and the same
// multi-signature event handler dispatch, rewired against the
// backend-agnostic adapter surface instead of a closed patch-op list.
package wasmjs

import (
	"strings"
	"syscall/js"

	"github.com/solstice-ui/vdom/pkg/dom"
)

// Adapter implements dom.API against syscall/js. A single Adapter is
// shared by every Node it creates; Node itself only wraps a js.Value.
type Adapter struct {
	document js.Value
}

// NewAdapter returns an Adapter bound to the current document.
func NewAdapter() *Adapter {
	return &Adapter{document: js.Global().Get("document")}
}

// Node wraps a browser element, text, or comment node so it can carry
// Go-side event listener bookkeeping syscall/js itself has no room for.
type Node struct {
	Value     js.Value
	listeners map[string]js.Func
}

func wrap(v js.Value) *Node {
	if !v.Truthy() {
		return nil
	}
	return &Node{Value: v}
}

func asNode(n dom.Node) *Node {
	if n == nil {
		return nil
	}
	return n.(*Node)
}

func (a *Adapter) CreateElement(tag string) dom.Node {
	return &Node{Value: a.document.Call("createElement", tag)}
}

func (a *Adapter) CreateElementNS(ns, tag string) dom.Node {
	return &Node{Value: a.document.Call("createElementNS", ns, tag)}
}

func (a *Adapter) CreateTextNode(text string) dom.Node {
	return &Node{Value: a.document.Call("createTextNode", text)}
}

func (a *Adapter) CreateComment(text string) dom.Node {
	return &Node{Value: a.document.Call("createComment", text)}
}

func (a *Adapter) InsertBefore(parent, newNode, reference dom.Node) {
	ref := asNode(reference)
	if ref == nil {
		asNode(parent).Value.Call("appendChild", asNode(newNode).Value)
		return
	}
	asNode(parent).Value.Call("insertBefore", asNode(newNode).Value, ref.Value)
}

func (a *Adapter) RemoveChild(parent, child dom.Node) {
	c := asNode(child)
	for event, fn := range c.listeners {
		c.Value.Call("removeEventListener", event, fn)
		fn.Release()
	}
	c.listeners = nil
	asNode(parent).Value.Call("removeChild", c.Value)
}

func (a *Adapter) AppendChild(parent, child dom.Node) {
	asNode(parent).Value.Call("appendChild", asNode(child).Value)
}

func (a *Adapter) ParentNode(node dom.Node) dom.Node {
	return wrap(asNode(node).Value.Get("parentNode"))
}

func (a *Adapter) NextSibling(node dom.Node) dom.Node {
	return wrap(asNode(node).Value.Get("nextSibling"))
}

func (a *Adapter) TagName(element dom.Node) string {
	return asNode(element).Value.Get("tagName").String()
}

func (a *Adapter) SetTextContent(node dom.Node, text string) {
	asNode(node).Value.Set("textContent", text)
}

func (a *Adapter) SetElementText(element dom.Node, text string) {
	asNode(element).Value.Set("textContent", text)
}

// SetAttribute implements dom.AttributeSetter, special-casing the same
// handful of attributes the browser treats as properties rather than
// plain strings.
func (n *Node) SetAttribute(name, value string) {
	switch name {
	case "class":
		n.Value.Set("className", value)
	case "for":
		n.Value.Set("htmlFor", value)
	case "checked", "selected", "disabled", "readonly", "required", "multiple":
		n.Value.Set(name, value == "true" || value == name)
	case "value":
		switch n.Value.Get("tagName").String() {
		case "INPUT", "TEXTAREA", "SELECT":
			n.Value.Set("value", value)
		default:
			n.Value.Call("setAttribute", name, value)
		}
	default:
		n.Value.Call("setAttribute", name, value)
	}
}

// RemoveAttribute implements dom.AttributeSetter.
func (n *Node) RemoveAttribute(name string) {
	switch name {
	case "class":
		n.Value.Set("className", "")
	case "checked", "selected", "disabled", "readonly", "required", "multiple":
		n.Value.Set(name, false)
	default:
		n.Value.Call("removeAttribute", name)
	}
}

// SetClass implements dom.ClassSetter via classList.toggle.
func (n *Node) SetClass(name string, on bool) {
	n.Value.Get("classList").Call("toggle", name, on)
}

// SetStyle implements dom.StyleSetter.
func (n *Node) SetStyle(prop, value string) {
	n.Value.Get("style").Call("setProperty", prop, value)
}

// RemoveStyle implements dom.StyleSetter.
func (n *Node) RemoveStyle(prop string) {
	n.Value.Get("style").Call("removeProperty", prop)
}

// SetProp implements dom.PropSetter, assigning the Go value directly
// onto the JS element. Only types js.ValueOf understands are safe here;
// pkg/modules passes VData.Props values through unchanged, so a value
// of any other type makes js.ValueOf panic.
func (n *Node) SetProp(name string, value any) {
	n.Value.Set(name, js.ValueOf(value))
}

// SetData implements dom.DatasetSetter.
func (n *Node) SetData(key, value string) {
	n.Value.Get("dataset").Set(key, value)
}

// RemoveData implements dom.DatasetSetter.
func (n *Node) RemoveData(key string) {
	n.Value.Get("dataset").Call("removeProperty", key)
}

// AddEventListener implements dom.EventTarget. The browser event object
// is handed to handler untouched; pkg/modules and application code
// decide how to unwrap it via a type assertion on js.Value.
func (n *Node) AddEventListener(event string, handler func(any)) {
	if n.listeners == nil {
		n.listeners = make(map[string]js.Func)
	}
	if old, ok := n.listeners[event]; ok {
		n.Value.Call("removeEventListener", event, old)
		old.Release()
	}
	fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			handler(args[0])
		} else {
			handler(nil)
		}
		return nil
	})
	n.listeners[event] = fn
	n.Value.Call("addEventListener", event, fn)
}

// RemoveEventListener implements dom.EventTarget.
func (n *Node) RemoveEventListener(event string, _ func(any)) {
	if fn, ok := n.listeners[event]; ok {
		n.Value.Call("removeEventListener", event, fn)
		fn.Release()
		delete(n.listeners, event)
	}
}

// ElementID implements dom.ElementInspector.
func (n *Node) ElementID() string {
	return n.Value.Get("id").String()
}

// ElementClassName implements dom.ElementInspector.
func (n *Node) ElementClassName() string {
	v := n.Value.Get("className")
	if !v.Truthy() {
		return ""
	}
	return v.String()
}

// EventString extracts the payload a module's func(any) handler needs
// out of a raw browser event, mirroring the per-event-kind rules the
// pack's applier used to hardcode (input value, key name, event type).
func EventString(eventName string, raw any) string {
	ev, ok := raw.(js.Value)
	if !ok || !ev.Truthy() {
		return ""
	}
	switch {
	case strings.HasPrefix(eventName, "key"):
		return ev.Get("key").String()
	case eventName == "input" || eventName == "change":
		tgt := ev.Get("target")
		if tgt.Truthy() {
			return tgt.Get("value").String()
		}
		return ""
	default:
		return ev.Get("type").String()
	}
}

// MountRoot appends root's DOM element to document.body, the entry
// point a wasm bundle uses once its first Engine.Patch has materialized
// a tree with no prior host parent.
func (a *Adapter) MountRoot(root dom.Node) {
	a.document.Get("body").Call("appendChild", asNode(root).Value)
}
