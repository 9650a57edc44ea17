// Package memory implements dom.API and its optional capability
// interfaces against a plain in-process tree, grounded on the
// parent-pointer Node/AddChild/InsertBefore/RemoveChild shape used by
// the pack's standalone HTML-DOM simulator. It needs no browser and no
// JS runtime, so it is what the core's own tests, the pkg/modules and
// pkg/live tests, and cmd/vdomctl all patch against.
package memory

import "sort"

// NodeKind distinguishes element, text, and comment nodes.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
)

// Node is a single node in the simulated document tree. Event
// listeners and dataset/style/prop values are kept alongside the plain
// Attributes map so a single concrete type can satisfy every optional
// dom capability interface.
type Node struct {
	Kind NodeKind
	Tag  string
	Text string

	Attributes map[string]string
	Props      map[string]any
	Style      map[string]string
	Dataset    map[string]string
	Listeners  map[string]func(any)

	Parent   *Node
	Children []*Node
}

func newNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// AddChild appends child to n's children and sets its parent pointer.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild removes child from n's children, if present.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// InsertBefore inserts newChild before refChild in n's children, or
// appends it when refChild is nil or not found.
func (n *Node) InsertBefore(newChild, refChild *Node) {
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}
	if refChild != nil {
		for i, c := range n.Children {
			if c == refChild {
				n.Children = append(n.Children, nil)
				copy(n.Children[i+1:], n.Children[i:])
				n.Children[i] = newChild
				newChild.Parent = n
				return
			}
		}
	}
	n.AddChild(newChild)
}

// NextSibling returns the node immediately after n among its parent's
// children, or nil.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	for i, c := range n.Parent.Children {
		if c == n {
			if i+1 < len(n.Parent.Children) {
				return n.Parent.Children[i+1]
			}
			return nil
		}
	}
	return nil
}

// SetAttribute implements dom.AttributeSetter.
func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

// RemoveAttribute implements dom.AttributeSetter.
func (n *Node) RemoveAttribute(name string) {
	delete(n.Attributes, name)
}

// SetClass implements dom.ClassSetter, storing class membership as a
// synthetic "class" attribute so ElementClassName and attribute-based
// assertions see it like any other attribute.
func (n *Node) SetClass(name string, on bool) {
	classes := splitClass(n.Attributes["class"])
	set := make(map[string]bool, len(classes))
	for _, c := range classes {
		set[c] = true
	}
	set[name] = on
	var kept []string
	for _, c := range classes {
		if set[c] {
			kept = append(kept, c)
		}
	}
	if on && !contains(kept, name) {
		kept = append(kept, name)
	}
	if len(kept) == 0 {
		n.RemoveAttribute("class")
		return
	}
	n.SetAttribute("class", joinClass(kept))
}

// SetStyle implements dom.StyleSetter.
func (n *Node) SetStyle(prop, value string) {
	if n.Style == nil {
		n.Style = make(map[string]string)
	}
	n.Style[prop] = value
}

// RemoveStyle implements dom.StyleSetter.
func (n *Node) RemoveStyle(prop string) {
	delete(n.Style, prop)
}

// SetProp implements dom.PropSetter.
func (n *Node) SetProp(name string, value any) {
	if n.Props == nil {
		n.Props = make(map[string]any)
	}
	n.Props[name] = value
}

// SetData implements dom.DatasetSetter.
func (n *Node) SetData(key, value string) {
	if n.Dataset == nil {
		n.Dataset = make(map[string]string)
	}
	n.Dataset[key] = value
}

// RemoveData implements dom.DatasetSetter.
func (n *Node) RemoveData(key string) {
	delete(n.Dataset, key)
}

// AddEventListener implements dom.EventTarget. Listeners are keyed by
// event name alone: a second registration for the same name replaces
// the first, since Go handler values aren't comparable for removal.
func (n *Node) AddEventListener(event string, handler func(any)) {
	if n.Listeners == nil {
		n.Listeners = make(map[string]func(any))
	}
	n.Listeners[event] = handler
}

// RemoveEventListener implements dom.EventTarget.
func (n *Node) RemoveEventListener(event string, _ func(any)) {
	delete(n.Listeners, event)
}

// Dispatch invokes the listener registered for event, if any. Tests
// and cmd/vdomctl use this to simulate a user interaction.
func (n *Node) Dispatch(event string, payload any) {
	if fn, ok := n.Listeners[event]; ok {
		fn(payload)
	}
}

// ElementID implements dom.ElementInspector.
func (n *Node) ElementID() string {
	return n.Attributes["id"]
}

// ElementClassName implements dom.ElementInspector.
func (n *Node) ElementClassName() string {
	return n.Attributes["class"]
}

func splitClass(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func joinClass(cs []string) string {
	sort.Strings(cs)
	out := ""
	for i, c := range cs {
		if i > 0 {
			out += " "
		}
		out += c
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
