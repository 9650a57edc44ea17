// Package dom declares the capability set the reconciliation core in
// pkg/vdom needs from a host document tree, and nothing more. Backends
// (pkg/dom/memory, pkg/dom/wasmjs) implement API against their own
// concrete node type; the core never inspects a Node beyond passing it
// back through this interface.
package dom

// Node is an opaque handle to a host-tree node. A nil Node denotes the
// absence of a node (no parent, no next sibling).
type Node = any

// API is the minimal adapter the core requires: element/text/comment
// creation, tree mutation, and the handful of reads needed to wrap an
// existing host element as a previous-render root.
type API interface {
	CreateElement(tag string) Node
	CreateElementNS(ns, tag string) Node
	CreateTextNode(text string) Node
	CreateComment(text string) Node

	InsertBefore(parent, newNode, reference Node)
	RemoveChild(parent, child Node)
	AppendChild(parent, child Node)

	ParentNode(node Node) Node
	NextSibling(node Node) Node
	TagName(element Node) string

	SetTextContent(node Node, text string)
	SetElementText(element Node, text string)
}

// AttributeSetter is implemented by element nodes that support plain
// HTML attributes. Modules (pkg/modules) type-assert for it; the core
// itself uses it only to apply the id/class sugar baked into a
// selector, exactly as the selector grammar requires.
type AttributeSetter interface {
	SetAttribute(name, value string)
	RemoveAttribute(name string)
}

// ClassSetter is implemented by element nodes that track class
// membership as a toggleable set rather than a flat attribute string.
type ClassSetter interface {
	SetClass(name string, on bool)
}

// StyleSetter is implemented by element nodes exposing an inline style
// map.
type StyleSetter interface {
	SetStyle(prop, value string)
	RemoveStyle(prop string)
}

// PropSetter is implemented by element nodes that distinguish DOM
// properties (arbitrary Go values assigned directly) from attributes.
type PropSetter interface {
	SetProp(name string, value any)
}

// DatasetSetter is implemented by element nodes exposing a dataset
// (data-* attribute) bucket.
type DatasetSetter interface {
	SetData(key, value string)
	RemoveData(key string)
}

// EventTarget is implemented by element nodes that accept listener
// registration. handler receives whatever event payload the backend
// produces; pkg/modules treats it opaquely.
type EventTarget interface {
	AddEventListener(event string, handler func(any))
	RemoveEventListener(event string, handler func(any))
}

// ElementInspector lets vdom.FromElement recover the id/class portion
// of a selector from a host element that already exists in the tree
// (the wrap-the-root-on-first-patch case). Backends that cannot expose
// this information are still usable; FromElement falls back to the
// bare tag name.
type ElementInspector interface {
	ElementID() string
	ElementClassName() string
}
