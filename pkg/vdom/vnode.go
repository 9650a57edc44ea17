package vdom

import "github.com/solstice-ui/vdom/pkg/dom"

// Key identifies a VNode across patch cycles so updateChildren can
// match and reorder siblings instead of recreating them. Only
// comparable dynamic types (string, int, ...) are supported; a Key
// holding an uncomparable type panics on first use in a map, the same
// way a misused map key would anywhere else in Go.
type Key any

// Hooks are the per-node lifecycle callbacks a caller attaches via
// VData.Hook. All are optional.
type Hooks struct {
	Init      func(vnode *VNode)
	Create    func(oldVnode, vnode *VNode)
	Insert    func(vnode *VNode)
	Prepatch  func(oldVnode, vnode *VNode)
	Update    func(oldVnode, vnode *VNode)
	Postpatch func(oldVnode, vnode *VNode)
	Destroy   func(vnode *VNode)
	Remove    func(vnode *VNode, rm func())
}

// VData is the open per-node data record. The core reads only NS, Key
// and Hook; the module-shaped fields below (Attrs, Props, ...) are
// read by pkg/modules and are otherwise inert as far as vdom itself is
// concerned. Extra is a catch-all for data a caller's own hooks want
// to stash on a node without the core or pkg/modules knowing about it.
type VData struct {
	NS   string
	Key  Key
	Hook Hooks

	Attrs   map[string]string
	Props   map[string]any
	Class   map[string]bool
	Style   map[string]string
	Dataset map[string]string
	On      map[string]any

	Extra map[string]any
}

// VNode is a single node in the virtual tree: either an element (Sel
// set, Children or Text set), a text node (Sel nil, Text set), or a
// comment (Sel == "!", Text set). Children and Text are mutually
// exclusive on any one VNode.
type VNode struct {
	Sel      *string
	Data     *VData
	Children []*VNode
	Text     *string
	Elm      dom.Node
	Key      Key
}

// emptyVNode is the shared sentinel passed as the "old" side of the
// module and per-node create hooks during createElm.
var emptyVNode = &VNode{Sel: strPtr("")}

// NewVNode is the canonical VNode factory: it packages sel, data,
// children and text together and mirrors data.Key onto the node's own
// Key field so sameVnode never has to reach through Data.
func NewVNode(sel *string, data *VData, children []*VNode, text *string) *VNode {
	v := &VNode{Sel: sel, Data: data, Children: children, Text: text}
	if data != nil {
		v.Key = data.Key
	}
	return v
}

// NewText builds a text-only VNode (Sel nil).
func NewText(text string) *VNode {
	return &VNode{Text: strPtr(text)}
}

// NewComment builds a comment VNode (Sel == "!").
func NewComment(text string) *VNode {
	return &VNode{Sel: strPtr("!"), Text: strPtr(text)}
}

// IsText reports whether v is a text node (no selector, not a comment).
func (v *VNode) IsText() bool {
	return v != nil && v.Sel == nil
}

// IsComment reports whether v is a comment node.
func (v *VNode) IsComment() bool {
	return v != nil && v.Sel != nil && *v.Sel == "!"
}

// IsElement reports whether v is a real element node.
func (v *VNode) IsElement() bool {
	return v != nil && v.Sel != nil && *v.Sel != "!"
}

func sameVnode(a, b *VNode) bool {
	if a == nil || b == nil {
		return false
	}
	return keyEqual(a.Key, b.Key) && selEqual(a.Sel, b.Sel)
}

// keyEqual treats two absent keys as equal, matching the rule that
// unkeyed siblings at the same position are considered "the same
// node" for patch purposes.
func keyEqual(a, b Key) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func selEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func strPtr(s string) *string { return &s }
