package vdom

import (
	"strings"

	"github.com/solstice-ui/vdom/pkg/dom"
)

// createElm materializes vnode against the engine's backend, running
// init/create hooks and recursively materializing children, and
// returns the freshly created host node. vnode.Elm is set as a side
// effect. Nodes carrying an insert hook are appended to insertedQueue
// so the caller can flush it only after the whole subtree is attached.
func createElm(e *Engine, vnode *VNode, insertedQueue *[]*VNode) dom.Node {
	if vnode.Data != nil && vnode.Data.Hook.Init != nil {
		vnode.Data.Hook.Init(vnode)
	}

	switch {
	case vnode.IsComment():
		elm := e.api.CreateComment(derefOr(vnode.Text, ""))
		vnode.Elm = elm
		return elm

	case vnode.Sel == nil:
		elm := e.api.CreateTextNode(derefOr(vnode.Text, ""))
		vnode.Elm = elm
		return elm

	default:
		tag, id, classes := parseSelector(*vnode.Sel)

		ns := ""
		if vnode.Data != nil {
			ns = vnode.Data.NS
		}

		var elm dom.Node
		if ns != "" {
			elm = e.api.CreateElementNS(ns, tag)
		} else {
			elm = e.api.CreateElement(tag)
		}
		vnode.Elm = elm

		if setter, ok := elm.(dom.AttributeSetter); ok {
			if id != "" {
				setter.SetAttribute("id", id)
			}
			if len(classes) > 0 {
				setter.SetAttribute("class", strings.Join(classes, " "))
			}
		}

		for _, fn := range e.hooks.create {
			fn(emptyVNode, vnode)
		}

		switch {
		case len(vnode.Children) > 0:
			for _, ch := range vnode.Children {
				if ch == nil {
					continue
				}
				childElm := createElm(e, ch, insertedQueue)
				e.api.AppendChild(elm, childElm)
			}
		case vnode.Text != nil:
			e.api.AppendChild(elm, e.api.CreateTextNode(*vnode.Text))
		}

		if vnode.Data != nil && vnode.Data.Hook.Create != nil {
			vnode.Data.Hook.Create(emptyVNode, vnode)
		}
		if vnode.Data != nil && vnode.Data.Hook.Insert != nil {
			*insertedQueue = append(*insertedQueue, vnode)
		}

		return elm
	}
}
