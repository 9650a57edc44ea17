package vdom

import (
	"strings"

	"github.com/solstice-ui/vdom/pkg/dom"
)

// Engine binds a fixed module set to a dom.API backend and exposes the
// top-level Patch entry point. Create one per backend (or per test
// case); an Engine holds no tree state between calls beyond what the
// caller keeps in the VNodes themselves.
type Engine struct {
	api   dom.API
	hooks hookLists
}

// Init registers modules against api, in the order given: that order
// is also the order their global hooks run in for every node.
func Init(modules []Module, api dom.API) *Engine {
	if api == nil {
		panic("vdom: Init requires a non-nil dom.API")
	}
	return &Engine{api: api, hooks: buildHooks(modules)}
}

// Patch reconciles oldVnode against newVnode and returns newVnode
// (now the caller's new "previous render" reference). oldVnode must
// carry a non-nil Elm; use FromElement to wrap a bare host element
// the first time there is no previous VNode to diff against.
func (e *Engine) Patch(oldVnode, newVnode *VNode) *VNode {
	if oldVnode == nil {
		panic("vdom: Patch requires a non-nil oldVnode; use FromElement to wrap a bare host element")
	}

	var insertedQueue []*VNode

	for _, fn := range e.hooks.pre {
		fn()
	}

	if sameVnode(oldVnode, newVnode) {
		patchVnode(e, oldVnode, newVnode, &insertedQueue)
	} else {
		elm := oldVnode.Elm
		parent := e.api.ParentNode(elm)

		createElm(e, newVnode, &insertedQueue)

		if parent != nil {
			e.api.InsertBefore(parent, newVnode.Elm, e.api.NextSibling(elm))
			removeVnodes(e, parent, []*VNode{oldVnode}, 0, 0)
		}
	}

	for _, vnode := range insertedQueue {
		vnode.Data.Hook.Insert(vnode)
	}

	for _, fn := range e.hooks.post {
		fn()
	}

	return newVnode
}

// FromElement wraps an existing host element as a VNode with no
// children and no text, suitable as the oldVnode for the very first
// Patch call against a page that already has server-rendered markup.
// Its selector is reconstructed from the element's tag name and,
// where the backend supports dom.ElementInspector, its id and class
// attributes.
func FromElement(elm dom.Node, api dom.API) *VNode {
	sel := strings.ToLower(api.TagName(elm))
	if insp, ok := elm.(dom.ElementInspector); ok {
		if id := insp.ElementID(); id != "" {
			sel += "#" + id
		}
		if classes := insp.ElementClassName(); classes != "" {
			sel += "." + strings.Join(strings.Fields(classes), ".")
		}
	}
	return &VNode{Sel: strPtr(sel), Elm: elm}
}
