package vdom

import (
	"sync/atomic"

	"github.com/solstice-ui/vdom/pkg/dom"
)

// removeVnodes removes vnodes[startIdx:endIdx] (inclusive) from
// parentElm, running destroy hooks depth-first and deferring the
// actual host removal to createRmCb when a node or any remove module
// wants to animate it out first.
func removeVnodes(e *Engine, parentElm dom.Node, vnodes []*VNode, startIdx, endIdx int) {
	for i := startIdx; i <= endIdx; i++ {
		ch := vnodes[i]
		if ch == nil {
			continue
		}
		if !ch.IsText() {
			invokeDestroyHook(e, ch)
			listeners := len(e.hooks.remove) + 1
			rm := createRmCb(e, ch, parentElm, listeners)
			for _, fn := range e.hooks.remove {
				fn(ch, rm)
			}
			if ch.Data != nil && ch.Data.Hook.Remove != nil {
				ch.Data.Hook.Remove(ch, rm)
			} else {
				rm()
			}
		} else {
			e.api.RemoveChild(parentElm, ch.Elm)
		}
	}
}

// createRmCb returns a callback that removes vnode.Elm from parentElm
// once it has been called listeners times. Every module remove hook
// and the node's own remove hook (if any) must call it exactly once;
// the shared counter is atomic because remove hooks may complete
// asynchronously (e.g. after a CSS transition) from another goroutine.
func createRmCb(e *Engine, vnode *VNode, parentElm dom.Node, listeners int) func() {
	var remaining atomic.Int32
	remaining.Store(int32(listeners))
	return func() {
		if remaining.Add(-1) == 0 {
			e.api.RemoveChild(parentElm, vnode.Elm)
		}
	}
}

func invokeDestroyHook(e *Engine, vnode *VNode) {
	for _, ch := range vnode.Children {
		if ch != nil {
			invokeDestroyHook(e, ch)
		}
	}
	if vnode.Data != nil && vnode.Data.Hook.Destroy != nil {
		vnode.Data.Hook.Destroy(vnode)
	}
	for _, fn := range e.hooks.destroy {
		fn(vnode)
	}
}
