package vdom

import "unsafe"

// patchVnode reconciles a single node pair that sameVnode has already
// judged equivalent: it transplants the host reference, runs
// update-phase hooks, then resolves the children-vs-text cases before
// running the postpatch hook.
func patchVnode(e *Engine, oldVnode, newVnode *VNode, insertedQueue *[]*VNode) {
	if newVnode.Data != nil && newVnode.Data.Hook.Prepatch != nil {
		newVnode.Data.Hook.Prepatch(oldVnode, newVnode)
	}

	elm := oldVnode.Elm
	newVnode.Elm = elm

	if oldVnode == newVnode {
		return
	}

	if newVnode.Data != nil {
		for _, fn := range e.hooks.update {
			fn(oldVnode, newVnode)
		}
		if newVnode.Data.Hook.Update != nil {
			newVnode.Data.Hook.Update(oldVnode, newVnode)
		}
	}

	if newVnode.Text == nil {
		switch {
		case len(newVnode.Children) > 0:
			if len(oldVnode.Children) > 0 {
				if !sameChildSlice(oldVnode.Children, newVnode.Children) {
					updateChildren(e, elm, oldVnode.Children, newVnode.Children, insertedQueue)
				}
			} else {
				if oldVnode.Text != nil {
					e.api.SetTextContent(elm, "")
				}
				addVnodes(e, elm, nil, newVnode.Children, 0, len(newVnode.Children)-1, insertedQueue)
			}
		case len(oldVnode.Children) > 0:
			removeVnodes(e, elm, oldVnode.Children, 0, len(oldVnode.Children)-1)
		case oldVnode.Text != nil:
			e.api.SetTextContent(elm, "")
		}
	} else if oldVnode.Text == nil || *oldVnode.Text != *newVnode.Text {
		if len(oldVnode.Children) > 0 {
			removeVnodes(e, elm, oldVnode.Children, 0, len(oldVnode.Children)-1)
		}
		e.api.SetTextContent(elm, *newVnode.Text)
	}

	if newVnode.Data != nil && newVnode.Data.Hook.Postpatch != nil {
		newVnode.Data.Hook.Postpatch(oldVnode, newVnode)
	}
}

// sameChildSlice reports whether old and new children slices share the
// same backing array, letting a caller that reuses a children slice
// across renders (e.g. memoized static content) skip the diff
// entirely, the way a JS engine would skip it on reference equality.
func sameChildSlice(oldCh, newCh []*VNode) bool {
	if len(oldCh) != len(newCh) {
		return false
	}
	if len(oldCh) == 0 {
		return false
	}
	return unsafe.SliceData(oldCh) == unsafe.SliceData(newCh)
}
