package vdom

import "github.com/solstice-ui/vdom/pkg/dom"

// updateChildren reconciles oldCh against newCh with four cursors
// walking in from both ends, matching siblings by key+selector and
// falling back to a lazily built key→old-index map when the four
// simple positional checks all miss.
func updateChildren(e *Engine, parentElm dom.Node, oldCh, newCh []*VNode, insertedQueue *[]*VNode) {
	oldStartIdx, newStartIdx := 0, 0
	oldEndIdx := len(oldCh) - 1
	newEndIdx := len(newCh) - 1

	var keyToIdx map[Key]int

	for oldStartIdx <= oldEndIdx && newStartIdx <= newEndIdx {
		oldStart := oldCh[oldStartIdx]
		oldEnd := oldCh[oldEndIdx]
		newStart := newCh[newStartIdx]
		newEnd := newCh[newEndIdx]

		// A nil slot can appear on either side: a vacated old entry
		// (already moved/patched earlier in this same pass) or a
		// user-supplied null child. Either way it carries no host
		// node to compare or create, so the matching cursor simply
		// advances past it before the next iteration re-reads.
		switch {
		case oldStart == nil:
			oldStartIdx++
		case oldEnd == nil:
			oldEndIdx--
		case newStart == nil:
			newStartIdx++
		case newEnd == nil:
			newEndIdx--
		case sameVnode(oldStart, newStart):
			patchVnode(e, oldStart, newStart, insertedQueue)
			oldStartIdx++
			newStartIdx++
		case sameVnode(oldEnd, newEnd):
			patchVnode(e, oldEnd, newEnd, insertedQueue)
			oldEndIdx--
			newEndIdx--
		case sameVnode(oldStart, newEnd):
			patchVnode(e, oldStart, newEnd, insertedQueue)
			e.api.InsertBefore(parentElm, oldStart.Elm, e.api.NextSibling(oldEnd.Elm))
			oldStartIdx++
			newEndIdx--
		case sameVnode(oldEnd, newStart):
			patchVnode(e, oldEnd, newStart, insertedQueue)
			e.api.InsertBefore(parentElm, oldEnd.Elm, oldStart.Elm)
			oldEndIdx--
			newStartIdx++
		default:
			if keyToIdx == nil {
				keyToIdx = buildKeyToIdx(oldCh, oldStartIdx, oldEndIdx)
			}
			idx, found := -1, false
			if newStart.Key != nil {
				if i, ok := keyToIdx[newStart.Key]; ok {
					idx, found = i, true
				}
			}
			if !found {
				elm := createElm(e, newStart, insertedQueue)
				e.api.InsertBefore(parentElm, elm, oldStart.Elm)
			} else {
				toMove := oldCh[idx]
				if toMove.Sel == nil || newStart.Sel == nil || *toMove.Sel != *newStart.Sel {
					elm := createElm(e, newStart, insertedQueue)
					e.api.InsertBefore(parentElm, elm, oldStart.Elm)
				} else {
					patchVnode(e, toMove, newStart, insertedQueue)
					oldCh[idx] = nil
					e.api.InsertBefore(parentElm, toMove.Elm, oldStart.Elm)
				}
			}
			newStartIdx++
		}
	}

	switch {
	case oldStartIdx > oldEndIdx:
		var before dom.Node
		if newEndIdx+1 < len(newCh) {
			if next := newCh[newEndIdx+1]; next != nil {
				before = next.Elm
			}
		}
		addVnodes(e, parentElm, before, newCh, newStartIdx, newEndIdx, insertedQueue)
	case newStartIdx > newEndIdx:
		removeVnodes(e, parentElm, oldCh, oldStartIdx, oldEndIdx)
	}
}

func addVnodes(e *Engine, parentElm, before dom.Node, vnodes []*VNode, startIdx, endIdx int, insertedQueue *[]*VNode) {
	for i := startIdx; i <= endIdx; i++ {
		ch := vnodes[i]
		if ch == nil {
			continue
		}
		elm := createElm(e, ch, insertedQueue)
		e.api.InsertBefore(parentElm, elm, before)
	}
}

// buildKeyToIdx maps every keyed child in oldCh[start..end] (both
// ends inclusive) to its index. Unkeyed children are omitted: they can only ever be matched
// by the positional checks above, the same as a real DOM diff that
// tracks identity by key alone.
func buildKeyToIdx(oldCh []*VNode, start, end int) map[Key]int {
	m := make(map[Key]int, end-start+1)
	for i := start; i <= end; i++ {
		ch := oldCh[i]
		if ch != nil && ch.Key != nil {
			m[ch.Key] = i
		}
	}
	return m
}
