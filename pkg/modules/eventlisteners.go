package modules

import (
	"github.com/solstice-ui/vdom/pkg/dom"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

// EventListeners diffs VData.On (event name -> handler) through
// dom.EventTarget. Handler func values aren't comparable in Go, so
// unlike the other modules this one can't tell an unchanged handler
// from a changed one: every event name present on the new node is
// re-registered unconditionally (backends key a listener by node and
// event name, so AddEventListener naturally replaces the previous
// one), while an event name dropped from the new node is explicitly
// removed as a clean-up step.
func EventListeners() vdom.Module {
	apply := func(oldVnode, newVnode *vdom.VNode) {
		target, ok := newVnode.Elm.(dom.EventTarget)
		if !ok {
			return
		}
		newOn := onOf(newVnode)
		for event, handler := range onOf(oldVnode) {
			if _, present := newOn[event]; !present {
				target.RemoveEventListener(event, wrapHandler(handler))
			}
		}
		for event, handler := range newOn {
			target.AddEventListener(event, wrapHandler(handler))
		}
	}
	return vdom.Module{Create: apply, Update: apply}
}

// wrapHandler normalizes the handler signatures a caller may register
// under On into the single func(any) shape dom.EventTarget expects.
func wrapHandler(handler any) func(any) {
	switch h := handler.(type) {
	case func(any):
		return h
	case func():
		return func(any) { h() }
	default:
		return func(any) {}
	}
}

func onOf(v *vdom.VNode) map[string]any {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.On
}
