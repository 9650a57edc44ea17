package modules

import (
	"github.com/solstice-ui/vdom/pkg/dom"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

// Class diffs VData.Class (a set of class-name -> on/off toggles)
// through dom.ClassSetter. A class present in the old node but absent
// or turned off in the new one is toggled off.
func Class() vdom.Module {
	apply := func(oldVnode, newVnode *vdom.VNode) {
		setter, ok := newVnode.Elm.(dom.ClassSetter)
		if !ok {
			return
		}
		oldClass, newClass := classOf(oldVnode), classOf(newVnode)
		for name := range oldClass {
			if !newClass[name] {
				setter.SetClass(name, false)
			}
		}
		for name, on := range newClass {
			if on != oldClass[name] {
				setter.SetClass(name, on)
			}
		}
	}
	return vdom.Module{Create: apply, Update: apply}
}

func classOf(v *vdom.VNode) map[string]bool {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Class
}
