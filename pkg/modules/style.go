package modules

import (
	"github.com/solstice-ui/vdom/pkg/dom"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

// Style diffs VData.Style (inline style declarations) through
// dom.StyleSetter.
func Style() vdom.Module {
	apply := func(oldVnode, newVnode *vdom.VNode) {
		setter, ok := newVnode.Elm.(dom.StyleSetter)
		if !ok {
			return
		}
		oldStyle, newStyle := styleOf(oldVnode), styleOf(newVnode)
		for prop := range oldStyle {
			if _, present := newStyle[prop]; !present {
				setter.RemoveStyle(prop)
			}
		}
		for prop, val := range newStyle {
			if old, present := oldStyle[prop]; !present || old != val {
				setter.SetStyle(prop, val)
			}
		}
	}
	return vdom.Module{Create: apply, Update: apply}
}

func styleOf(v *vdom.VNode) map[string]string {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Style
}
