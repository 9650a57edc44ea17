package modules

import (
	"github.com/solstice-ui/vdom/pkg/dom"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

// Attrs diffs VData.Attrs between the old and new node and applies the
// difference through dom.AttributeSetter: attributes dropped from the
// new node are removed, everything new or changed is set.
func Attrs() vdom.Module {
	apply := func(oldVnode, newVnode *vdom.VNode) {
		setter, ok := newVnode.Elm.(dom.AttributeSetter)
		if !ok {
			return
		}
		oldAttrs, newAttrs := attrsOf(oldVnode), attrsOf(newVnode)
		for k, v := range newAttrs {
			if old, present := oldAttrs[k]; !present || old != v {
				setter.SetAttribute(k, v)
			}
		}
		for k := range oldAttrs {
			if _, present := newAttrs[k]; !present {
				setter.RemoveAttribute(k)
			}
		}
	}
	return vdom.Module{Create: apply, Update: apply}
}

func attrsOf(v *vdom.VNode) map[string]string {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Attrs
}
