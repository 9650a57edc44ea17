package modules

import (
	"fmt"

	"github.com/solstice-ui/vdom/pkg/dom"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

// Props diffs VData.Props, assigning DOM properties (as distinct from
// plain attributes) through dom.PropSetter. Equality is checked with
// a formatted-string comparison rather than reflect.DeepEqual, a
// shortcut that's fine for arbitrary prop values of unknown type.
func Props() vdom.Module {
	apply := func(oldVnode, newVnode *vdom.VNode) {
		setter, ok := newVnode.Elm.(dom.PropSetter)
		if !ok {
			return
		}
		oldProps, newProps := propsOf(oldVnode), propsOf(newVnode)
		for k, v := range newProps {
			if old, present := oldProps[k]; !present || !propsEqual(old, v) {
				setter.SetProp(k, v)
			}
		}
	}
	return vdom.Module{Create: apply, Update: apply}
}

func propsOf(v *vdom.VNode) map[string]any {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Props
}

func propsEqual(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
