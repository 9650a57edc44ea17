package modules

import (
	"github.com/solstice-ui/vdom/pkg/dom"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

// Dataset diffs VData.Dataset (data-* entries) through
// dom.DatasetSetter.
func Dataset() vdom.Module {
	apply := func(oldVnode, newVnode *vdom.VNode) {
		setter, ok := newVnode.Elm.(dom.DatasetSetter)
		if !ok {
			return
		}
		oldData, newData := datasetOf(oldVnode), datasetOf(newVnode)
		for key := range oldData {
			if _, present := newData[key]; !present {
				setter.RemoveData(key)
			}
		}
		for key, val := range newData {
			if old, present := oldData[key]; !present || old != val {
				setter.SetData(key, val)
			}
		}
	}
	return vdom.Module{Create: apply, Update: apply}
}

func datasetOf(v *vdom.VNode) map[string]string {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Dataset
}
