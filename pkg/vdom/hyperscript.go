package vdom

import "fmt"

const svgNamespace = "http://www.w3.org/2000/svg"

// H builds a VNode the way the hyperscript convention does: the
// trailing arguments are disambiguated by runtime type rather than
// position. Accepted shapes, after sel:
//
//	H(sel)                            no data, no children
//	H(sel, VData{...})                data only
//	H(sel, "text")                    a single text child
//	H(sel, child)                     a single *VNode child
//	H(sel, []*VNode{...})             a children list
//	H(sel, []any{child, "text", nil}) a mixed children list (strings and
//	                                  nils are promoted/preserved per element)
//	H(sel, VData{...}, <any of the above child shapes>)
//
// A VData argument may only appear in the data position. Passing two
// trailing arguments where the first is not VData/*VData is a
// programmer error and panics, the same way an out-of-range index
// does.
func H(sel string, rest ...any) *VNode {
	var data *VData
	var childArg any

	switch len(rest) {
	case 0:
	case 1:
		if d, ok := asVData(rest[0]); ok {
			data = d
		} else {
			childArg = rest[0]
		}
	case 2:
		d, ok := asVData(rest[0])
		if !ok {
			panic("vdom: H's second argument must be a VData when three arguments are given")
		}
		data = d
		childArg = rest[1]
	default:
		panic("vdom: H accepts at most a selector, data and children")
	}

	v := &VNode{Sel: strPtr(sel), Data: data}
	if data != nil {
		v.Key = data.Key
	}

	applyChildArg(v, childArg)

	if isSVGSelector(sel) {
		propagateSVG(v, false)
	}
	return v
}

func asVData(x any) (*VData, bool) {
	switch d := x.(type) {
	case VData:
		return &d, true
	case *VData:
		return d, true
	default:
		return nil, false
	}
}

func applyChildArg(v *VNode, childArg any) {
	switch c := childArg.(type) {
	case nil:
	case string:
		v.Text = strPtr(c)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		v.Text = strPtr(fmt.Sprint(c))
	case *VNode:
		v.Children = []*VNode{c}
	case []*VNode:
		v.Children = append([]*VNode(nil), c...)
	case []any:
		v.Children = normalizeChildrenAny(c)
	default:
		panic(fmt.Sprintf("vdom: H received an unsupported children argument of type %T", childArg))
	}
}

func normalizeChildrenAny(kids []any) []*VNode {
	out := make([]*VNode, len(kids))
	for i, k := range kids {
		switch c := k.(type) {
		case nil:
			out[i] = nil
		case *VNode:
			out[i] = c
		case string:
			out[i] = NewText(c)
		default:
			out[i] = NewText(fmt.Sprint(c))
		}
	}
	return out
}

func isSVGSelector(sel string) bool {
	const prefix = "svg"
	if !hasPrefix(sel, prefix) {
		return false
	}
	if len(sel) == len(prefix) {
		return true
	}
	switch sel[len(prefix)] {
	case '.', '#':
		return true
	default:
		return false
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// propagateSVG walks v's subtree tagging every descendant with the SVG
// namespace, halting at a foreignObject boundary so nested HTML
// children inherit no namespace.
func propagateSVG(v *VNode, parentIsForeignObject bool) {
	if v == nil || parentIsForeignObject {
		return
	}
	if v.IsElement() {
		if v.Data == nil {
			v.Data = &VData{}
		}
		if v.Data.NS == "" {
			v.Data.NS = svgNamespace
		}
	}
	tag, _, _ := parseSelector(derefOr(v.Sel, ""))
	isForeign := tag == "foreignObject"
	for _, ch := range v.Children {
		propagateSVG(ch, isForeign)
	}
}
