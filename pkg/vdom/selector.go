package vdom

import "strings"

// parseSelector splits a selector of the form tag('#'id)?('.'class)*
// into its tag, optional id, and class tokens. tag is whatever prefix
// precedes the first '#' or '.'; an id is only recognized when its '#'
// precedes any '.'; every token after the first '.' becomes a class.
func parseSelector(sel string) (tag, id string, classes []string) {
	hashIdx := strings.IndexByte(sel, '#')
	dotIdx := strings.IndexByte(sel, '.')

	cut := len(sel)
	if hashIdx >= 0 && hashIdx < cut {
		cut = hashIdx
	}
	if dotIdx >= 0 && dotIdx < cut {
		cut = dotIdx
	}
	tag = sel[:cut]

	if hashIdx >= 0 && (dotIdx < 0 || hashIdx < dotIdx) {
		end := len(sel)
		if dotIdx >= 0 {
			end = dotIdx
		}
		id = sel[hashIdx+1 : end]
	}

	if dotIdx >= 0 {
		classes = strings.Split(sel[dotIdx+1:], ".")
	}
	return tag, id, classes
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
