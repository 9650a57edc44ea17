package vdom

import "testing"

func TestSameVnode(t *testing.T) {
	a := strPtr("div")
	b := strPtr("div")
	c := strPtr("span")

	cases := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"both nil sel, no key", &VNode{}, &VNode{}, true},
		{"same sel, no key", &VNode{Sel: a}, &VNode{Sel: b}, true},
		{"different sel", &VNode{Sel: a}, &VNode{Sel: c}, false},
		{"same sel, same key", &VNode{Sel: a, Key: "x"}, &VNode{Sel: b, Key: "x"}, true},
		{"same sel, different key", &VNode{Sel: a, Key: "x"}, &VNode{Sel: b, Key: "y"}, false},
		{"one keyed one not", &VNode{Sel: a, Key: "x"}, &VNode{Sel: b}, false},
		{"sel present vs absent", &VNode{Sel: a}, &VNode{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sameVnode(tc.a, tc.b); got != tc.want {
				t.Errorf("sameVnode(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestNewVNodeMirrorsKey(t *testing.T) {
	sel := strPtr("li")
	v := NewVNode(sel, &VData{Key: "row-1"}, nil, nil)
	if v.Key != Key("row-1") {
		t.Fatalf("NewVNode did not mirror data.Key onto v.Key: got %v", v.Key)
	}
}

func TestVNodeKindHelpers(t *testing.T) {
	if !NewText("hi").IsText() {
		t.Error("NewText should report IsText")
	}
	if !NewComment("c").IsComment() {
		t.Error("NewComment should report IsComment")
	}
	el := &VNode{Sel: strPtr("div")}
	if !el.IsElement() {
		t.Error("a node with a non-'!' selector should report IsElement")
	}
}
