package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuild_ElementWithAttrsAndChildren(t *testing.T) {
	root := &Node{
		Tag:   "div",
		ID:    "app",
		Class: []string{"container", "active"},
		Attrs: map[string]string{"title": "hi"},
		Children: []Node{
			{Tag: "span", Text: "hello"},
		},
	}

	vnode := Build(root)
	if vnode.Sel == nil || *vnode.Sel != "div#app" {
		t.Fatalf("expected selector 'div#app', got %+v", vnode.Sel)
	}
	if !vnode.Data.Class["container"] || !vnode.Data.Class["active"] {
		t.Fatalf("expected both classes set, got %+v", vnode.Data.Class)
	}
	if vnode.Data.Attrs["title"] != "hi" {
		t.Fatalf("expected title attr, got %+v", vnode.Data.Attrs)
	}
	if len(vnode.Children) != 1 || *vnode.Children[0].Text != "hello" {
		t.Fatalf("expected one text-bearing child, got %+v", vnode.Children)
	}
}

func TestBuild_TextNode(t *testing.T) {
	vnode := Build(&Node{Text: "just text"})
	if vnode.Sel != nil {
		t.Fatalf("expected a text node with no selector, got %+v", vnode.Sel)
	}
	if *vnode.Text != "just text" {
		t.Fatalf("expected text 'just text', got %q", *vnode.Text)
	}
}

func TestBuild_CommentNode(t *testing.T) {
	vnode := Build(&Node{Tag: "!", Text: "a comment"})
	if !vnode.IsComment() {
		t.Fatalf("expected a comment node, got %+v", vnode)
	}
}

func TestLoad_ParsesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	contents := "tag: div\nid: root\nchildren:\n  - tag: p\n    text: hi\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n.Tag != "div" || n.ID != "root" || len(n.Children) != 1 {
		t.Fatalf("unexpected parsed scene: %+v", n)
	}
}
