package memory_test

import (
	"testing"

	"github.com/solstice-ui/vdom/pkg/dom/memory"
)

func TestAdapter_CreateAndAppend(t *testing.T) {
	a := memory.NewAdapter()
	parent := a.CreateElement("div")
	child := a.CreateTextNode("hi")
	a.AppendChild(parent, child)

	if a.TagName(parent) != "DIV" {
		t.Fatalf("expected uppercase tag name, got %q", a.TagName(parent))
	}
	if got := a.ParentNode(child); got != parent {
		t.Fatalf("expected child's parent to be the appended-into node")
	}
}

func TestAdapter_InsertBeforeAndNextSibling(t *testing.T) {
	a := memory.NewAdapter()
	parent := a.CreateElement("ul")
	c1 := a.CreateElement("li")
	c2 := a.CreateElement("li")
	c3 := a.CreateElement("li")

	a.AppendChild(parent, c1)
	a.AppendChild(parent, c3)
	a.InsertBefore(parent, c2, c3)

	if a.NextSibling(c1) != c2 {
		t.Fatalf("expected c2 to sit between c1 and c3")
	}
	if a.NextSibling(c2) != c3 {
		t.Fatalf("expected c3 to follow c2")
	}
	if a.NextSibling(c3) != nil {
		t.Fatalf("expected c3 to be last")
	}
}

func TestAdapter_RemoveChild(t *testing.T) {
	a := memory.NewAdapter()
	parent := a.CreateElement("div")
	child := a.CreateElement("span")
	a.AppendChild(parent, child)
	a.RemoveChild(parent, child)

	if a.ParentNode(child) != nil {
		t.Fatalf("expected removed child to have no parent")
	}
}

func TestAdapter_SetTextContentOnTextNode(t *testing.T) {
	a := memory.NewAdapter()
	n := a.CreateTextNode("before").(*memory.Node)
	a.SetTextContent(n, "after")

	if n.Text != "after" {
		t.Fatalf("expected the text node's own content updated, got %q", n.Text)
	}
	if len(n.Children) != 0 {
		t.Fatalf("expected no children grafted onto a text node, got %d", len(n.Children))
	}
}

func TestNode_SetClassToggle(t *testing.T) {
	n := &memory.Node{Kind: memory.ElementNode, Tag: "div"}
	n.SetClass("a", true)
	n.SetClass("b", true)
	n.SetClass("a", false)

	if n.Attributes["class"] != "b" {
		t.Fatalf("expected only class 'b' to remain, got %q", n.Attributes["class"])
	}
}

func TestNode_EventDispatch(t *testing.T) {
	n := &memory.Node{Kind: memory.ElementNode, Tag: "button"}
	var got any
	n.AddEventListener("click", func(payload any) { got = payload })
	n.Dispatch("click", "payload")

	if got != "payload" {
		t.Fatalf("expected dispatched payload to reach the listener, got %v", got)
	}

	n.RemoveEventListener("click", nil)
	got = nil
	n.Dispatch("click", "payload-2")
	if got != nil {
		t.Fatalf("expected no listener to fire after removal")
	}
}

func TestFromElementInspectorRoundtrip(t *testing.T) {
	n := &memory.Node{Kind: memory.ElementNode, Tag: "div"}
	n.SetAttribute("id", "app")
	n.SetClass("a", true)
	n.SetClass("b", true)

	if n.ElementID() != "app" {
		t.Fatalf("expected id 'app', got %q", n.ElementID())
	}
	if n.ElementClassName() == "" {
		t.Fatalf("expected a non-empty class name")
	}
}
