package memory

import (
	"strings"

	"github.com/solstice-ui/vdom/pkg/dom"
)

// Adapter implements dom.API against the in-process Node tree.
type Adapter struct{}

// NewAdapter returns a ready-to-use in-memory dom.API implementation.
func NewAdapter() *Adapter {
	return &Adapter{}
}

func asNode(n dom.Node) *Node {
	if n == nil {
		return nil
	}
	return n.(*Node)
}

func (a *Adapter) CreateElement(tag string) dom.Node {
	n := newNode(ElementNode)
	n.Tag = tag
	return n
}

func (a *Adapter) CreateElementNS(ns, tag string) dom.Node {
	n := a.CreateElement(tag).(*Node)
	n.SetAttribute("xmlns", ns)
	return n
}

func (a *Adapter) CreateTextNode(text string) dom.Node {
	n := newNode(TextNode)
	n.Text = text
	return n
}

func (a *Adapter) CreateComment(text string) dom.Node {
	n := newNode(CommentNode)
	n.Text = text
	return n
}

func (a *Adapter) InsertBefore(parent, newNode, reference dom.Node) {
	asNode(parent).InsertBefore(asNode(newNode), asNode(reference))
}

func (a *Adapter) RemoveChild(parent, child dom.Node) {
	asNode(parent).RemoveChild(asNode(child))
}

func (a *Adapter) AppendChild(parent, child dom.Node) {
	asNode(parent).AddChild(asNode(child))
}

func (a *Adapter) ParentNode(node dom.Node) dom.Node {
	p := asNode(node).Parent
	if p == nil {
		return nil
	}
	return p
}

func (a *Adapter) NextSibling(node dom.Node) dom.Node {
	s := asNode(node).NextSibling()
	if s == nil {
		return nil
	}
	return s
}

func (a *Adapter) TagName(element dom.Node) string {
	return strings.ToUpper(asNode(element).Tag)
}

func (a *Adapter) SetTextContent(node dom.Node, text string) {
	n := asNode(node)
	if n.Kind != ElementNode {
		n.Text = text
		return
	}
	n.Children = nil
	if text != "" {
		n.AddChild(&Node{Kind: TextNode, Text: text})
	}
}

func (a *Adapter) SetElementText(element dom.Node, text string) {
	a.SetTextContent(element, text)
}
