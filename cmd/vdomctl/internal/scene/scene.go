// Package scene loads a *.scene.yaml file describing a VNode tree,
// the fixture format cmd/vdomctl serve SSRs and re-patches on change
// and cmd/vdomctl inspect replays mutations against.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/solstice-ui/vdom/pkg/vdom"
)

// Node is one element, text, or comment node in a scene file.
//
// A node with no Tag and a non-empty Text is a text node; a Tag of
// "!" with Text set is a comment, matching the core's own selector
// convention for comment VNodes.
type Node struct {
	Tag      string            `yaml:"tag,omitempty"`
	ID       string            `yaml:"id,omitempty"`
	Class    []string          `yaml:"class,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Style    map[string]string `yaml:"style,omitempty"`
	Dataset  map[string]string `yaml:"dataset,omitempty"`
	Key      string            `yaml:"key,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	On       []string          `yaml:"on,omitempty"`
	Children []Node            `yaml:"children,omitempty"`
}

// Load reads and parses a scene file into a root Node.
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	return &root, nil
}

// Build converts a scene Node tree into a *vdom.VNode tree ready for
// pkg/ssr or vdom.Engine.Patch.
func Build(n *Node) *vdom.VNode {
	if n == nil {
		return nil
	}
	if n.Tag == "" {
		return vdom.NewText(n.Text)
	}
	if n.Tag == "!" {
		return vdom.NewComment(n.Text)
	}

	data := &vdom.VData{
		Attrs:   n.Attrs,
		Style:   n.Style,
		Dataset: n.Dataset,
	}
	if n.Key != "" {
		data.Key = n.Key
	}
	if len(n.Class) > 0 {
		data.Class = make(map[string]bool, len(n.Class))
		for _, c := range n.Class {
			data.Class[c] = true
		}
	}
	if len(n.On) > 0 {
		data.On = make(map[string]any, len(n.On))
		for _, name := range n.On {
			data.On[name] = noopHandler
		}
	}

	sel := n.Tag
	if n.ID != "" {
		sel += "#" + n.ID
	}

	if n.Text != "" && len(n.Children) == 0 {
		return vdom.H(sel, *data, n.Text)
	}

	children := make([]*vdom.VNode, 0, len(n.Children))
	for i := range n.Children {
		children = append(children, Build(&n.Children[i]))
	}
	return vdom.H(sel, *data, children)
}

// noopHandler is the placeholder event handler wired onto scene nodes
// declared with an `on:` list. It does nothing; cmd/vdomctl serve keeps
// it as is and only logs the events live sessions report through
// Session.OnEvent.
func noopHandler(any) {}
