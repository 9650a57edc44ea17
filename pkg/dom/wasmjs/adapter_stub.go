//go:build !(js && wasm)

package wasmjs

import "github.com/solstice-ui/vdom/pkg/dom"

// Adapter is a stub on non-wasm platforms; the real implementation
// needs syscall/js. Code that wants to cross-compile against this
// package without a js/wasm target still gets something that type
// checks, it just panics if actually used.
type Adapter struct{}

// NewAdapter panics outside a js/wasm build.
func NewAdapter() *Adapter {
	panic("wasmjs: only available under GOOS=js GOARCH=wasm")
}

func (a *Adapter) CreateElement(tag string) dom.Node           { panic("wasmjs: not available") }
func (a *Adapter) CreateElementNS(ns, tag string) dom.Node     { panic("wasmjs: not available") }
func (a *Adapter) CreateTextNode(text string) dom.Node         { panic("wasmjs: not available") }
func (a *Adapter) CreateComment(text string) dom.Node          { panic("wasmjs: not available") }
func (a *Adapter) InsertBefore(parent, newNode, reference dom.Node) { panic("wasmjs: not available") }
func (a *Adapter) RemoveChild(parent, child dom.Node)          { panic("wasmjs: not available") }
func (a *Adapter) AppendChild(parent, child dom.Node)          { panic("wasmjs: not available") }
func (a *Adapter) ParentNode(node dom.Node) dom.Node           { panic("wasmjs: not available") }
func (a *Adapter) NextSibling(node dom.Node) dom.Node          { panic("wasmjs: not available") }
func (a *Adapter) TagName(element dom.Node) string             { panic("wasmjs: not available") }
func (a *Adapter) SetTextContent(node dom.Node, text string)   { panic("wasmjs: not available") }
func (a *Adapter) SetElementText(element dom.Node, text string) { panic("wasmjs: not available") }
