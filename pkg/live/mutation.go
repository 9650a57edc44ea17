package live

import (
	"fmt"
	"sync"

	"github.com/solstice-ui/vdom/pkg/dom"
)

// MutationOp names a single dom.API call a Recorder observed.
type MutationOp uint8

const (
	OpCreateElement MutationOp = iota
	OpCreateElementNS
	OpCreateText
	OpCreateComment
	OpInsertBefore
	OpAppendChild
	OpRemoveChild
	OpSetTextContent
	OpSetElementText
	OpSetAttribute
	OpRemoveAttribute
	OpSetClass
	OpSetStyle
	OpRemoveStyle
	OpSetProp
	OpSetData
	OpRemoveData
	OpAddEventListener
	OpRemoveEventListener
)

var mutationOpNames = [...]string{
	OpCreateElement:       "CreateElement",
	OpCreateElementNS:     "CreateElementNS",
	OpCreateText:          "CreateText",
	OpCreateComment:       "CreateComment",
	OpInsertBefore:        "InsertBefore",
	OpAppendChild:         "AppendChild",
	OpRemoveChild:         "RemoveChild",
	OpSetTextContent:      "SetTextContent",
	OpSetElementText:      "SetElementText",
	OpSetAttribute:        "SetAttribute",
	OpRemoveAttribute:     "RemoveAttribute",
	OpSetClass:            "SetClass",
	OpSetStyle:            "SetStyle",
	OpRemoveStyle:         "RemoveStyle",
	OpSetProp:             "SetProp",
	OpSetData:             "SetData",
	OpRemoveData:          "RemoveData",
	OpAddEventListener:    "AddEventListener",
	OpRemoveEventListener: "RemoveEventListener",
}

// String names the dom.API call an op represents, e.g. "SetAttribute".
func (op MutationOp) String() string {
	if int(op) < len(mutationOpNames) {
		return mutationOpNames[op]
	}
	return fmt.Sprintf("MutationOp(%d)", op)
}

// Mutation is one recorded dom.API call, addressed by the stable NodeID
// a Recorder assigns the first time it sees a node. It is the unit
// streamed to a browser session and the unit cmd/vdomctl inspect walks.
type Mutation struct {
	Op          MutationOp
	NodeID      uint32
	ParentID    uint32
	ReferenceID uint32
	Tag         string
	NS          string
	Text        string
	Key         string
	Value       string
	On          bool
}

// Recorder decorates a dom.API backend, assigning every node it creates
// a stable uint32 ID and appending a Mutation to an internal buffer for
// every call made through it. It is what turns an ordinary Engine.Patch
// call against any dom.API backend into something pkg/live can replay
// or stream: the core itself never knows it is being recorded.
type Recorder struct {
	inner dom.API

	mu        sync.Mutex
	mutations []Mutation
	nextID    uint32
	byInner   map[dom.Node]*recNode
}

// NewRecorder wraps inner, an existing dom.API backend, with mutation
// capture. inner is typically a *memory.Adapter (server-side SSR/dev
// diffing) or a *wasmjs.Adapter (recording a browser session's own
// mutations back to a debugging session).
func NewRecorder(inner dom.API) *Recorder {
	return &Recorder{inner: inner, nextID: 1, byInner: make(map[dom.Node]*recNode)}
}

// Wrap registers a pre-existing host node (the mount point passed to
// the very first Engine.Patch call) with the recorder's ID sequence, so
// later calls referencing it route through the same recNode rather than
// minting a second identity for the same element.
func (r *Recorder) Wrap(inner dom.Node) dom.Node {
	return nodeOrNil(r.wrap(inner))
}

// Drain returns every Mutation recorded since the last Drain call and
// resets the buffer, giving the caller one batch per Patch cycle.
func (r *Recorder) Drain() []Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.mutations
	r.mutations = nil
	return out
}

func (r *Recorder) record(m Mutation) {
	r.mu.Lock()
	r.mutations = append(r.mutations, m)
	r.mu.Unlock()
}

func (r *Recorder) wrap(inner dom.Node) *recNode {
	if inner == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.byInner[inner]; ok {
		return n
	}
	n := &recNode{inner: inner, id: r.nextID, r: r}
	r.nextID++
	r.byInner[inner] = n
	return n
}

func nodeOrNil(n *recNode) dom.Node {
	if n == nil {
		return nil
	}
	return n
}

func asRecNode(n dom.Node) *recNode {
	if n == nil {
		return nil
	}
	return n.(*recNode)
}

func innerOf(n *recNode) dom.Node {
	if n == nil {
		return nil
	}
	return n.inner
}

func idOf(n *recNode) uint32 {
	if n == nil {
		return 0
	}
	return n.id
}

func (r *Recorder) CreateElement(tag string) dom.Node {
	n := r.wrap(r.inner.CreateElement(tag))
	r.record(Mutation{Op: OpCreateElement, NodeID: n.id, Tag: tag})
	return n
}

func (r *Recorder) CreateElementNS(ns, tag string) dom.Node {
	n := r.wrap(r.inner.CreateElementNS(ns, tag))
	r.record(Mutation{Op: OpCreateElementNS, NodeID: n.id, NS: ns, Tag: tag})
	return n
}

func (r *Recorder) CreateTextNode(text string) dom.Node {
	n := r.wrap(r.inner.CreateTextNode(text))
	r.record(Mutation{Op: OpCreateText, NodeID: n.id, Text: text})
	return n
}

func (r *Recorder) CreateComment(text string) dom.Node {
	n := r.wrap(r.inner.CreateComment(text))
	r.record(Mutation{Op: OpCreateComment, NodeID: n.id, Text: text})
	return n
}

func (r *Recorder) InsertBefore(parent, newNode, reference dom.Node) {
	p, nn, ref := asRecNode(parent), asRecNode(newNode), asRecNode(reference)
	r.inner.InsertBefore(innerOf(p), innerOf(nn), innerOf(ref))
	r.record(Mutation{Op: OpInsertBefore, NodeID: idOf(nn), ParentID: idOf(p), ReferenceID: idOf(ref)})
}

func (r *Recorder) AppendChild(parent, child dom.Node) {
	p, c := asRecNode(parent), asRecNode(child)
	r.inner.AppendChild(innerOf(p), innerOf(c))
	r.record(Mutation{Op: OpAppendChild, NodeID: idOf(c), ParentID: idOf(p)})
}

func (r *Recorder) RemoveChild(parent, child dom.Node) {
	p, c := asRecNode(parent), asRecNode(child)
	r.inner.RemoveChild(innerOf(p), innerOf(c))
	r.record(Mutation{Op: OpRemoveChild, NodeID: idOf(c), ParentID: idOf(p)})
}

func (r *Recorder) ParentNode(node dom.Node) dom.Node {
	n := asRecNode(node)
	return nodeOrNil(r.wrap(r.inner.ParentNode(innerOf(n))))
}

func (r *Recorder) NextSibling(node dom.Node) dom.Node {
	n := asRecNode(node)
	return nodeOrNil(r.wrap(r.inner.NextSibling(innerOf(n))))
}

func (r *Recorder) TagName(element dom.Node) string {
	return r.inner.TagName(innerOf(asRecNode(element)))
}

func (r *Recorder) SetTextContent(node dom.Node, text string) {
	n := asRecNode(node)
	r.inner.SetTextContent(innerOf(n), text)
	r.record(Mutation{Op: OpSetTextContent, NodeID: idOf(n), Text: text})
}

func (r *Recorder) SetElementText(element dom.Node, text string) {
	n := asRecNode(element)
	r.inner.SetElementText(innerOf(n), text)
	r.record(Mutation{Op: OpSetElementText, NodeID: idOf(n), Text: text})
}

// recNode is the dom.Node value handed back to pkg/vdom and pkg/modules
// in place of the backend's own node. It carries the stable ID and
// implements every optional capability interface the wrapped backend
// node supports, recording a Mutation alongside each delegated call.
type recNode struct {
	inner dom.Node
	id    uint32
	r     *Recorder
}

func (n *recNode) SetAttribute(name, value string) {
	if s, ok := n.inner.(dom.AttributeSetter); ok {
		s.SetAttribute(name, value)
	}
	n.r.record(Mutation{Op: OpSetAttribute, NodeID: n.id, Key: name, Value: value})
}

func (n *recNode) RemoveAttribute(name string) {
	if s, ok := n.inner.(dom.AttributeSetter); ok {
		s.RemoveAttribute(name)
	}
	n.r.record(Mutation{Op: OpRemoveAttribute, NodeID: n.id, Key: name})
}

func (n *recNode) SetClass(name string, on bool) {
	if s, ok := n.inner.(dom.ClassSetter); ok {
		s.SetClass(name, on)
	}
	n.r.record(Mutation{Op: OpSetClass, NodeID: n.id, Key: name, On: on})
}

func (n *recNode) SetStyle(prop, value string) {
	if s, ok := n.inner.(dom.StyleSetter); ok {
		s.SetStyle(prop, value)
	}
	n.r.record(Mutation{Op: OpSetStyle, NodeID: n.id, Key: prop, Value: value})
}

func (n *recNode) RemoveStyle(prop string) {
	if s, ok := n.inner.(dom.StyleSetter); ok {
		s.RemoveStyle(prop)
	}
	n.r.record(Mutation{Op: OpRemoveStyle, NodeID: n.id, Key: prop})
}

func (n *recNode) SetProp(name string, value any) {
	if s, ok := n.inner.(dom.PropSetter); ok {
		s.SetProp(name, value)
	}
	n.r.record(Mutation{Op: OpSetProp, NodeID: n.id, Key: name, Value: toMutationString(value)})
}

func (n *recNode) SetData(key, value string) {
	if s, ok := n.inner.(dom.DatasetSetter); ok {
		s.SetData(key, value)
	}
	n.r.record(Mutation{Op: OpSetData, NodeID: n.id, Key: key, Value: value})
}

func (n *recNode) RemoveData(key string) {
	if s, ok := n.inner.(dom.DatasetSetter); ok {
		s.RemoveData(key)
	}
	n.r.record(Mutation{Op: OpRemoveData, NodeID: n.id, Key: key})
}

func (n *recNode) AddEventListener(event string, handler func(any)) {
	if t, ok := n.inner.(dom.EventTarget); ok {
		t.AddEventListener(event, handler)
	}
	n.r.record(Mutation{Op: OpAddEventListener, NodeID: n.id, Key: event})
}

func (n *recNode) RemoveEventListener(event string, handler func(any)) {
	if t, ok := n.inner.(dom.EventTarget); ok {
		t.RemoveEventListener(event, handler)
	}
	n.r.record(Mutation{Op: OpRemoveEventListener, NodeID: n.id, Key: event})
}

// ElementID implements dom.ElementInspector by delegating; reads aren't
// mutations and so aren't recorded.
func (n *recNode) ElementID() string {
	if s, ok := n.inner.(dom.ElementInspector); ok {
		return s.ElementID()
	}
	return ""
}

// ElementClassName implements dom.ElementInspector.
func (n *recNode) ElementClassName() string {
	if s, ok := n.inner.(dom.ElementInspector); ok {
		return s.ElementClassName()
	}
	return ""
}

func toMutationString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
