package live_test

import (
	"testing"

	"github.com/solstice-ui/vdom/pkg/dom/memory"
	"github.com/solstice-ui/vdom/pkg/live"
	"github.com/solstice-ui/vdom/pkg/modules"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

func newRecordedEngine() (*vdom.Engine, *live.Recorder, *memory.Node) {
	root := &memory.Node{Kind: memory.ElementNode, Tag: "div"}
	rec := live.NewRecorder(memory.NewAdapter())
	mods := []vdom.Module{modules.Attrs(), modules.EventListeners()}
	return vdom.Init(mods, rec), rec, root
}

func TestRecorder_CapturesCreateAndAttribute(t *testing.T) {
	e, rec, root := newRecordedEngine()
	wrapped := rec.Wrap(root)

	e.Patch(vdom.FromElement(wrapped, rec), vdom.H("div", vdom.VData{
		Attrs: map[string]string{"title": "hi"},
	}))

	muts := rec.Drain()
	var sawAttr bool
	for _, m := range muts {
		if m.Op == live.OpSetAttribute && m.Key == "title" && m.Value == "hi" {
			sawAttr = true
		}
	}
	if !sawAttr {
		t.Fatalf("expected a SetAttribute mutation for title, got %+v", muts)
	}
}

func TestRecorder_StableNodeIDs(t *testing.T) {
	e, rec, root := newRecordedEngine()
	wrapped := rec.Wrap(root)

	old := e.Patch(vdom.FromElement(wrapped, rec), vdom.H("div", vdom.H("span", "a")))
	var spanID uint32
	for _, m := range rec.Drain() {
		if m.Op == live.OpCreateElement && m.Tag == "span" {
			spanID = m.NodeID
		}
	}
	if spanID == 0 {
		t.Fatal("expected a CreateElement mutation for the span")
	}

	e.Patch(old, vdom.H("div", vdom.H("span", "b")))
	muts := rec.Drain()

	var sawText bool
	for _, m := range muts {
		if m.Op == live.OpSetTextContent && m.Text == "b" && m.NodeID == spanID {
			sawText = true
		}
	}
	if !sawText {
		t.Fatalf("expected a SetTextContent mutation updating the span under its original id %d, got %+v", spanID, muts)
	}
}

func TestRecorder_DrainResetsBuffer(t *testing.T) {
	e, rec, root := newRecordedEngine()
	wrapped := rec.Wrap(root)

	e.Patch(vdom.FromElement(wrapped, rec), vdom.H("div", "x"))
	if len(rec.Drain()) == 0 {
		t.Fatal("expected mutations from the first patch")
	}
	if got := rec.Drain(); len(got) != 0 {
		t.Fatalf("expected empty drain after buffer reset, got %d mutations", len(got))
	}
}

func TestMutationOp_String(t *testing.T) {
	if got := live.OpSetAttribute.String(); got != "SetAttribute" {
		t.Fatalf("expected 'SetAttribute', got %q", got)
	}
	if got := live.MutationOp(255).String(); got == "" {
		t.Fatalf("expected a non-empty fallback string for an unknown op")
	}
}
