// Package scheduler is a layered convenience sitting above pkg/vdom: it
// decides *when* to call vdom.Patch, batching re-renders behind a
// lightweight per-component execution context (a Fiber). It is never
// imported by pkg/vdom itself — the core has no scheduling opinion of
// its own, per its Non-goals.
package scheduler

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/solstice-ui/vdom/pkg/vdom"
)

// RenderFunc produces a fiber's next VNode tree.
type RenderFunc func() *vdom.VNode

// ApplyFunc reconciles a fiber's previous tree against its freshly
// rendered one and returns the tree to remember as "previous" next
// time. old is nil on a fiber's first render; a caller's ApplyFunc is
// expected to handle that case itself (typically by materializing the
// tree against a mount point rather than calling vdom.Patch, which
// requires a non-nil oldVnode.Elm).
type ApplyFunc func(old, next *vdom.VNode) *vdom.VNode

// ErrorHandler decides what happens to a fiber whose render panicked:
// return true to keep the fiber schedulable, false to drop it from the
// scheduler.
type ErrorHandler func(fiber *Fiber, err any) bool

// Fiber is one schedulable render unit: a render function, the last
// tree it produced, and a dirty flag reactive writes flip through
// Scheduler.MarkDirty.
type Fiber struct {
	id     uint32
	parent *Fiber
	render RenderFunc

	last  *vdom.VNode
	dirty atomic.Bool

	onError  ErrorHandler
	userData any
}

// debugLog, when non-nil, receives trace lines; pkg/debug installs it.
var debugLog func(args ...any)

// SetDebugLog installs the trace function; nil disables tracing.
func SetDebugLog(fn func(args ...any)) {
	debugLog = fn
}

// Scheduler owns the fiber table and the single goroutine that drains
// dirty fibers. SetApplier and SetDefaultErrorHandler are wiring steps;
// call them before Start.
type Scheduler struct {
	mu     sync.Mutex
	fibers map[uint32]*Fiber
	lastID uint32
	quit   chan struct{}

	wake    chan *Fiber
	running atomic.Bool

	apply   ApplyFunc
	onError ErrorHandler
}

// NewScheduler returns a Scheduler with no fibers and no loop running.
func NewScheduler() *Scheduler {
	return &Scheduler{
		fibers: make(map[uint32]*Fiber),
		wake:   make(chan *Fiber, 256),
	}
}

// SetApplier installs the function that reconciles a fiber's old and
// new trees. Without one, a dirty fiber's render output simply replaces
// its remembered vnode with no DOM effect — useful in tests that only
// care about scheduling order.
func (s *Scheduler) SetApplier(apply ApplyFunc) {
	s.apply = apply
}

// SetDefaultErrorHandler installs the fallback handler for fibers that
// have no handler of their own (see Fiber.SetErrorHandler).
func (s *Scheduler) SetDefaultErrorHandler(handler ErrorHandler) {
	s.onError = handler
}

// CreateFiber registers render under a fresh fiber id. Nothing runs
// until the fiber is first marked dirty.
func (s *Scheduler) CreateFiber(render RenderFunc, parent *Fiber) *Fiber {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	f := &Fiber{id: s.lastID, parent: parent, render: render}
	s.fibers[f.id] = f
	return f
}

// RemoveFiber drops f from the fiber table. It does not clear f's
// dirty flag, so a wake-up for f already in the queue still renders
// it once.
func (s *Scheduler) RemoveFiber(f *Fiber) {
	if f == nil {
		return
	}
	s.mu.Lock()
	delete(s.fibers, f.id)
	s.mu.Unlock()
}

// MarkDirty queues f for a re-render. Marks between two renders
// coalesce: the dirty flag flips at most once, so the wake queue sees
// each fiber once per render cycle no matter how many writes hit it.
func (s *Scheduler) MarkDirty(f *Fiber) {
	if f == nil || !f.dirty.CompareAndSwap(false, true) {
		return
	}
	if debugLog != nil {
		debugLog("scheduler: fiber", f.id, "dirty")
	}
	if !s.running.Load() {
		return
	}
	select {
	case s.wake <- f:
	default:
		// Queue overflow; drop the wake-up rather than block a writer.
	}
}

// Start launches the drain loop. A second Start while running is a
// no-op.
func (s *Scheduler) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	s.quit = make(chan struct{})
	quit := s.quit
	var pending []*Fiber
	for _, f := range s.fibers {
		if f.dirty.Load() {
			pending = append(pending, f)
		}
	}
	s.mu.Unlock()
	go s.run(quit)
	for _, f := range pending {
		select {
		case s.wake <- f:
		default:
		}
	}
}

// Stop shuts the drain loop down. Fibers keep their dirty flags, but
// nothing renders until Start runs again.
func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.mu.Lock()
	if s.quit != nil {
		close(s.quit)
		s.quit = nil
	}
	s.mu.Unlock()
}

// IsRunning reports whether the drain loop is live.
func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

// run sleeps until a fiber wakes it, renders that fiber, then empties
// whatever else queued up in the meantime before sleeping again.
func (s *Scheduler) run(quit chan struct{}) {
	for {
		select {
		case f := <-s.wake:
			s.renderFiber(f)
			s.drainQueued()
		case <-quit:
			return
		}
	}
}

// drainQueued renders every fiber already in the wake queue without
// blocking for more.
func (s *Scheduler) drainQueued() {
	for {
		select {
		case f := <-s.wake:
			s.renderFiber(f)
		default:
			return
		}
	}
}

// renderFiber runs one render/apply cycle for f. The dirty flag clears
// before the render so a write made *during* the render re-queues a
// fresh cycle instead of being lost.
func (s *Scheduler) renderFiber(f *Fiber) {
	if f == nil || !f.dirty.CompareAndSwap(true, false) {
		return
	}
	defer func() {
		if cause := recover(); cause != nil {
			s.recoverFiber(f, cause)
		}
	}()

	next := f.render()
	if s.apply != nil {
		f.last = s.apply(f.last, next)
	} else {
		f.last = next
	}
}

// recoverFiber routes a render panic to the fiber's own handler, or to
// the scheduler default. A false (or absent) handler unregisters the
// fiber so a persistently broken render can't wedge the loop.
func (s *Scheduler) recoverFiber(f *Fiber, cause any) {
	msg := fmt.Sprintf("scheduler: fiber %d panicked: %v\n%s", f.id, cause, debug.Stack())

	handler := f.onError
	if handler == nil {
		handler = s.onError
	}
	if handler != nil && handler(f, msg) {
		return
	}
	s.RemoveFiber(f)
}

// GetFiber looks a fiber up by id, returning nil if it was never
// created or has been removed.
func (s *Scheduler) GetFiber(id uint32) *Fiber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fibers[id]
}

// FiberCount reports how many fibers are registered.
func (s *Scheduler) FiberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fibers)
}

// ID returns the fiber's id, unique within its scheduler.
func (f *Fiber) ID() uint32 {
	return f.id
}

// Parent returns the fiber this one was created under, or nil.
func (f *Fiber) Parent() *Fiber {
	return f.parent
}

// VNode returns the last tree the fiber rendered (nil before the
// first render).
func (f *Fiber) VNode() *vdom.VNode {
	return f.last
}

// SetVNode overrides the fiber's remembered tree; callers that run a
// render cycle by hand (hydration, a first paint ahead of Start) use
// it to seed the "previous" side of the next apply.
func (f *Fiber) SetVNode(vnode *vdom.VNode) {
	f.last = vnode
}

// SetErrorHandler gives this fiber its own panic handler, taking
// precedence over the scheduler default.
func (f *Fiber) SetErrorHandler(handler ErrorHandler) {
	f.onError = handler
}

// SetUserData attaches an arbitrary caller value to the fiber.
func (f *Fiber) SetUserData(data any) {
	f.userData = data
}

// GetUserData returns the value SetUserData stored, or nil.
func (f *Fiber) GetUserData() any {
	return f.userData
}
