// Package reactive is a layered convenience sitting above pkg/vdom and
// pkg/scheduler: reactive values (State, Computed) that record which
// fiber read them and mark that fiber dirty on write. Like
// pkg/scheduler, it is never imported by pkg/vdom itself.
package reactive

import (
	"sync"
	"sync/atomic"

	"github.com/solstice-ui/vdom/pkg/scheduler"
)

// Scheduler is the subset of *scheduler.Scheduler a Signal needs to
// notify on change. Tests substitute a wrapper that counts calls.
type Scheduler interface {
	MarkDirty(fiber *scheduler.Fiber)
}

var debugLog func(args ...interface{})

// SetDebugLog installs the trace function pkg/debug wires up in a
// debug build; nil (the default) disables tracing entirely.
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// currentFiber is dynamically scoped: a fiber's render function sets
// it before running so any Signal.Get it calls can record the
// dependency, then clears it afterward.
var currentFiber atomic.Pointer[scheduler.Fiber]

// SetCurrentFiber sets the fiber in scope for dependency tracking.
// The scheduler calls this around a fiber's render function.
func SetCurrentFiber(fiber *scheduler.Fiber) {
	currentFiber.Store(fiber)
}

// GetCurrentFiber returns the fiber currently in scope, or nil.
func GetCurrentFiber() *scheduler.Fiber {
	return currentFiber.Load()
}

// Signal is the shape of a writable reactive value. State satisfies
// it; Computed has no Set method and does not.
type Signal[T any] interface {
	Get() T
	Set(T)
	Subscribe(fiber *scheduler.Fiber)
	Unsubscribe(fiber *scheduler.Fiber)
}

// State is a mutable reactive cell. Every Get made while a fiber is
// current subscribes that fiber; every Set marks every subscribed
// fiber dirty.
type State[T any] struct {
	value T
	mu    sync.RWMutex

	deps   map[uint32]*scheduler.Fiber
	depsMu sync.RWMutex

	scheduler Scheduler
}

// NewState creates a State holding initial, notifying sched on change.
func NewState[T any](initial T, sched Scheduler) *State[T] {
	return &State[T]{
		value:     initial,
		deps:      make(map[uint32]*scheduler.Fiber),
		scheduler: sched,
	}
}

// Get returns the current value, subscribing the current fiber (if
// any) as a dependent.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if fiber := GetCurrentFiber(); fiber != nil {
		s.Subscribe(fiber)
	}
	return s.value
}

// Set replaces the value and marks every dependent fiber dirty.
func (s *State[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	if debugLog != nil {
		debugLog("[reactive] State.Set", value)
	}
	s.notify()
}

// Update atomically reads, transforms, and writes the value in one
// step, then marks every dependent fiber dirty.
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	s.mu.Unlock()

	s.notify()
}

func (s *State[T]) notify() {
	s.depsMu.RLock()
	deps := make([]*scheduler.Fiber, 0, len(s.deps))
	for _, fiber := range s.deps {
		deps = append(deps, fiber)
	}
	s.depsMu.RUnlock()

	for _, fiber := range deps {
		markDirtyOrBatch(s.scheduler, fiber)
	}
}

// Subscribe records fiber as a dependent of s. A nil fiber is a no-op,
// so a Get outside any fiber's render never needs a guard at the call
// site.
func (s *State[T]) Subscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}
	s.depsMu.Lock()
	s.deps[fiber.ID()] = fiber
	s.depsMu.Unlock()
}

// Unsubscribe drops fiber as a dependent of s.
func (s *State[T]) Unsubscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}
	s.depsMu.Lock()
	delete(s.deps, fiber.ID())
	s.depsMu.Unlock()
}

// Computed is a memoized derived value: compute runs again only after
// Invalidate, not on every Get.
type Computed[T any] struct {
	compute func() T
	value   T
	valid   bool
	mu      sync.RWMutex

	fiberDeps   map[uint32]*scheduler.Fiber
	fiberDepsMu sync.RWMutex

	scheduler Scheduler
}

// NewComputed creates a Computed backed by compute, notifying sched on
// invalidation.
func NewComputed[T any](compute func() T, sched Scheduler) *Computed[T] {
	return &Computed[T]{
		compute:   compute,
		scheduler: sched,
		fiberDeps: make(map[uint32]*scheduler.Fiber),
	}
}

// Get returns the memoized value, recomputing first if invalid, and
// subscribes the current fiber (if any).
func (c *Computed[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fiber := GetCurrentFiber(); fiber != nil {
		c.Subscribe(fiber)
	}
	if !c.valid {
		c.value = c.compute()
		c.valid = true
	}
	return c.value
}

// Invalidate marks the value stale — the next Get recomputes it — and
// marks every dependent fiber dirty.
func (c *Computed[T]) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()

	c.fiberDepsMu.RLock()
	deps := make([]*scheduler.Fiber, 0, len(c.fiberDeps))
	for _, fiber := range c.fiberDeps {
		deps = append(deps, fiber)
	}
	c.fiberDepsMu.RUnlock()

	for _, fiber := range deps {
		markDirtyOrBatch(c.scheduler, fiber)
	}
}

// Subscribe records fiber as a dependent of c.
func (c *Computed[T]) Subscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}
	c.fiberDepsMu.Lock()
	c.fiberDeps[fiber.ID()] = fiber
	c.fiberDepsMu.Unlock()
}

// Unsubscribe drops fiber as a dependent of c.
func (c *Computed[T]) Unsubscribe(fiber *scheduler.Fiber) {
	if fiber == nil {
		return
	}
	c.fiberDepsMu.Lock()
	delete(c.fiberDeps, fiber.ID())
	c.fiberDepsMu.Unlock()
}

var batchContext atomic.Pointer[Batch]

// Batch collects the fibers a run of Set/Update calls would otherwise
// mark dirty one at a time, so the scheduler sees one wake-up per
// batch instead of one per write.
type Batch struct {
	scheduler   Scheduler
	dirtyFibers map[uint32]*scheduler.Fiber
	mu          sync.Mutex
	active      bool
}

// NewBatch creates an active batch notifying sched on Commit.
func NewBatch(sched Scheduler) *Batch {
	return &Batch{
		scheduler:   sched,
		dirtyFibers: make(map[uint32]*scheduler.Fiber),
		active:      true,
	}
}

// Add records fiber as dirty within the batch; a no-op once Commit
// has run.
func (b *Batch) Add(fiber *scheduler.Fiber) {
	if !b.active || fiber == nil {
		return
	}
	b.mu.Lock()
	b.dirtyFibers[fiber.ID()] = fiber
	b.mu.Unlock()
}

// Commit closes the batch and marks every collected fiber dirty.
func (b *Batch) Commit() {
	b.mu.Lock()
	b.active = false
	fibers := make([]*scheduler.Fiber, 0, len(b.dirtyFibers))
	for _, fiber := range b.dirtyFibers {
		fibers = append(fibers, fiber)
	}
	b.dirtyFibers = nil
	b.mu.Unlock()

	for _, fiber := range fibers {
		b.scheduler.MarkDirty(fiber)
	}
}

// RunBatch runs fn with a batch installed as the current one, so any
// Set/Update made by fn defers its MarkDirty calls to a single commit
// once fn returns.
func RunBatch(sched Scheduler, fn func()) {
	batch := NewBatch(sched)
	prev := batchContext.Swap(batch)
	defer func() {
		batchContext.Store(prev)
		batch.Commit()
	}()
	fn()
}

func markDirtyOrBatch(sched Scheduler, fiber *scheduler.Fiber) {
	if batch := batchContext.Load(); batch != nil && batch.active {
		batch.Add(fiber)
		return
	}
	if sched != nil {
		sched.MarkDirty(fiber)
	}
}

// CreateState creates a State with no scheduler attached; callers that
// want change notifications should use NewState with a real Scheduler.
func CreateState[T any](initial T) *State[T] {
	return NewState(initial, nil)
}

// CreateComputed creates a Computed with no scheduler attached; see
// CreateState.
func CreateComputed[T any](compute func() T) *Computed[T] {
	return NewComputed(compute, nil)
}
