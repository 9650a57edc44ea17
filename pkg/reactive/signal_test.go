package reactive

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/solstice-ui/vdom/pkg/scheduler"
	"github.com/solstice-ui/vdom/pkg/vdom"
)

func TestState_GetSet(t *testing.T) {
	state := NewState(42, scheduler.NewScheduler())
	if got := state.Get(); got != 42 {
		t.Fatalf("initial value = %d, want 42", got)
	}
	state.Set(100)
	if got := state.Get(); got != 100 {
		t.Fatalf("value after Set = %d, want 100", got)
	}
}

func TestState_Update(t *testing.T) {
	state := NewState(10, scheduler.NewScheduler())
	state.Update(func(v int) int { return v * 2 })
	if got := state.Get(); got != 20 {
		t.Fatalf("value after Update = %d, want 20", got)
	}
}

func TestState_DependencyTracking(t *testing.T) {
	sched := scheduler.NewScheduler()
	state := NewState("hello", sched)

	var renders atomic.Int32
	fiber := sched.CreateFiber(func() *vdom.VNode {
		SetCurrentFiber(sched.GetFiber(1))
		defer SetCurrentFiber(nil)
		renders.Add(1)
		return vdom.NewText(state.Get())
	}, nil)

	SetCurrentFiber(fiber)
	_ = state.Get()
	SetCurrentFiber(nil)

	sched.Start()
	defer sched.Stop()

	sched.MarkDirty(fiber)
	time.Sleep(50 * time.Millisecond)
	if got := renders.Load(); got != 1 {
		t.Fatalf("renders after initial MarkDirty = %d, want 1", got)
	}

	state.Set("world")
	time.Sleep(50 * time.Millisecond)
	if got := renders.Load(); got != 2 {
		t.Fatalf("renders after state change = %d, want 2", got)
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	state := NewState(0, scheduler.NewScheduler())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(v int) { defer wg.Done(); state.Set(v) }(i)
	}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() { defer wg.Done(); _ = state.Get() }()
	}
	wg.Wait()
}

func TestState_SubscribeUnsubscribe(t *testing.T) {
	state := NewState("test", scheduler.NewScheduler())
	fiber := &scheduler.Fiber{}

	state.Subscribe(fiber)
	if len(state.deps) != 1 {
		t.Fatalf("deps after Subscribe = %d, want 1", len(state.deps))
	}
	state.Unsubscribe(fiber)
	if len(state.deps) != 0 {
		t.Fatalf("deps after Unsubscribe = %d, want 0", len(state.deps))
	}
}

func TestState_NilFiberIsNoop(t *testing.T) {
	state := NewState(42, scheduler.NewScheduler())
	state.Subscribe(nil)
	state.Unsubscribe(nil)

	SetCurrentFiber(nil)
	if got := state.Get(); got != 42 {
		t.Fatalf("Get outside a fiber = %d, want 42", got)
	}
}

func TestComputed_RecomputesOnlyAfterInvalidate(t *testing.T) {
	var computes atomic.Int32
	computed := NewComputed(func() int {
		computes.Add(1)
		return 42
	}, scheduler.NewScheduler())

	_ = computed.Get()
	_ = computed.Get()
	if got := computes.Load(); got != 1 {
		t.Fatalf("computes before Invalidate = %d, want 1 (memoized)", got)
	}

	computed.Invalidate()
	_ = computed.Get()
	if got := computes.Load(); got != 2 {
		t.Fatalf("computes after Invalidate = %d, want 2", got)
	}
}

func TestComputed_RecomputesFromUpdatedDependencyAfterInvalidate(t *testing.T) {
	sched := scheduler.NewScheduler()
	count := NewState(5, sched)

	fiber := sched.CreateFiber(func() *vdom.VNode { return vdom.NewText("test") }, nil)

	SetCurrentFiber(fiber)
	double := NewComputed(func() int { return count.Get() * 2 }, sched)
	SetCurrentFiber(nil)

	if got := double.Get(); got != 10 {
		t.Fatalf("double.Get() = %d, want 10", got)
	}

	count.Set(7)
	double.Invalidate()
	if got := double.Get(); got != 14 {
		t.Fatalf("double.Get() after update = %d, want 14", got)
	}
}

func TestComputed_ChainedDependencies(t *testing.T) {
	sched := scheduler.NewScheduler()
	a := NewState(1, sched)

	withMockFiber := func(compute func() int) *Computed[int] {
		return NewComputed(func() int {
			SetCurrentFiber(&scheduler.Fiber{})
			defer SetCurrentFiber(nil)
			return compute()
		}, sched)
	}

	b := withMockFiber(func() int { return a.Get() + 1 })
	c := withMockFiber(func() int { return b.Get() * 2 })

	if got := c.Get(); got != 4 {
		t.Fatalf("c.Get() = %d, want 4", got)
	}

	a.Set(5)
	b.Invalidate()
	c.Invalidate()
	if got := c.Get(); got != 12 {
		t.Fatalf("c.Get() after update = %d, want 12", got)
	}
}

// trackingScheduler wraps a real Scheduler to count MarkDirty calls,
// the hook TestBatch uses to tell a coalesced commit from N separate
// notifications.
type trackingScheduler struct {
	*scheduler.Scheduler
	marks *atomic.Int32
}

func (t *trackingScheduler) MarkDirty(fiber *scheduler.Fiber) {
	t.marks.Add(1)
	t.Scheduler.MarkDirty(fiber)
}

func TestBatch_CoalescesNotifications(t *testing.T) {
	var marks atomic.Int32
	tracking := &trackingScheduler{Scheduler: scheduler.NewScheduler(), marks: &marks}

	s1 := NewState(1, tracking)
	s2 := NewState(2, tracking)
	s3 := NewState(3, tracking)

	fiber := tracking.CreateFiber(func() *vdom.VNode {
		return vdom.NewText(string(rune(s1.Get() + s2.Get() + s3.Get())))
	}, nil)

	SetCurrentFiber(fiber)
	_, _, _ = s1.Get(), s2.Get(), s3.Get()
	SetCurrentFiber(nil)

	marks.Store(0)
	s1.Set(10)
	s2.Set(20)
	s3.Set(30)
	if got := marks.Load(); got != 3 {
		t.Fatalf("marks without a batch = %d, want 3 (one per Set)", got)
	}

	marks.Store(0)
	RunBatch(tracking, func() {
		s1.Set(100)
		s2.Set(200)
		s3.Set(300)
	})
	if got := marks.Load(); got != 1 {
		t.Fatalf("marks inside RunBatch = %d, want 1 (coalesced)", got)
	}
}

func BenchmarkState_Get(b *testing.B) {
	state := NewState(42, scheduler.NewScheduler())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = state.Get()
	}
}

func BenchmarkState_Set(b *testing.B) {
	state := NewState(0, scheduler.NewScheduler())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		state.Set(i)
	}
}

func BenchmarkComputed_Get(b *testing.B) {
	base := NewState(10, scheduler.NewScheduler())
	computed := NewComputed(func() int { return base.Get() * 2 }, base.scheduler)
	_ = computed.Get()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = computed.Get()
	}
}
