package ambient

import (
	"context"
	stderrors "errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/generator/pkg/generator"
)

func TestUninitialized(t *testing.T) {
	amb := New(nil)
	th := amb.NewThread()
	if th.HasCurrent() {
		t.Error("HasCurrent() = true on uninitialized context")
	}
	if th.Current() != nil {
		t.Error("Current() should be nil")
	}
}

func TestInitializeGlobalFirstWins(t *testing.T) {
	amb := New(nil)
	a := generator.New("a")
	b := generator.New("b")

	th1 := amb.NewThread()
	th1.InitializeGlobal(a)
	if amb.Default() != a {
		t.Fatalf("Default() = %v, want a", amb.Default())
	}

	th2 := amb.NewThread()
	if th2.Current() != a {
		t.Errorf("new thread Current() = %v, want a", th2.Current())
	}

	th2.InitializeGlobal(b)
	if amb.Default() != a {
		t.Errorf("Default() = %v, want a after second initialize", amb.Default())
	}
	if th2.Current() != b {
		t.Errorf("th2.Current() = %v, want b", th2.Current())
	}
	if th1.Current() != a {
		t.Errorf("th1.Current() = %v, want a", th1.Current())
	}
}

func TestInitializeGlobalConcurrentFirstWriter(t *testing.T) {
	amb := New(nil)
	const n = 16
	gens := make([]*generator.Generator, n)
	for i := range gens {
		gens[i] = generator.New("g")
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			amb.NewThread().InitializeGlobal(gens[i])
		}(i)
	}
	wg.Wait()

	def := amb.Default()
	found := false
	for _, g := range gens {
		if g == def {
			found = true
		}
	}
	if !found {
		t.Error("Default() should be one of the initializing generators")
	}
}

func TestContextForDefaultReturnsNil(t *testing.T) {
	amb := New(nil)
	a := generator.New("a")
	th := amb.NewThread()
	th.InitializeGlobal(a)

	if g := th.ContextFor(a); g != nil {
		t.Errorf("ContextFor(default) = %v, want nil", g)
	}
	// Releasing a nil guard is a no-op.
	var guard *Guard
	guard.Release()
	if th.Current() != a {
		t.Errorf("Current() = %v, want a", th.Current())
	}
}

func TestContextForNested(t *testing.T) {
	amb := New(nil)
	a := generator.New("a")
	b := generator.New("b")
	c := generator.New("c")
	th := amb.NewThread()
	th.InitializeGlobal(a)

	gb := th.ContextFor(b)
	if gb == nil {
		t.Fatal("ContextFor(b) = nil")
	}
	if th.Current() != b {
		t.Fatalf("Current() = %v, want b", th.Current())
	}

	gc := th.ContextFor(c)
	if th.Current() != c {
		t.Fatalf("Current() = %v, want c", th.Current())
	}

	gc.Release()
	if th.Current() != b {
		t.Errorf("after releasing c, Current() = %v, want b", th.Current())
	}
	gb.Release()
	if th.Current() != a {
		t.Errorf("after releasing b, Current() = %v, want a", th.Current())
	}

	// Double release does not disturb the thread.
	gc.Release()
	if th.Current() != a {
		t.Errorf("double release changed Current() to %v", th.Current())
	}
}

func TestContextForRestoresOnPanic(t *testing.T) {
	amb := New(nil)
	a := generator.New("a")
	b := generator.New("b")
	th := amb.NewThread()
	th.InitializeGlobal(a)

	func() {
		defer func() { recover() }()
		defer th.ContextFor(b).Release()
		if th.Current() != b {
			t.Errorf("Current() = %v, want b", th.Current())
		}
		panic("guarded region failed")
	}()

	if th.Current() != a {
		t.Errorf("Current() = %v, want a after panic", th.Current())
	}
}

func TestContextForIsThreadLocal(t *testing.T) {
	amb := New(nil)
	a := generator.New("a")
	b := generator.New("b")
	th1 := amb.NewThread()
	th1.InitializeGlobal(a)
	th2 := amb.NewThread()

	guard := th1.ContextFor(b)
	defer guard.Release()

	if th2.Current() != a {
		t.Errorf("other thread Current() = %v, want a", th2.Current())
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestGoInheritsGeneratorAndThreadStart(t *testing.T) {
	amb := New(nil)
	a := generator.New("a")
	var started, closed atomic.Int32
	b := generator.New("b", generator.WithThreadStart(func() io.Closer {
		started.Add(1)
		return closerFunc(func() error { closed.Add(1); return nil })
	}))

	th := amb.NewThread()
	th.InitializeGlobal(a)
	guard := th.ContextFor(b)
	defer guard.Release()

	var eg errgroup.Group
	seen := make([]*generator.Generator, 4)
	for i := range seen {
		th.Go(&eg, func(child *Thread) error {
			if child == th {
				t.Error("child thread should be a new cell")
			}
			seen[i] = child.Current()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	for i, g := range seen {
		if g != b {
			t.Errorf("seen[%d] = %v, want b", i, g)
		}
	}
	if started.Load() != 4 || closed.Load() != 4 {
		t.Errorf("started, closed = %d, %d; want 4, 4", started.Load(), closed.Load())
	}
}

func TestThreadStartWithoutGenerator(t *testing.T) {
	if New(nil).NewThread().ThreadStart() != nil {
		t.Error("ThreadStart() should be nil without a generator")
	}
}

func TestThreadFromContext(t *testing.T) {
	if ThreadFrom(context.Background()) != nil {
		t.Error("ThreadFrom(empty) should be nil")
	}
	th := New(nil).NewThread()
	ctx := WithThread(context.Background(), th)
	if ThreadFrom(ctx) != th {
		t.Error("ThreadFrom() did not return the stored thread")
	}
	if _, err := Current(ctx); !stderrors.Is(err, ErrNoCurrent) {
		t.Errorf("Current() error = %v, want ErrNoCurrent", err)
	}
}

func TestThreadIDsUnique(t *testing.T) {
	amb := New(nil)
	if amb.NewThread().ID() == amb.NewThread().ID() {
		t.Error("thread IDs should differ")
	}
}

func TestInitializeGlobalNil(t *testing.T) {
	amb := New(nil)
	th := amb.NewThread()
	th.InitializeGlobal(nil)

	if amb.Default() != nil {
		t.Errorf("Default() = %v, want nil", amb.Default())
	}
	if th.HasCurrent() {
		t.Error("HasCurrent() = true after InitializeGlobal(nil)")
	}

	g := generator.New("g")
	th.InitializeGlobal(g)
	th.InitializeGlobal(nil)
	if th.Current() != g || amb.Default() != g {
		t.Errorf("Current() = %v, Default() = %v; want g for both", th.Current(), amb.Default())
	}
}
