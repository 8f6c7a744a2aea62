package ambient

import (
	"context"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/generator/pkg/generator"
)

// Thread is the per-goroutine view of the ambient state. Its generator
// starts out as the process default and may be overridden.
type Thread struct {
	id      uuid.UUID
	ctx     *Context
	current *generator.Generator
}

func newThread(c *Context) *Thread {
	return &Thread{id: uuid.New(), ctx: c}
}

// ID returns a unique identifier for the thread.
func (t *Thread) ID() uuid.UUID {
	return t.id
}

// Context returns the ambient context the thread belongs to.
func (t *Thread) Context() *Context {
	return t.ctx
}

// Current returns the thread's override if set, else the process default,
// else nil.
func (t *Thread) Current() *generator.Generator {
	if t.current != nil {
		return t.current
	}
	return t.ctx.Default()
}

// HasCurrent reports whether Current would return a generator.
func (t *Thread) HasCurrent() bool {
	return t.Current() != nil
}

// InitializeGlobal makes g the process default if none is set yet, and
// makes it the thread's generator either way. Once a default exists, calls
// from any thread only switch that thread. A nil g does nothing.
func (t *Thread) InitializeGlobal(g *generator.Generator) {
	if g == nil {
		return
	}
	if !t.ctx.setDefault(g) {
		t.ctx.logger.Debug("thread generator switched", "thread", t.id, "generator", g.ID())
	}
	t.current = g
}

// InitializeByIdentifier constructs the generator registered under id in
// the catalog and passes it to InitializeGlobal.
func (t *Thread) InitializeByIdentifier(id string) (*generator.Generator, error) {
	g, err := t.ctx.catalog.Construct(id)
	if err != nil {
		return nil, err
	}
	t.InitializeGlobal(g)
	return g, nil
}

// ThreadStart asks the current generator to acquire the resources it needs
// on a new goroutine. It returns nil when there is no current generator or
// the generator needs nothing.
func (t *Thread) ThreadStart() io.Closer {
	if g := t.Current(); g != nil {
		return g.ThreadStart()
	}
	return nil
}

// Go runs fn on a new goroutine of eg with a fresh thread that uses the
// same generator as t. The generator's ThreadStart resources are held for
// the duration of fn.
func (t *Thread) Go(eg *errgroup.Group, fn func(*Thread) error) {
	current := t.current
	eg.Go(func() error {
		child := newThread(t.ctx)
		child.current = current
		if res := child.ThreadStart(); res != nil {
			defer res.Close()
		}
		return fn(child)
	})
}

// Guard restores a thread's previous generator when released.
type Guard struct {
	thread   *Thread
	previous *generator.Generator
	released bool
}

// ContextFor switches the thread to g until the returned guard is
// released. It returns nil when g is the process default, since no switch
// is needed.
func (t *Thread) ContextFor(g *generator.Generator) *Guard {
	if g == t.ctx.Default() {
		return nil
	}
	guard := &Guard{thread: t, previous: t.current}
	t.current = g
	return guard
}

// Release restores the generator the thread had when the guard was
// acquired. Releasing a nil or already released guard does nothing.
func (g *Guard) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	g.thread.current = g.previous
}

type threadKey struct{}

// WithThread returns a copy of ctx carrying t.
func WithThread(ctx context.Context, t *Thread) context.Context {
	return context.WithValue(ctx, threadKey{}, t)
}

// ThreadFrom returns the thread carried by ctx, or nil.
func ThreadFrom(ctx context.Context) *Thread {
	t, _ := ctx.Value(threadKey{}).(*Thread)
	return t
}
