//go:build !release

package ambient

import (
	"fmt"
	"sync/atomic"

	"github.com/go-drift/generator/pkg/errors"
	"github.com/go-drift/generator/pkg/generator"
)

// DebugChecks reports whether Validate performs its check in this build.
const DebugChecks = true

type expectation struct {
	g atomic.Pointer[generator.Generator]
}

// SetExpected sets the generator Validate compares against. Nil disables
// the check.
func (c *Context) SetExpected(g *generator.Generator) {
	c.expect.g.Store(g)
}

// Validate fails with KindBackendMismatch when an expected generator is set
// and g is not that exact generator. Backends call it at entry points to
// catch objects of one generator being driven by another.
func (c *Context) Validate(g *generator.Generator) error {
	want := c.expect.g.Load()
	if want == nil || want == g {
		return nil
	}
	got := "<nil>"
	if g != nil {
		got = g.ID()
	}
	return &errors.GeneratorError{
		Op:        "ambient.Validate",
		Kind:      errors.KindBackendMismatch,
		Generator: got,
		Err:       fmt.Errorf("expected generator %s", want.ID()),
	}
}
