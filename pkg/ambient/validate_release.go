//go:build release

package ambient

import "github.com/go-drift/generator/pkg/generator"

// DebugChecks reports whether Validate performs its check in this build.
const DebugChecks = false

type expectation struct{}

// SetExpected does nothing in release builds.
func (c *Context) SetExpected(*generator.Generator) {}

// Validate always succeeds in release builds.
func (c *Context) Validate(*generator.Generator) error { return nil }
