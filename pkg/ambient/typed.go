package ambient

import (
	"context"
	"fmt"

	"github.com/go-drift/generator/pkg/generator"
)

// ErrNoCurrent is returned by the context-based helpers when ctx carries
// no thread or the thread has no generator.
var ErrNoCurrent = fmt.Errorf("ambient: no current generator")

// Current returns the generator of the thread carried by ctx.
func Current(ctx context.Context) (*generator.Generator, error) {
	t := ThreadFrom(ctx)
	if t == nil {
		return nil, ErrNoCurrent
	}
	g := t.Current()
	if g == nil {
		return nil, ErrNoCurrent
	}
	return g, nil
}

// Create builds a new T with the current generator of ctx.
func Create[T any](ctx context.Context) (T, error) {
	g, err := Current(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return generator.Create[T](g)
}

// CreateShared returns the shared T of the current generator of ctx.
func CreateShared[T any](ctx context.Context) (T, error) {
	g, err := Current(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return generator.CreateShared[T](g)
}

// Find returns the typed factory for T of the current generator of ctx.
func Find[T any](ctx context.Context) (func() (T, error), bool) {
	g, err := Current(ctx)
	if err != nil {
		return nil, false
	}
	return generator.Find[T](g)
}

// Cache returns the tagged K to V container of the current generator of ctx.
func Cache[K comparable, V any](ctx context.Context, tag any) (*generator.KeyedCache[K, V], error) {
	g, err := Current(ctx)
	if err != nil {
		return nil, err
	}
	return generator.Cache[K, V](g, tag), nil
}
