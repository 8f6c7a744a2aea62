package generator

import (
	"fmt"

	"github.com/go-drift/generator/pkg/errors"
	"github.com/go-drift/generator/pkg/handler"
)

// Add registers a typed factory for T on g.
func Add[T any](g *Generator, f func() (T, error)) {
	g.Add(handler.TypeOf[T](), func() (any, error) {
		v, err := f()
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}

// Find returns a typed view of the factory registered for T on g.
func Find[T any](g *Generator) (func() (T, error), bool) {
	t := handler.TypeOf[T]()
	f, ok := g.Find(t)
	if !ok {
		return nil, false
	}
	return func() (T, error) {
		v, err := f()
		if err != nil {
			var zero T
			return zero, err
		}
		return As[T](g, t, v)
	}, true
}

// Create builds a new T using g.
func Create[T any](g *Generator) (T, error) {
	t := handler.TypeOf[T]()
	v, err := g.Create(t)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](g, t, v)
}

// CreateShared returns the shared T of g.
func CreateShared[T any](g *Generator) (T, error) {
	t := handler.TypeOf[T]()
	v, err := g.CreateShared(t)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](g, t, v)
}

// As converts an instance produced for t into T, reporting a creation
// failure when the factory built something of the wrong type.
func As[T any](g *Generator, t handler.Type, v any) (T, error) {
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, &errors.GeneratorError{
			Op:        "generator.As",
			Kind:      errors.KindHandlerCreationFailed,
			Type:      string(t),
			Generator: g.ID(),
			Err:       fmt.Errorf("instance %T does not implement %s", v, t),
		}
	}
	return typed, nil
}
