// Package handler maps capability types to the factories that build their
// platform implementations.
//
// A Registry is populated once while a generator is being constructed and
// read afterwards. It is deliberately not synchronized: Add must not run
// concurrently with Find.
package handler

import (
	"reflect"
	"sort"
)

// Type identifies a capability interface. Any stable string works; TypeOf
// derives one from a Go type for the generic wrappers.
type Type string

// Factory builds a new instance implementing a capability type.
type Factory func() (any, error)

// TypeOf returns the Type tag for T, formed from its package path and name.
// Unnamed types fall back to their string form.
func TypeOf[T any]() Type {
	rt := reflect.TypeFor[T]()
	if rt.Name() == "" || rt.PkgPath() == "" {
		return Type(rt.String())
	}
	return Type(rt.PkgPath() + "." + rt.Name())
}

// Registry holds the factories of a single generator.
type Registry struct {
	factories map[Type]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Type]Factory)}
}

// Add registers f for t, replacing any earlier factory.
func (r *Registry) Add(t Type, f Factory) {
	r.factories[t] = f
}

// Find returns the factory registered for t.
func (r *Registry) Find(t Type) (Factory, bool) {
	f, ok := r.factories[t]
	return f, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.factories)
}

// Types returns the registered types in sorted order.
func (r *Registry) Types() []Type {
	types := make([]Type, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
