// Package generator implements the per-backend side of handler resolution.
//
// A Generator is one concrete platform backend. It owns three stores that
// live as long as it does:
//
//   - a handler.Registry mapping capability types to factories,
//   - a shared-instance cache holding at most one instance per type,
//   - a property cache for arbitrary lazily built values.
//
// Backends install their factories while being constructed:
//
//	g := generator.New("gtk", generator.WithPlatform(generator.Desktop|generator.Linux))
//	generator.Add(g, func() (Label, error) { return newGtkLabel(), nil })
//
// Callers then build implementations:
//
//	lbl, err := generator.Create[Label](g)       // always a fresh instance
//	app, err := generator.CreateShared[App](g)   // built once, then reused
//
// # Failures
//
// Create returns a single failure shape: a *errors.GeneratorError of kind
// KindHandlerCreationFailed wrapping the cause. A missing factory is still
// detectable with errors.Is(err, errors.ErrHandlerNotFound).
//
// # Concurrency
//
// Registration (Add) is not synchronized and belongs in backend setup.
// Create, CreateShared, Properties and Cache are safe for concurrent use.
// Shared instances and properties are created at most once per key; callers
// racing on the same key wait for the first creation, callers on other keys
// do not.
package generator
