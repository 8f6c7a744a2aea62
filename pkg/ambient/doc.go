// Package ambient tracks which generator is active.
//
// A Context holds the process default generator and the catalog of known
// generators. Each goroutine that drives UI code works through its own
// Thread, which inherits the process default and can override it:
//
//	amb := ambient.New(catalog)
//	th := amb.NewThread()
//	g, err := th.Detect()          // or th.InitializeByIdentifier("gtk")
//	ctx = ambient.WithThread(ctx, th)
//	lbl, err := ambient.Create[Label](ctx)
//
// # Initialization
//
// InitializeGlobal has a non-obvious contract that multi-backend programs
// rely on: the first call anywhere establishes the process default, and
// every later call, on any thread, only sets the calling thread's override.
// The process default never changes once set.
//
// # Switching generators
//
// ContextFor temporarily switches a thread to another generator:
//
//	defer th.ContextFor(other).Release()
//
// It returns nil when the generator already is the process default; Release
// on a nil Guard does nothing. Guards restore the generator that was active
// immediately before they were acquired, so nested guards unwind in LIFO
// order.
//
// # Detection
//
// Detect probes the catalog in a host-specific preference order and
// publishes the first generator that constructs successfully. Missing or
// failing candidates are skipped; only exhausting the list is an error.
//
// # Validation
//
// Validate checks that a generator is the one the application expects. The
// check exists only in debug builds; building with -tags release removes it
// together with its state.
//
// A Thread is owned by one goroutine and is not safe for concurrent use.
// Context and Catalog are safe for concurrent use.
package ambient
