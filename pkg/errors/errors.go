// Package errors provides structured error handling for handler resolution
// and generator lifetime management.
//
// Every failure surfaced by the generator and ambient packages is a
// *GeneratorError carrying an ErrorKind, the operation that failed and the
// original cause. Sentinel values such as ErrHandlerNotFound match any error
// of the same kind through errors.Is, even when wrapped.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindHandlerNotFound indicates a capability type has no registered factory.
	KindHandlerNotFound
	// KindHandlerCreationFailed indicates a factory could not produce an instance.
	KindHandlerCreationFailed
	// KindBackendNotFound indicates a generator identifier is not in the catalog.
	KindBackendNotFound
	// KindBackendConstructionFailed indicates a generator constructor failed.
	KindBackendConstructionFailed
	// KindPlatformNotDetected indicates detection exhausted every candidate.
	KindPlatformNotDetected
	// KindBackendMismatch indicates a generator differs from the expected one.
	KindBackendMismatch
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindHandlerNotFound:
		return "handler not found"
	case KindHandlerCreationFailed:
		return "handler creation failed"
	case KindBackendNotFound:
		return "backend not found"
	case KindBackendConstructionFailed:
		return "backend construction failed"
	case KindPlatformNotDetected:
		return "platform not detected"
	case KindBackendMismatch:
		return "backend mismatch"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per kind. Use with errors.Is.
var (
	ErrHandlerNotFound           = &GeneratorError{Kind: KindHandlerNotFound}
	ErrHandlerCreationFailed     = &GeneratorError{Kind: KindHandlerCreationFailed}
	ErrBackendNotFound           = &GeneratorError{Kind: KindBackendNotFound}
	ErrBackendConstructionFailed = &GeneratorError{Kind: KindBackendConstructionFailed}
	ErrPlatformNotDetected       = &GeneratorError{Kind: KindPlatformNotDetected}
	ErrBackendMismatch           = &GeneratorError{Kind: KindBackendMismatch}
)

// GeneratorError represents a structured handler or generator failure.
type GeneratorError struct {
	// Op is the operation that failed (e.g., "generator.Create").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Type is the capability type involved, if any.
	Type string
	// Generator is the generator identifier involved, if any.
	Generator string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *GeneratorError) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = fmt.Sprintf("%s [%s]", e.Op, e.Kind)
	}
	if e.Generator != "" {
		msg += " generator=" + e.Generator
	}
	if e.Type != "" {
		msg += " type=" + e.Type
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GeneratorError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *GeneratorError) Is(target error) bool {
	t, ok := target.(*GeneratorError)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the outermost GeneratorError in err's chain,
// or KindUnknown.
func KindOf(err error) ErrorKind {
	var ge *GeneratorError
	if stderrors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "generator.Create").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives errors reported by the generator packages.
type ErrorHandler interface {
	// HandleError is called when an error is absorbed rather than returned.
	HandleError(err *GeneratorError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
