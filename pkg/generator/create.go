package generator

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/go-drift/generator/pkg/errors"
	"github.com/go-drift/generator/pkg/handler"
)

var errNilInstance = fmt.Errorf("factory returned a nil instance")

// CreatedEvent is delivered to observers after every successful Create.
type CreatedEvent struct {
	// ID uniquely identifies this creation.
	ID uuid.UUID
	// Generator is the generator that built the instance.
	Generator *Generator
	// Type is the requested capability type.
	Type handler.Type
	// Instance is the newly created object.
	Instance any
}

// CreatedHandler is called when a handler instance is created.
type CreatedHandler func(CreatedEvent)

type observer struct {
	id uint64
	fn CreatedHandler
}

// OnCreated registers fn to run after every successful Create on this
// generator, on the goroutine that called Create. The returned function
// removes the registration.
func (g *Generator) OnCreated(fn CreatedHandler) func() {
	g.observersMu.Lock()
	g.nextID++
	id := g.nextID
	g.observers = append(g.observers, observer{id: id, fn: fn})
	g.observersMu.Unlock()

	return func() {
		g.observersMu.Lock()
		defer g.observersMu.Unlock()
		for i, o := range g.observers {
			if o.id == id {
				g.observers = append(g.observers[:i:i], g.observers[i+1:]...)
				return
			}
		}
	}
}

// Create builds a new instance of t using its registered factory.
//
// Any failure, including a missing factory or a panicking factory, is
// returned as a *errors.GeneratorError of kind KindHandlerCreationFailed
// whose cause is the original failure. A factory that returns nil, including
// a typed nil pointer, fails the same way. Observers registered with OnCreated
// run before Create returns, and only on success.
func (g *Generator) Create(t handler.Type) (any, error) {
	const op = "generator.Create"

	var inst any
	var cause error
	if f, ok := g.handlers.Find(t); !ok {
		cause = &errors.GeneratorError{
			Op:        op,
			Kind:      errors.KindHandlerNotFound,
			Type:      string(t),
			Generator: g.id,
		}
	} else {
		cause = errors.Catch(op, func() error {
			var err error
			inst, err = f()
			return err
		})
		if cause == nil && isNil(inst) {
			cause = errNilInstance
		}
	}

	if cause != nil {
		g.logger.Debug("handler creation failed", "type", t, "error", cause)
		return nil, &errors.GeneratorError{
			Op:         op,
			Kind:       errors.KindHandlerCreationFailed,
			Type:       string(t),
			Generator:  g.id,
			Err:        cause,
			StackTrace: errors.CaptureStack(),
			Timestamp:  time.Now(),
		}
	}

	g.notifyCreated(t, inst)
	return inst, nil
}

func (g *Generator) notifyCreated(t handler.Type, inst any) {
	g.observersMu.RLock()
	if len(g.observers) == 0 {
		g.observersMu.RUnlock()
		return
	}
	observers := make([]observer, len(g.observers))
	copy(observers, g.observers)
	g.observersMu.RUnlock()

	ev := CreatedEvent{
		ID:        uuid.New(),
		Generator: g,
		Type:      t,
		Instance:  inst,
	}
	for _, o := range observers {
		g.notify(o, ev)
	}
}

// notify runs one observer. A panicking observer is reported and does not
// stop the others or fail Create.
func (g *Generator) notify(o observer, ev CreatedEvent) {
	defer errors.Recover("generator.OnCreated")
	o.fn(ev)
}

// isNil reports whether v is nil or a nil value of a nillable kind, such as
// a nil pointer returned through an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
