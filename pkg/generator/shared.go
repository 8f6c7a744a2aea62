package generator

import "github.com/go-drift/generator/pkg/handler"

// Owned is implemented by instances that want to know which generator
// built them. CreateShared assigns the owner once, right after creation.
type Owned interface {
	SetGenerator(g *Generator)
}

// CreateShared returns the single shared instance of t for this generator,
// creating it through Create on first use.
//
// At most one instance is ever created per type, even when many goroutines
// call CreateShared at once; all of them receive the same value. A failed
// creation is returned to its caller and not cached, so a later call
// retries.
func (g *Generator) CreateShared(t handler.Type) (any, error) {
	return g.shared.getOrCreate(t, func() (any, error) {
		inst, err := g.Create(t)
		if err != nil {
			return nil, err
		}
		if o, ok := inst.(Owned); ok {
			o.SetGenerator(g)
		}
		g.logger.Debug("shared handler created", "type", t)
		return inst, nil
	})
}

// Shared returns the shared instance of t if it has already been created.
func (g *Generator) Shared(t handler.Type) (any, bool) {
	return g.shared.load(t)
}
