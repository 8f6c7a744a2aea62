package generator

import (
	"io"
	"log/slog"
	"sync"

	"github.com/go-drift/generator/pkg/handler"
)

// Generator is a concrete platform backend.
type Generator struct {
	id       string
	version  string
	platform Platform
	logger   *slog.Logger

	handlers    *handler.Registry
	shared      lazyStore[handler.Type]
	properties  Properties
	threadStart func() io.Closer

	observersMu sync.RWMutex
	observers   []observer
	nextID      uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithPlatform sets the platform flags of the generator.
func WithPlatform(p Platform) Option {
	return func(g *Generator) {
		g.platform = p
	}
}

// WithVersion sets a semantic version string (e.g. "v1.4.0").
func WithVersion(v string) Option {
	return func(g *Generator) {
		g.version = v
	}
}

// WithLogger sets the logger used for registration and creation records.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithThreadStart installs the hook returned by ThreadStart. The hook
// acquires whatever per-thread resources the native toolkit needs; the
// returned Closer releases them.
func WithThreadStart(fn func() io.Closer) Option {
	return func(g *Generator) {
		g.threadStart = fn
	}
}

// New creates a generator with an empty handler registry.
func New(id string, opts ...Option) *Generator {
	g := &Generator{
		id:       id,
		logger:   slog.Default(),
		handlers: handler.NewRegistry(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("generator", id)
	return g
}

// ID returns the generator identifier.
func (g *Generator) ID() string {
	return g.id
}

// Version returns the configured version, or "".
func (g *Generator) Version() string {
	return g.version
}

// Platform returns the platform flags.
func (g *Generator) Platform() Platform {
	return g.platform
}

// Is reports whether the generator carries every flag in p.
func (g *Generator) Is(p Platform) bool {
	return g.platform.Has(p)
}

// Add registers the factory for t, replacing any earlier one. Instances
// already cached by CreateShared are unaffected.
//
// Add is not synchronized; call it only during backend setup.
func (g *Generator) Add(t handler.Type, f handler.Factory) {
	g.logger.Debug("registering handler", "type", t)
	g.handlers.Add(t, f)
}

// Find returns the factory registered for t.
func (g *Generator) Find(t handler.Type) (handler.Factory, bool) {
	return g.handlers.Find(t)
}

// Supports reports whether a factory is registered for t.
func (g *Generator) Supports(t handler.Type) bool {
	_, ok := g.handlers.Find(t)
	return ok
}

// Handlers returns the registered capability types in sorted order.
func (g *Generator) Handlers() []handler.Type {
	return g.handlers.Types()
}

// Properties returns the generator's property cache.
func (g *Generator) Properties() *Properties {
	return &g.properties
}

// ThreadStart acquires per-thread resources for a goroutine that is about
// to drive this generator. It returns nil when the backend needs none.
func (g *Generator) ThreadStart() io.Closer {
	if g.threadStart == nil {
		return nil
	}
	return g.threadStart()
}

func (g *Generator) String() string {
	return g.id
}
