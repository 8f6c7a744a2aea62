package ambient

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-drift/generator/pkg/generator"
)

// Context is the explicit ambient state shared by all threads of one
// application: the process default generator, the catalog and the
// detection settings.
type Context struct {
	catalog    *Catalog
	logger     *slog.Logger
	goos       string
	order      map[string][]string
	fallback   []string
	minVersion string

	def      atomic.Pointer[generator.Generator]
	detectMu sync.Mutex
	expect   expectation
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger for initialization and detection records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithGOOS overrides the host operating system used by Detect.
func WithGOOS(goos string) Option {
	return func(c *Context) {
		c.goos = goos
	}
}

// WithDetectOrder replaces the candidate order Detect uses on goos.
// Use "default" for hosts without a specific entry.
func WithDetectOrder(goos string, ids ...string) Option {
	return func(c *Context) {
		c.order[goos] = append([]string(nil), ids...)
	}
}

// WithFallback appends ids to the candidates of every host, after the
// host's own order. Identifiers already in the order are not repeated.
func WithFallback(ids ...string) Option {
	return func(c *Context) {
		c.fallback = append(c.fallback, ids...)
	}
}

// WithMinVersion makes Detect skip catalog entries whose version is older
// than v. Entries without a version are not skipped.
func WithMinVersion(v string) Option {
	return func(c *Context) {
		c.minVersion = v
	}
}

// New creates a Context over catalog. A nil catalog is replaced by an
// empty one.
func New(catalog *Catalog, opts ...Option) *Context {
	if catalog == nil {
		catalog = NewCatalog()
	}
	c := &Context{
		catalog: catalog,
		logger:  slog.Default(),
		goos:    runtime.GOOS,
		order:   defaultOrder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the catalog used for identifier resolution and detection.
func (c *Context) Catalog() *Catalog {
	return c.catalog
}

// Default returns the process default generator, or nil.
func (c *Context) Default() *generator.Generator {
	return c.def.Load()
}

// setDefault publishes g as the process default if none is set yet.
func (c *Context) setDefault(g *generator.Generator) bool {
	if !c.def.CompareAndSwap(nil, g) {
		return false
	}
	c.logger.Info("global generator initialized", "generator", g.ID(), "platform", g.Platform().String())
	return true
}

// NewThread returns a thread cell that inherits the process default.
func (c *Context) NewThread() *Thread {
	return newThread(c)
}
