// Package headless provides an in-memory generator that needs no native
// toolkit. It is always constructible, which makes it useful for tests and
// tooling that must run without a display.
package headless

import (
	"sort"
	"sync"

	"github.com/go-drift/generator/pkg/ambient"
	"github.com/go-drift/generator/pkg/generator"
)

// ID is the catalog identifier of the headless generator.
const ID = "headless"

// Version is the version reported to the catalog.
const Version = "v1.0.0"

// Clipboard holds text the way a platform clipboard would.
type Clipboard interface {
	SetText(text string)
	Text() string
	Clear()
}

// Preferences is a string key/value store shared by everything built from
// the same generator.
type Preferences interface {
	Set(key, value string)
	Get(key string) (string, bool)
	Delete(key string)
	Keys() []string
}

// New creates a headless generator with its handlers installed.
func New(opts ...generator.Option) *generator.Generator {
	opts = append([]generator.Option{generator.WithVersion(Version)}, opts...)
	g := generator.New(ID, opts...)

	generator.Add(g, func() (Clipboard, error) {
		return &clipboard{}, nil
	})
	generator.Add(g, func() (Preferences, error) {
		return &preferences{}, nil
	})
	return g
}

// Register adds the headless generator to c.
func Register(c *ambient.Catalog) error {
	return c.Register(ID, ambient.Entry{
		New:         func() (*generator.Generator, error) { return New(), nil },
		Version:     Version,
		Description: "in-memory generator without a native toolkit",
	})
}

type clipboard struct {
	mu   sync.Mutex
	text string
}

func (c *clipboard) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}

func (c *clipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

func (c *clipboard) Clear() {
	c.SetText("")
}

type preferencesTag struct{}

// preferences stores its values in the owning generator's property cache,
// so every Preferences built by one generator sees the same data.
type preferences struct {
	mu    sync.Mutex
	owner *generator.Generator
	local *generator.KeyedCache[string, string]
}

// SetGenerator attaches the store to its generator. Instances built with
// Create rather than CreateShared keep a private store.
func (p *preferences) SetGenerator(g *generator.Generator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.owner = g
}

func (p *preferences) store() *generator.KeyedCache[string, string] {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.owner != nil {
		return generator.Cache[string, string](p.owner, preferencesTag{})
	}
	if p.local == nil {
		p.local = generator.NewKeyedCache[string, string]()
	}
	return p.local
}

func (p *preferences) Set(key, value string) {
	p.store().Store(key, value)
}

func (p *preferences) Get(key string) (string, bool) {
	return p.store().Load(key)
}

func (p *preferences) Delete(key string) {
	p.store().Delete(key)
}

func (p *preferences) Keys() []string {
	keys := p.store().Keys()
	sort.Strings(keys)
	return keys
}
