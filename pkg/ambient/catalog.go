package ambient

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/go-drift/generator/pkg/errors"
	"github.com/go-drift/generator/pkg/generator"
)

// Well-known generator identifiers probed by Detect.
const (
	// IDMac64 is the first-choice native macOS bridge.
	IDMac64 = "mac64"
	// IDXamMac is the secondary macOS bridge.
	IDXamMac = "xammac2"
	// IDWpf is the preferred Windows framework.
	IDWpf = "wpf"
	// IDWinForms is the legacy Windows framework.
	IDWinForms = "winforms"
	// IDGtk is the cross-platform Unix toolkit binding.
	IDGtk = "gtk"
)

// Constructor builds a generator. It may fail, for example when the native
// toolkit is not installed.
type Constructor func() (*generator.Generator, error)

// Entry describes a constructible generator.
type Entry struct {
	// New constructs the generator.
	New Constructor
	// Version is an optional semantic version (e.g. "v2.1.0").
	Version string
	// Platform lists the platform flags the generator will report.
	Platform generator.Platform
	// Description is a short human readable summary.
	Description string
}

// Catalog maps generator identifiers to constructors.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Register adds or replaces the entry for id.
func (c *Catalog) Register(id string, e Entry) error {
	if id == "" {
		return fmt.Errorf("catalog: empty generator id")
	}
	if e.New == nil {
		return fmt.Errorf("catalog: generator %q has no constructor", id)
	}
	if e.Version != "" && !semver.IsValid(e.Version) {
		return fmt.Errorf("catalog: generator %q has invalid version %q", id, e.Version)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = e
	return nil
}

// MustRegister is like Register but panics on error.
func (c *Catalog) MustRegister(id string, e Entry) {
	if err := c.Register(id, e); err != nil {
		panic(err)
	}
}

// Unregister removes id from the catalog.
func (c *Catalog) Unregister(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	return e, ok
}

// IDs returns the registered identifiers in sorted order.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Construct builds the generator registered under id.
//
// An unknown id fails with KindBackendNotFound. A constructor that returns
// an error, returns nil or panics fails with KindBackendConstructionFailed.
func (c *Catalog) Construct(id string) (*generator.Generator, error) {
	const op = "ambient.Construct"

	e, ok := c.Lookup(id)
	if !ok {
		return nil, &errors.GeneratorError{
			Op:        op,
			Kind:      errors.KindBackendNotFound,
			Generator: id,
		}
	}

	var g *generator.Generator
	err := errors.Catch(op, func() error {
		var err error
		g, err = e.New()
		return err
	})
	if err == nil && g == nil {
		err = fmt.Errorf("constructor returned nil")
	}
	if err != nil {
		return nil, &errors.GeneratorError{
			Op:        op,
			Kind:      errors.KindBackendConstructionFailed,
			Generator: id,
			Err:       err,
		}
	}
	return g, nil
}
