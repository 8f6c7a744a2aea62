package ambient

import (
	"fmt"
	"slices"

	"golang.org/x/mod/semver"

	"github.com/go-drift/generator/pkg/errors"
	"github.com/go-drift/generator/pkg/generator"
)

// defaultOrder returns the detection preference per host family.
func defaultOrder() map[string][]string {
	return map[string][]string{
		"darwin":  {IDMac64, IDXamMac},
		"windows": {IDWpf, IDWinForms},
		"default": {IDGtk},
	}
}

// Candidates returns the identifiers Detect probes on this host, in order.
// Fallback identifiers come last.
func (c *Context) Candidates() []string {
	ids, ok := c.order[c.goos]
	if !ok {
		ids = c.order["default"]
	}
	ids = append([]string(nil), ids...)
	for _, id := range c.fallback {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Detect returns the thread's current generator, detecting one first if
// none is initialized.
//
// Detection walks Candidates and constructs each one in turn. Candidates
// missing from the catalog, older than the configured minimum version or
// failing construction are skipped; construction failures are reported to
// the error handler. The first success becomes the process default. When
// every candidate is exhausted Detect fails with KindPlatformNotDetected.
// If another thread publishes a default while Detect is constructing, that
// default wins and is returned.
//
// Concurrent first calls probe once; every later call returns the same
// generator without probing.
func (t *Thread) Detect() (*generator.Generator, error) {
	if g := t.Current(); g != nil {
		return g, nil
	}

	c := t.ctx
	c.detectMu.Lock()
	defer c.detectMu.Unlock()

	if g := c.Default(); g != nil {
		return g, nil
	}

	candidates := c.Candidates()
	for _, id := range candidates {
		g, ok := c.probe(id)
		if !ok {
			continue
		}
		t.InitializeGlobal(g)
		// InitializeGlobal does not take detectMu, so a default may have
		// been published while g was being constructed.
		if def := c.Default(); def != g {
			t.current = def
			return def, nil
		}
		return g, nil
	}

	return nil, &errors.GeneratorError{
		Op:         "ambient.Detect",
		Kind:       errors.KindPlatformNotDetected,
		Err:        fmt.Errorf("no generator available for %s (tried %v)", c.goos, candidates),
		StackTrace: errors.CaptureStack(),
	}
}

// probe constructs one detection candidate, treating every failure as
// absence.
func (c *Context) probe(id string) (*generator.Generator, bool) {
	e, ok := c.catalog.Lookup(id)
	if !ok {
		c.logger.Debug("detection candidate not available", "generator", id)
		return nil, false
	}
	if c.minVersion != "" && e.Version != "" && semver.Compare(e.Version, c.minVersion) < 0 {
		c.logger.Debug("detection candidate too old", "generator", id, "version", e.Version, "min", c.minVersion)
		return nil, false
	}

	g, err := c.catalog.Construct(id)
	if err != nil {
		ge, ok := err.(*errors.GeneratorError)
		if !ok {
			ge = &errors.GeneratorError{Op: "ambient.Detect", Kind: errors.KindBackendConstructionFailed, Generator: id, Err: err}
		}
		errors.Report(ge)
		return nil, false
	}
	c.logger.Debug("detection candidate constructed", "generator", id)
	return g, true
}
