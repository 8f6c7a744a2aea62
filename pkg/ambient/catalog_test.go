package ambient

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/generator/pkg/errors"
	"github.com/go-drift/generator/pkg/generator"
)

func newEntry(id string) Entry {
	return Entry{New: func() (*generator.Generator, error) { return generator.New(id), nil }}
}

func TestCatalogRegisterValidation(t *testing.T) {
	cat := NewCatalog()
	tests := []struct {
		name    string
		id      string
		entry   Entry
		wantErr bool
	}{
		{"valid", "gtk", newEntry("gtk"), false},
		{"versioned", "wpf", Entry{New: newEntry("wpf").New, Version: "v1.2.3"}, false},
		{"empty id", "", newEntry("x"), true},
		{"no constructor", "x", Entry{}, true},
		{"bad version", "y", Entry{New: newEntry("y").New, Version: "1.2"}, true},
	}
	for _, tt := range tests {
		err := cat.Register(tt.id, tt.entry)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Register() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
	if diff := cmp.Diff([]string{"gtk", "wpf"}, cat.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}

	cat.Unregister("gtk")
	if _, ok := cat.Lookup("gtk"); ok {
		t.Error("Unregister() did not remove gtk")
	}
}

func TestCatalogConstruct(t *testing.T) {
	cat := NewCatalog()
	cat.MustRegister("ok", newEntry("ok"))
	cat.MustRegister("fails", Entry{New: func() (*generator.Generator, error) { return nil, fmt.Errorf("no toolkit") }})
	cat.MustRegister("nil", Entry{New: func() (*generator.Generator, error) { return nil, nil }})
	cat.MustRegister("panics", Entry{New: func() (*generator.Generator, error) { panic("dlopen") }})

	if g, err := cat.Construct("ok"); err != nil || g.ID() != "ok" {
		t.Errorf("Construct(ok) = %v, %v", g, err)
	}
	if _, err := cat.Construct("missing"); !stderrors.Is(err, errors.ErrBackendNotFound) {
		t.Errorf("Construct(missing) error = %v, want backend not found", err)
	}
	for _, id := range []string{"fails", "nil", "panics"} {
		if _, err := cat.Construct(id); !stderrors.Is(err, errors.ErrBackendConstructionFailed) {
			t.Errorf("Construct(%s) error = %v, want construction failed", id, err)
		}
	}
}

func TestInitializeByIdentifier(t *testing.T) {
	cat := NewCatalog()
	cat.MustRegister("gtk", newEntry("gtk"))
	cat.MustRegister("broken", Entry{New: func() (*generator.Generator, error) { return nil, fmt.Errorf("boom") }})
	amb := New(cat)
	th := amb.NewThread()

	if _, err := th.InitializeByIdentifier("nope"); !stderrors.Is(err, errors.ErrBackendNotFound) {
		t.Errorf("InitializeByIdentifier(nope) error = %v, want backend not found", err)
	}
	if _, err := th.InitializeByIdentifier("broken"); !stderrors.Is(err, errors.ErrBackendConstructionFailed) {
		t.Errorf("InitializeByIdentifier(broken) error = %v, want construction failed", err)
	}
	if amb.Default() != nil {
		t.Error("failed initialization should not set a default")
	}

	g, err := th.InitializeByIdentifier("gtk")
	if err != nil {
		t.Fatalf("InitializeByIdentifier(gtk) error = %v", err)
	}
	if amb.Default() != g || th.Current() != g {
		t.Error("InitializeByIdentifier should publish the generator")
	}
}
