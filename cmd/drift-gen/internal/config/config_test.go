package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/generator/pkg/ambient"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/acme/notes/v2\n\ngo 1.24\n")

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.ModulePath != "example.com/acme/notes/v2" {
		t.Errorf("ModulePath = %q", cfg.ModulePath)
	}
	if cfg.AppName != "notes" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "notes")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.GeneratorID != "" || cfg.MinVersion != "" || len(cfg.DetectOrder) != 0 {
		t.Errorf("unexpected non-default values: %+v", cfg)
	}
}

func TestResolveWithoutGoMod(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.ModulePath != "" {
		t.Errorf("ModulePath = %q, want empty", cfg.ModulePath)
	}
	if cfg.AppName != filepath.Base(dir) {
		t.Errorf("AppName = %q, want %q", cfg.AppName, filepath.Base(dir))
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
generator:
  id: " gtk "
  expected: gtk
  min_version: v1.2.0
detect:
  linux: [qt, gtk]
  darwin: [mac64]
log:
  level: debug
  verbose: true
`)

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.GeneratorID != "gtk" || cfg.Expected != "gtk" || cfg.MinVersion != "v1.2.0" {
		t.Errorf("generator settings = %+v", cfg)
	}
	want := map[string][]string{"linux": {"qt", "gtk"}, "darwin": {"mac64"}}
	if diff := cmp.Diff(want, cfg.DetectOrder); diff != "" {
		t.Errorf("DetectOrder mismatch (-want +got):\n%s", diff)
	}
	if cfg.LogLevel != slog.LevelDebug || !cfg.Verbose {
		t.Errorf("log settings = %v, %v", cfg.LogLevel, cfg.Verbose)
	}

	amb := ambient.New(nil, append(cfg.Options(slog.Default()), ambient.WithGOOS("linux"))...)
	if diff := cmp.Diff([]string{"qt", "gtk"}, amb.Candidates()); diff != "" {
		t.Errorf("Candidates() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "generator: [\n"},
		{"bad version", "generator:\n  min_version: 1.2\n"},
		{"empty id", "detect:\n  linux: [\"\"]\n"},
		{"bad level", "log:\n  level: loud\n"},
	}
	for _, tt := range tests {
		dir := t.TempDir()
		writeFile(t, dir, FileName, tt.yaml)
		if _, err := Resolve(dir); err == nil {
			t.Errorf("%s: Resolve() expected error", tt.name)
		}
	}
}
