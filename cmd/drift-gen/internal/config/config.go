// Package config loads the optional drift-gen.yaml file and resolves it
// into ambient options.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/generator/pkg/ambient"
)

// FileName is the configuration file looked up in the project root.
const FileName = "drift-gen.yaml"

// Config represents the optional drift-gen.yaml configuration.
type Config struct {
	Generator GeneratorConfig     `yaml:"generator"`
	Detect    map[string][]string `yaml:"detect,omitempty"`
	Log       LogConfig           `yaml:"log"`
}

// GeneratorConfig selects and constrains generators.
type GeneratorConfig struct {
	ID         string `yaml:"id,omitempty"`
	Expected   string `yaml:"expected,omitempty"`
	MinVersion string `yaml:"min_version,omitempty"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	AppName     string
	GeneratorID string
	Expected    string
	MinVersion  string
	DetectOrder map[string][]string
	LogLevel    slog.Level
	Verbose     bool
}

// LoadOptional reads drift-gen.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads drift-gen.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	minVersion := strings.TrimSpace(cfg.Generator.MinVersion)
	if minVersion != "" && !semver.IsValid(minVersion) {
		return nil, fmt.Errorf("generator.min_version %q is not a valid semantic version", minVersion)
	}

	order := make(map[string][]string, len(cfg.Detect))
	for goos, ids := range cfg.Detect {
		var cleaned []string
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" {
				return nil, fmt.Errorf("detect.%s contains an empty generator id", goos)
			}
			cleaned = append(cleaned, id)
		}
		order[goos] = cleaned
	}

	level := slog.LevelInfo
	if s := strings.TrimSpace(cfg.Log.Level); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		AppName:     appName(modulePath, dir),
		GeneratorID: strings.TrimSpace(cfg.Generator.ID),
		Expected:    strings.TrimSpace(cfg.Generator.Expected),
		MinVersion:  minVersion,
		DetectOrder: order,
		LogLevel:    level,
		Verbose:     cfg.Log.Verbose,
	}, nil
}

// Options converts the resolved configuration into ambient options.
func (r *Resolved) Options(logger *slog.Logger) []ambient.Option {
	opts := []ambient.Option{ambient.WithLogger(logger)}
	if r.MinVersion != "" {
		opts = append(opts, ambient.WithMinVersion(r.MinVersion))
	}
	goosList := make([]string, 0, len(r.DetectOrder))
	for goos := range r.DetectOrder {
		goosList = append(goosList, goos)
	}
	sort.Strings(goosList)
	for _, goos := range goosList {
		opts = append(opts, ambient.WithDetectOrder(goos, r.DetectOrder[goos]...))
	}
	return opts
}

// FindProjectRoot walks up from the current directory to find go.mod or
// drift-gen.yaml. It falls back to the current directory.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, name := range []string{"go.mod", FileName} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

// modulePath returns the module path from dir/go.mod, or "" when there is
// no go.mod.
func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func appName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "app"
	}
	return base
}
