package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-drift/generator/cmd/drift-gen/internal/config"
	"github.com/go-drift/generator/pkg/ambient"
	"github.com/go-drift/generator/pkg/errors"
	"github.com/go-drift/generator/pkg/headless"
)

// env bundles what every command needs: the resolved configuration and an
// ambient context over the built-in catalog.
type env struct {
	cfg     *config.Resolved
	logger  *slog.Logger
	catalog *ambient.Catalog
	amb     *ambient.Context
}

// newCatalog returns the generators compiled into this binary.
func newCatalog() (*ambient.Catalog, error) {
	cat := ambient.NewCatalog()
	if err := headless.Register(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func loadEnv(extra ...ambient.Option) (*env, error) {
	root, err := config.FindProjectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: cfg.Verbose})

	cat, err := newCatalog()
	if err != nil {
		return nil, err
	}

	opts := append(cfg.Options(logger), ambient.WithFallback(headless.ID))
	opts = append(opts, extra...)
	return &env{
		cfg:     cfg,
		logger:  logger,
		catalog: cat,
		amb:     ambient.New(cat, opts...),
	}, nil
}

// printApp writes the application header shared by all commands.
func printApp(e *env) {
	if e.cfg.ModulePath != "" {
		fmt.Fprintf(out, "Application: %s (%s)\n", e.cfg.AppName, e.cfg.ModulePath)
	} else {
		fmt.Fprintf(out, "Application: %s\n", e.cfg.AppName)
	}
}
