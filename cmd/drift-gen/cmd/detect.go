package cmd

import (
	"fmt"

	"github.com/go-drift/generator/pkg/ambient"
	"github.com/go-drift/generator/pkg/generator"
)

func init() {
	RegisterCommand(&Command{
		Name:  "detect",
		Short: "Show which generator would be selected",
		Long: `Resolve the generator a Drift application would use on this host.

When drift-gen.yaml names a generator id it is constructed directly.
Otherwise automatic detection probes the candidates for the host in
order and picks the first one that constructs. The headless generator is
always the last candidate, so detection succeeds even where no native
generator is compiled in.

If drift-gen.yaml names an expected generator, the resolved generator is
validated against it and a mismatch is reported as an error.

Flags:
  --goos GOOS   Detect as if running on GOOS (e.g. darwin, windows, linux)`,
		Usage: "drift-gen detect [--goos GOOS]",
		Run:   runDetect,
	})
}

func runDetect(args []string) error {
	goos, rest, err := flagValue(args, "--goos")
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	var opts []ambient.Option
	if goos != "" {
		opts = append(opts, ambient.WithGOOS(goos))
	}
	e, err := loadEnv(opts...)
	if err != nil {
		return err
	}

	th := e.amb.NewThread()
	g, err := resolve(e, th, "")
	if err != nil {
		return err
	}

	printApp(e)
	fmt.Fprintf(out, "Generator:   %s\n", g.ID())
	if v := g.Version(); v != "" {
		fmt.Fprintf(out, "Version:     %s\n", v)
	}
	fmt.Fprintf(out, "Platform:    %s\n", g.Platform())
	fmt.Fprintf(out, "Handlers:    %d\n", len(g.Handlers()))
	return nil
}

// resolve picks the generator for th: id if given, else the configured id,
// else detection. The result is checked against the configured expected
// generator.
func resolve(e *env, th *ambient.Thread, id string) (*generator.Generator, error) {
	if id == "" {
		id = e.cfg.GeneratorID
	}

	var (
		g   *generator.Generator
		err error
	)
	if id != "" {
		g, err = th.InitializeByIdentifier(id)
	} else {
		g, err = th.Detect()
	}
	if err != nil {
		return nil, err
	}

	if err := expect(e, g); err != nil {
		return nil, err
	}
	return g, nil
}

// expect registers the configured expected generator and validates g
// against it.
func expect(e *env, g *generator.Generator) error {
	want := e.cfg.Expected
	if want == "" || !ambient.DebugChecks {
		return nil
	}
	if g.ID() == want {
		e.amb.SetExpected(g)
		return e.amb.Validate(g)
	}
	other, err := e.catalog.Construct(want)
	if err != nil {
		return err
	}
	e.amb.SetExpected(other)
	return e.amb.Validate(g)
}
