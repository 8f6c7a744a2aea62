package cmd

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/generator/pkg/ambient"
	"github.com/go-drift/generator/pkg/generator"
	"github.com/go-drift/generator/pkg/handler"
)

func init() {
	RegisterCommand(&Command{
		Name:  "probe",
		Short: "Build every handler of a generator",
		Long: `Construct a generator and create one instance of every handler it
registers, reporting which handlers build and which fail.

Handlers are created concurrently, each on its own goroutine with the
generator's thread resources held, the way a UI application would create
them from worker goroutines.

Arguments:
  id    Generator to probe (default: configured id, else detection)`,
		Usage: "drift-gen probe [id]",
		Run:   runProbe,
	})
}

type probeResult struct {
	typ handler.Type
	err error
}

func runProbe(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("probe takes at most one generator id")
	}
	id := ""
	if len(args) == 1 {
		id = args[0]
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}

	th := e.amb.NewThread()
	g, err := resolve(e, th, id)
	if err != nil {
		return err
	}

	results, created := probeHandlers(context.Background(), th, g)

	printApp(e)
	fmt.Fprintf(out, "Generator %s (%s)\n", g.ID(), g.Platform())
	failed := 0
	for _, r := range results {
		status := "ok"
		if r.err != nil {
			status = "FAILED: " + r.err.Error()
			failed++
		}
		fmt.Fprintf(out, "  %-50s %s\n", r.typ, status)
	}
	fmt.Fprintf(out, "\n%d handlers, %d created, %d failed\n", len(results), created, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d handlers failed", failed, len(results))
	}
	return nil
}

// probeHandlers creates one instance of each handler g registers, using a
// goroutine per handler. It returns per-handler results sorted by type and
// the number of creation events observed.
func probeHandlers(ctx context.Context, th *ambient.Thread, g *generator.Generator) ([]probeResult, int) {
	var (
		mu      sync.Mutex
		results []probeResult
		created int
	)
	unsubscribe := g.OnCreated(func(generator.CreatedEvent) {
		mu.Lock()
		created++
		mu.Unlock()
	})
	defer unsubscribe()

	guard := th.ContextFor(g)
	defer guard.Release()

	var eg errgroup.Group
	for _, t := range g.Handlers() {
		th.Go(&eg, func(child *ambient.Thread) error {
			cur, err := ambient.Current(ambient.WithThread(ctx, child))
			if err == nil {
				_, err = cur.Create(t)
			}
			mu.Lock()
			results = append(results, probeResult{typ: t, err: err})
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].typ < results[j].typ })
	return results, created
}
