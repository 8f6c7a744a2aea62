package cmd

import (
	"fmt"
	"slices"
)

func init() {
	RegisterCommand(&Command{
		Name:  "list",
		Short: "List registered generators",
		Long: `List the generators compiled into drift-gen.

For each generator the identifier, version, platform flags and a short
description are shown. Generators that automatic detection would probe
on this host are marked with "*", in probe order.`,
		Usage: "drift-gen list",
		Run:   runList,
	})
}

func runList(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("list takes no arguments")
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}

	printApp(e)
	candidates := e.amb.Candidates()
	ids := e.catalog.IDs()
	if len(ids) == 0 {
		fmt.Fprintln(out, "No generators registered.")
		return nil
	}

	fmt.Fprintln(out, "Generators:")
	for _, id := range ids {
		entry, _ := e.catalog.Lookup(id)
		mark := " "
		if slices.Contains(candidates, id) {
			mark = "*"
		}
		version := entry.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(out, " %s %-10s %-8s %-22s %s\n", mark, id, version, entry.Platform, entry.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Detection order: %v\n", candidates)
	return nil
}
