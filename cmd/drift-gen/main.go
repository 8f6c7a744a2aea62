// Command drift-gen inspects the generators available to a Drift
// application: which are registered, which one detection picks on this host
// and which handlers each one can build.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/generator/cmd/drift-gen/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
