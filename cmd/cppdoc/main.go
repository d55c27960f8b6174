// Command cppdoc is the CLI entry point: it loads a project/component
// declaration (spec §6 initProject), runs processComponent over each
// named component, and exposes the resulting entity model via the
// parse/export/check subcommands.
package main

import (
	"fmt"
	"os"
)

func main() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}

	// exitCode carries spec §6's "non-zero = number of files with at
	// least one ERROR diagnostic" status; its message has already been
	// surfaced via the per-file diagnostic summary, so don't repeat it.
	if code, ok := err.(exitCode); ok {
		os.Exit(int(code))
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
