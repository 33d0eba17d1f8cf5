// Command goscheme is the CLI entry point: a bare invocation enters the
// REPL, `goscheme run <file>` evaluates a script, `goscheme version`
// prints build information (SPEC_FULL.md §4.F).
package main

import (
	"os"

	"github.com/cwbudde/go-scheme/cmd/goscheme/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
