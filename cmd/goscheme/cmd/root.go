package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, set by build flags (teacher's convention).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "goscheme",
	Short: "A minimal Scheme interpreter",
	Long: `goscheme is a CPS-trampoline Scheme interpreter: proper tail
calls, first-class continuations via call/cc, and a small intrinsic
set, driven either as a REPL or against a script file.`,
	Version: Version,
	// Bare invocation: "goscheme [file]" is accepted as a shorthand for
	// "goscheme run [file]" (spec.md §6's literal invocation grammar,
	// SPEC_FULL.md §6).
	Args: cobra.MaximumNArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		return runScript(c, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI coloring of prompts and errors")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a goscheme YAML config file (default ~/.goscheme.yaml)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
