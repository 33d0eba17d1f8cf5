package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cwbudde/go-scheme/internal/builtins"
	"github.com/cwbudde/go-scheme/internal/config"
	"github.com/cwbudde/go-scheme/internal/driver"
	"github.com/cwbudde/go-scheme/internal/schemerr"
	"github.com/cwbudde/go-scheme/internal/values"
)

var (
	trace      bool
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file] [-]",
	Short: "Evaluate a Scheme file",
	Long: `Load and evaluate a Scheme file top-to-bottom. A trailing "-"
argument continues into the REPL after the file finishes (spec.md §6).`,
	Args: cobra.MaximumNArgs(2),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&trace, "trace", false, "print each top-level form read at the REPL before evaluating it")
}

func colorEnabled() bool {
	return !noColor && isatty.IsTerminal(os.Stdout.Fd())
}

func kindColor(kind schemerr.Kind, s string) string {
	switch kind {
	case schemerr.Syntax:
		return color.YellowString("%s", s)
	case schemerr.Unbound:
		return color.MagentaString("%s", s)
	default:
		return color.RedString("%s", s)
	}
}

// runScript implements both "goscheme run [file] [-]" and the bare
// "goscheme [file] [-]" shorthand (SPEC_FULL.md §6).
func runScript(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError("loading config: %v", err)
	}

	env := builtins.NewGlobalEnv(os.Stdout, nil, nil)
	for _, startup := range cfg.StartupFiles {
		if _, err := driver.LoadFile(startup, env); err != nil {
			return fmt.Errorf("startup file %s: %w", startup, err)
		}
	}

	file, continueREPL := parseRunArgs(args)

	if file != "" {
		if _, err := driver.LoadFile(file, env); err != nil {
			printRunError(err)
			if !continueREPL {
				return fmt.Errorf("evaluation failed")
			}
		}
	}

	if file == "" || continueREPL {
		runREPL(env, cfg)
	}
	return nil
}

// parseRunArgs splits the positional arguments of "run" into the
// script path (possibly empty) and whether a trailing "-" requests
// dropping into the REPL afterward.
func parseRunArgs(args []string) (file string, continueREPL bool) {
	for _, a := range args {
		if a == "-" {
			continueREPL = true
			continue
		}
		file = a
	}
	return file, continueREPL
}

func runREPL(env *values.Env, cfg config.Config) {
	r := driver.New(os.Stdin, os.Stdout, os.Stderr, env, promptColorizer())
	// The env was built (in runScript, to load startup files/the script
	// argument) before this REPL and its token buffer existed, so `read`
	// still has no stream to pull from; rebind it onto the REPL's own
	// incremental buffer now (spec.md §4.E: `read` shares the REPL's
	// token stream).
	builtins.RebindRead(env, r.TokenBuffer(), r.LineSource())
	r.Trace = trace
	r.SetPrompts(cfg.PrimaryPrompt, cfg.ContinuationPrompt)
	if colorEnabled() {
		r.Color = kindColor
	}
	if cfg.Banner != "" {
		fmt.Fprintln(os.Stdout, cfg.Banner)
	}
	r.Run()
}

func promptColorizer() func(string) string {
	if !colorEnabled() {
		return nil
	}
	return func(s string) string { return color.CyanString("%s", s) }
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
		if path == "" {
			return config.Defaults(), nil
		}
	}
	return config.Load(path)
}

func printRunError(err error) {
	var se *schemerr.Error
	if errors.As(err, &se) {
		fmt.Fprintln(os.Stderr, se.Format("", kindColorIfEnabled))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func kindColorIfEnabled(kind schemerr.Kind, s string) string {
	if !colorEnabled() {
		return s
	}
	return kindColor(kind, s)
}
