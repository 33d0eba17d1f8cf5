package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-scheme/internal/builtins"
	"github.com/cwbudde/go-scheme/internal/eval"
	"github.com/cwbudde/go-scheme/internal/reader"
	"github.com/cwbudde/go-scheme/internal/values"
)

// TestScenarioFixtures runs every testdata/fixtures/*.scm file against a
// fresh global environment, evaluating each top-level form in sequence
// and snapshotting the stringified result of each (spec.md §8's
// concrete scenarios S1-S6, one form per REPL line).
func TestScenarioFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/fixtures/*.scm")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".scm")
		t.Run(name, func(t *testing.T) {
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			var out strings.Builder
			env := builtins.NewGlobalEnv(&out, nil, nil)

			buf := reader.NewTokenBuffer()
			buf.Feed(string(content))
			exprs, err := buf.ReadAll()
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}

			var results []string
			for _, exp := range exprs {
				value, err := eval.Evaluate(exp, env)
				if err != nil {
					results = append(results, "error: "+err.Error())
					continue
				}
				if _, isUnit := value.(values.Unit); isUnit {
					continue
				}
				results = append(results, values.Stringify(value, true))
			}

			snaps.MatchSnapshot(t, strings.Join(results, "\n"))
		})
	}
}
