package driver

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-scheme/internal/eval"
	"github.com/cwbudde/go-scheme/internal/reader"
	"github.com/cwbudde/go-scheme/internal/schemerr"
	"github.com/cwbudde/go-scheme/internal/values"
)

// LoadFile reads path in full, then reads and evaluates its top-level
// expressions one at a time against env, interleaved exactly like
// `_examples/original_source/scm.py`'s `load` (spec.md §6's `goscheme
// run` behavior): a file whose valid leading forms are followed by a
// malformed trailing form still runs those leading forms' side effects
// before failing on the bad one. It returns the value of the last
// expression, or an error tagged schemerr.HostIO if the file cannot be
// read.
func LoadFile(path string, env *values.Env) (values.Value, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, schemerr.Newf(schemerr.HostIO, "cannot read %s: %v", path, err)
	}

	buf := reader.NewTokenBuffer()
	buf.Feed(string(content))

	var result values.Value = values.TheUnit
	for {
		exp, err := buf.ReadNext()
		if err != nil {
			if se, ok := err.(*reader.SyntaxError); ok {
				return nil, schemerr.New(schemerr.Syntax, se.Message).WithPos(se.Pos)
			}
			return nil, schemerr.New(schemerr.Syntax, err.Error())
		}
		if values.IsEOF(exp) {
			return result, nil
		}

		result, err = eval.Evaluate(exp, env)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
}
