package builtins

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/go-scheme/internal/reader"
	"github.com/cwbudde/go-scheme/internal/values"
)

func display(out io.Writer) values.IntrinsicFunc {
	return func(args values.Value) (values.Value, error) {
		slice, err := values.ListToSlice(args)
		if err != nil {
			return nil, err
		}
		fmt.Fprint(out, values.Stringify(slice[0], false))
		return values.TheUnit, nil
	}
}

func write(out io.Writer) values.IntrinsicFunc {
	return func(args values.Value) (values.Value, error) {
		slice, err := values.ListToSlice(args)
		if err != nil {
			return nil, err
		}
		fmt.Fprint(out, values.Stringify(slice[0], true))
		return values.TheUnit, nil
	}
}

func newline(out io.Writer) values.IntrinsicFunc {
	return func(values.Value) (values.Value, error) {
		fmt.Fprintln(out)
		return values.TheUnit, nil
	}
}

// eofLineSource reports EOF on every request, used when read has a
// token buffer but no interactive source behind it (e.g. a file load
// with no further input to request): reading a complete expression
// already buffered still succeeds, only a mid-expression shortfall
// becomes EOF instead of a nil-pointer fault.
type eofLineSource struct{}

func (eofLineSource) NextLine(string) (string, bool) { return "", false }

// readProc implements the `read` intrinsic by pulling from the same
// incremental token buffer the REPL itself reads from (spec.md §4.E):
// a program that calls `(read)` blocks for terminal input exactly like
// the top-level prompt does.
func readProc(buf *reader.TokenBuffer, src reader.LineSource) values.IntrinsicFunc {
	if src == nil {
		src = eofLineSource{}
	}
	return func(values.Value) (values.Value, error) {
		if buf == nil {
			return values.EOFObject, nil
		}
		return buf.ReadExpression(src)
	}
}

// RebindRead repoints an already-built global environment's `read`
// intrinsic at buf/src. NewGlobalEnv is necessarily called before a
// driver.REPL exists (the REPL's own incremental token buffer isn't
// built yet when the caller assembles the env), so a caller that goes
// on to drive a REPL over env must call this once the REPL's
// TokenBuffer/LineSource are available, or `(read)` stays wired to the
// no-stream default and always reports EOF.
func RebindRead(env *values.Env, buf *reader.TokenBuffer, src reader.LineSource) {
	binding, err := env.Lookup(values.Intern("read"))
	if err != nil {
		return
	}
	in, ok := binding.Val.(*values.Intrinsic)
	if !ok {
		return
	}
	in.Fn = readProc(buf, src)
}

func errorProc(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	if len(slice) == 0 {
		return nil, fmt.Errorf("error")
	}
	var parts []string
	parts = append(parts, values.Stringify(slice[0], false))
	for _, irritant := range slice[1:] {
		parts = append(parts, values.Stringify(irritant, true))
	}
	return nil, fmt.Errorf("%s", strings.Join(parts, " "))
}

func gensymProc(values.Value) (values.Value, error) {
	return values.Gensym(), nil
}

// globalsList walks the bindings below marker (the global frame's
// top), returning them as a Scheme list of symbols (spec.md §4.E).
func globalsList(marker *values.Env) values.Value {
	var result values.Value = values.TheNil
	for node := marker.Next; node != nil; node = node.Next {
		if node.IsMarker() {
			continue
		}
		result = &values.Pair{Car: node.Sym, Cdr: result}
	}
	return result
}
