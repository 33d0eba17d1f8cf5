// Package driver implements the REPL and file-loading surface of
// SPEC_FULL.md §4.F: the read-eval-print loop grounded on spec.md §6's
// literal prompt/printing contract, plus the file loader shared by
// `goscheme run` and the config-driven startup file list.
package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cwbudde/go-scheme/internal/eval"
	"github.com/cwbudde/go-scheme/internal/reader"
	"github.com/cwbudde/go-scheme/internal/schemerr"
	"github.com/cwbudde/go-scheme/internal/values"
)

// scannerSource adapts a bufio.Scanner over an io.Reader to
// reader.LineSource, printing (optionally colorized) prompt on out
// before each read (spec.md §4.C's incremental-input protocol).
type scannerSource struct {
	scanner  *bufio.Scanner
	out      io.Writer
	colorize func(string) string
	lines    []string // every line read, for source-line+caret error rendering
}

func (s *scannerSource) NextLine(prompt string) (string, bool) {
	if s.colorize != nil {
		prompt = s.colorize(prompt)
	}
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		return "", false
	}
	line := s.scanner.Text()
	s.lines = append(s.lines, line)
	return line, true
}

// source joins every line read so far, matching the line numbering
// TokenBuffer assigns positions against (it counts lines from 1 across
// the whole session, not per expression).
func (s *scannerSource) source() string {
	return strings.Join(s.lines, "\n")
}

// REPL drives spec.md §6's read-eval-print loop: read one expression
// (prompting for continuation lines as needed), evaluate it against
// Env, print the result with stringify(value, quote=true) except for
// Unit, repeat until EOF.
type REPL struct {
	Env   *values.Env
	Out   io.Writer
	Errs  io.Writer
	Trace bool
	Color func(kind schemerr.Kind, s string) string

	buf *reader.TokenBuffer
	src *scannerSource
}

// New builds a REPL reading from in and printing to out/errs, sharing
// its token buffer with the `read` intrinsic (spec.md §4.E). promptColor,
// when non-nil, colorizes the primary/continuation prompt text.
func New(in io.Reader, out, errs io.Writer, env *values.Env, promptColor func(string) string) *REPL {
	return &REPL{
		Env:  env,
		Out:  out,
		Errs: errs,
		buf:  reader.NewTokenBuffer(),
		src:  &scannerSource{scanner: bufio.NewScanner(in), out: out, colorize: promptColor},
	}
}

// TokenBuffer exposes the REPL's shared token buffer so the `read`
// intrinsic can be bound against the same incremental stream the REPL
// itself consumes (spec.md §4.E).
func (r *REPL) TokenBuffer() *reader.TokenBuffer { return r.buf }

// LineSource exposes the REPL's input source for the same reason.
func (r *REPL) LineSource() reader.LineSource { return r.src }

// SetPrompts overrides the default "> "/"| " prompts (SPEC_FULL.md
// §4.H's config-driven prompt strings).
func (r *REPL) SetPrompts(primary, continuation string) {
	r.buf.PrimaryPrompt = primary
	r.buf.ContinuationPrompt = continuation
}

// Run executes the loop until EOF, printing "Goodbye" and returning
// (spec.md §6). SIGINT during a top-level evaluation aborts that
// evaluation and returns to the prompt rather than killing the process
// (SPEC_FULL.md §4.F / spec.md §5's cancellation contract).
func (r *REPL) Run() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	for {
		exp, err := r.buf.ReadExpression(r.src)
		if err != nil {
			r.printError(err)
			continue
		}
		if values.IsEOF(exp) {
			fmt.Fprintln(r.Out, "Goodbye")
			return
		}

		if r.Trace {
			fmt.Fprintf(r.Errs, "; evaluating %s\n", values.Stringify(exp, true))
		}

		value, err := r.evalInterruptible(exp, sigCh)
		if err != nil {
			r.printError(err)
			continue
		}
		if _, isUnit := value.(values.Unit); !isUnit {
			fmt.Fprintln(r.Out, values.Stringify(value, true))
		}
	}
}

// evalInterruptible runs EvaluateContext on a goroutine and races it
// against a SIGINT delivery. On SIGINT it cancels the evaluation's
// context and waits for the goroutine to actually observe cancellation
// and return before handing control back to the prompt: the trampoline
// checks ctx once per reduce-plus-continuation cycle (eval.go's
// `trampoline:` loop), so the wait is bounded by a single step rather
// than the whole computation, and the next top-level form never races
// an orphaned evaluation over r.Env (spec.md §5's single-evaluator
// contract; SPEC_FULL.md §4.F requires SIGINT to abort, not detach,
// the in-flight evaluation).
func (r *REPL) evalInterruptible(exp values.Value, sigCh chan os.Signal) (values.Value, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		v   values.Value
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := eval.EvaluateContext(ctx, exp, r.Env)
		done <- result{v, err}
	}()

	select {
	case res := <-done:
		return res.v, res.err
	case <-sigCh:
		cancel()
		<-done // block until the trampoline has actually stopped touching r.Env
		fmt.Fprintln(r.Errs, "Interrupted")
		return values.TheUnit, nil
	}
}

func (r *REPL) printError(err error) {
	if se, ok := err.(*reader.SyntaxError); ok {
		err = schemerr.New(schemerr.Syntax, se.Message).WithPos(se.Pos)
	}
	if se, ok := err.(*schemerr.Error); ok {
		fmt.Fprintln(r.Errs, se.Format(r.src.source(), r.Color))
		return
	}
	fmt.Fprintln(r.Errs, err.Error())
}
