package eval_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-scheme/internal/builtins"
	"github.com/cwbudde/go-scheme/internal/eval"
	"github.com/cwbudde/go-scheme/internal/reader"
	"github.com/cwbudde/go-scheme/internal/values"
)

func evalSrc(t *testing.T, src string) values.Value {
	t.Helper()
	env := builtins.NewGlobalEnv(&strings.Builder{}, nil, nil)
	buf := reader.NewTokenBuffer()
	buf.Feed(src)
	exprs, err := buf.ReadAll()
	require.NoError(t, err)

	var result values.Value = values.TheUnit
	for _, e := range exprs {
		result, err = eval.Evaluate(e, env)
		require.NoError(t, err)
	}
	return result
}

func TestSelfEvaluating(t *testing.T) {
	require.Equal(t, values.Int{Val: 5}, evalSrc(t, "5"))
	require.Equal(t, values.True, evalSrc(t, "#t"))
}

func TestQuote(t *testing.T) {
	got := evalSrc(t, "(quote (a b c))")
	want := values.NewList(values.Intern("a"), values.Intern("b"), values.Intern("c"))
	require.Equal(t, want, got)
}

func TestIfBothBranches(t *testing.T) {
	require.Equal(t, values.Int{Val: 1}, evalSrc(t, "(if #t 1 2)"))
	require.Equal(t, values.Int{Val: 2}, evalSrc(t, "(if #f 1 2)"))
}

func TestIfMissingElseYieldsUnit(t *testing.T) {
	got := evalSrc(t, "(if #f 1)")
	_, isUnit := got.(values.Unit)
	require.True(t, isUnit)
}

func TestDefineAndLookup(t *testing.T) {
	got := evalSrc(t, "(define x 10) x")
	require.Equal(t, values.Int{Val: 10}, got)
}

func TestSetBang(t *testing.T) {
	got := evalSrc(t, "(define x 1) (set! x 2) x")
	require.Equal(t, values.Int{Val: 2}, got)
}

func TestLambdaAndApplication(t *testing.T) {
	got := evalSrc(t, "((lambda (a b) (+ a b)) 3 4)")
	require.Equal(t, values.Int{Val: 7}, got)
}

func TestClosureCapturesDefiningEnv(t *testing.T) {
	got := evalSrc(t, `
		(define (make-adder n) (lambda (x) (+ x n)))
		(define add5 (make-adder 5))
		(add5 10)
	`)
	require.Equal(t, values.Int{Val: 15}, got)
}

func TestBeginSequencesAndReturnsLast(t *testing.T) {
	got := evalSrc(t, "(begin 1 2 3)")
	require.Equal(t, values.Int{Val: 3}, got)
}

func TestArgumentEvaluationOrderIsLeftToRightResult(t *testing.T) {
	// Arguments are evaluated left-to-right, and the resulting argument
	// list is in the same source order.
	got := evalSrc(t, `(list 1 2 3)`)
	want := values.NewList(values.Int{Val: 1}, values.Int{Val: 2}, values.Int{Val: 3})
	require.Equal(t, want, got)
}

func TestTailCallDoesNotGrowHostStack(t *testing.T) {
	got := evalSrc(t, `
		(define (count n acc)
		  (if (= n 0) acc (count (- n 1) (+ acc 1))))
		(count 200000 0)
	`)
	require.Equal(t, values.Int{Val: 200000}, got)
}

func TestCallCCEscapes(t *testing.T) {
	got := evalSrc(t, `
		(+ 1 (call/cc (lambda (k) (+ 2 (k 10)))))
	`)
	require.Equal(t, values.Int{Val: 11}, got)
}

func TestCallCCReentry(t *testing.T) {
	got := evalSrc(t, `
		(define saved #f)
		(define n 0)
		(+ 1 (call/cc (lambda (k) (set! saved k) 0)))
		(set! n (+ n 1))
		(if (< n 3) (saved 0) n)
	`)
	// Each top-level form is evaluated separately, so re-entering saved
	// resumes only the rest of its own form, (+ 1 []), yielding 1 + 0.
	require.Equal(t, values.Int{Val: 1}, got)
}

func TestApplySentinel(t *testing.T) {
	got := evalSrc(t, `(apply + '(1 2 3 4 5))`)
	require.Equal(t, values.Int{Val: 15}, got)
}

func TestApplySentinelWithLeadingArgs(t *testing.T) {
	got := evalSrc(t, `(apply list 1 2 (list 3 4))`)
	want := values.NewList(values.Int{Val: 1}, values.Int{Val: 2}, values.Int{Val: 3}, values.Int{Val: 4})
	require.Equal(t, want, got)
}

func TestUnboundVariableError(t *testing.T) {
	env := builtins.NewGlobalEnv(&strings.Builder{}, nil, nil)
	_, err := eval.Evaluate(values.Intern("never-defined-xyz"), env)
	require.Error(t, err)
}
