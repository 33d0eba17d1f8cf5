// Package builtins constructs the global environment: the intrinsic
// procedures of spec.md §4.E (required set) and SPEC_FULL.md's
// supplemented set, plus the call/cc and apply sentinel bindings that
// the evaluator's dispatch logic recognizes by identity rather than by
// calling through Intrinsic.Fn.
package builtins

import (
	"io"

	"github.com/cwbudde/go-scheme/internal/reader"
	"github.com/cwbudde/go-scheme/internal/values"
)

// NewGlobalEnv builds the global frame: a single frame-top marker with
// every intrinsic and sentinel binding hung directly off it, matching
// the single flat GLOBAL_ENV of the source this evaluator is grounded
// on. out receives `display`/`newline`/`write` output; buf/src supply
// `read` with the same incremental token stream the REPL itself reads
// from. buf nil makes `read` always report EOF, e.g. for a one-shot
// file load with no further input to request; src nil lets `read` take
// expressions already in buf but report EOF where more input would be
// needed.
func NewGlobalEnv(out io.Writer, buf *reader.TokenBuffer, src reader.LineSource) *values.Env {
	marker := values.NewFrame(nil)

	def := func(name string, arity int, fn values.IntrinsicFunc) {
		sym := values.Intern(name)
		marker.Define(sym, &values.Intrinsic{Name: name, Arity: arity, Fn: fn})
	}

	// Required set (spec.md §4.E).
	def("car", 1, car)
	def("cdr", 1, cdr)
	def("cons", 2, cons)
	def("eq?", 2, eqProc)
	def("eqv?", 2, eqvProc)
	def("pair?", 1, pairPredicate)
	def("null?", 1, nullPredicate)
	def("not", 1, notProc)
	def("symbol?", 1, symbolPredicate)
	def("eof-object?", 1, eofPredicate)
	def("list", -1, listProc)
	def("display", 1, display(out))
	def("newline", 0, newline(out))
	def("read", 0, readProc(buf, src))
	def("globals", 0, func(values.Value) (values.Value, error) {
		return globalsList(marker), nil
	})

	// + and * are variadic (identity 0/1) rather than the strictly
	// binary form the source's GLOBAL_ENV hard-codes: scenario S5
	// (spec.md §8) requires `(apply + '(1 2 3 4 5))` to yield 15, which
	// a binary-only `+` can never satisfy since apply still routes
	// through the target intrinsic's own arity check.
	def("+", -1, variadicArith("+", 0,
		func(acc, x float64) float64 { return acc + x }, nil))
	def("*", -1, variadicArith("*", 1,
		func(acc, x float64) float64 { return acc * x }, nil))
	def("<", 2, binaryCompare(func(a, b float64) bool { return a < b }))
	def("=", 2, binaryCompare(func(a, b float64) bool { return a == b }))

	// Supplemented set (SPEC_FULL.md §4.E): variadic -, / and the rest
	// of the comparison/predicate families, list helpers, write/error/
	// gensym.
	def("-", -1, variadicArith("-", 0,
		func(acc, x float64) float64 { return acc - x },
		func(x float64) float64 { return -x }))
	def("/", -1, variadicArith("/", 1,
		func(acc, x float64) float64 { return acc / x },
		func(x float64) float64 { return 1 / x }))
	def(">", -1, variadicCompare(func(a, b float64) bool { return a > b }))
	def("<=", -1, variadicCompare(func(a, b float64) bool { return a <= b }))
	def(">=", -1, variadicCompare(func(a, b float64) bool { return a >= b }))

	def("boolean?", 1, booleanPredicate)
	def("number?", 1, numberPredicate)
	def("string?", 1, stringPredicate)
	def("procedure?", 1, procedurePredicate)

	def("cadr", 1, cxr("ad"))
	def("cddr", 1, cxr("dd"))
	def("caar", 1, cxr("aa"))
	def("cdar", 1, cxr("da"))
	def("caddr", 1, cxr("add"))
	def("cdddr", 1, cxr("ddd"))
	def("cadar", 1, cxr("ada"))
	def("caadr", 1, cxr("aad"))

	def("list?", 1, listPredicate)
	def("length", 1, length)
	def("append", -1, appendProc)
	def("reverse", 1, reverse)
	def("member", 2, member)

	def("write", 1, write(out))
	def("error", -1, errorProc)
	def("gensym", 0, gensymProc)

	// call/cc and apply are bound to themselves: the evaluator's
	// dispatch logic recognizes these two symbols by identity and
	// never calls through an Intrinsic for them (spec.md §4.D.4).
	marker.Define(values.SymCallCC, values.SymCallCC)
	marker.Define(values.SymApply, values.SymApply)

	values.GlobalEnv = marker
	return marker
}
