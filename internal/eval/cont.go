// Package eval implements the CPS trampoline described in spec.md §4.D:
// an explicit continuation stack driving evaluation, instead of the
// host call stack, so that tail calls never grow the stack and the
// current continuation can be reified as a first-class value.
package eval

import "github.com/cwbudde/go-scheme/internal/values"

// op tags a continuation frame's role (spec.md §4.D.1's operator table).
type op int

const (
	opThen op = iota
	opBegin
	opDefine
	opSetq
	opApply
	opEvalArg
	opApplyFun
	opRestoreEnv
)

// Cont is one frame of the continuation stack: a tagged triple
// (op, payload, next). The stack is a plain linked list; NoCont is the
// empty-stack sentinel.
type Cont struct {
	Op      op
	Payload any
	Next    *Cont
}

// NoCont is the distinguished empty continuation stack.
var NoCont *Cont = nil

// thenPayload is THEN's payload: the unevaluated e2/e3 branches of an
// `if`, still as Scheme list cells so e3 being absent is just Nil.
type thenPayload struct {
	e2, e3 values.Value // e3 is values.Nil{} when the `if` had only two arms
}

// setqPayload is SETQ's payload: the already-resolved binding node to
// mutate once the new value arrives.
type setqPayload struct {
	binding *values.Env
}

// definePayload is DEFINE's payload: the symbol and frame to bind into
// once its value expression has been reduced.
type definePayload struct {
	sym *values.Symbol
	env *values.Env
}

// beginPayload is BEGIN's payload: the remaining body expressions
// (a Scheme list) after the one currently being reduced.
type beginPayload struct {
	rest values.Value
}

// applyPayload is APPLY's payload: the unevaluated argument expressions
// of a call form, still waiting on the operator to be reduced.
type applyPayload struct {
	argsExprs values.Value
}

// evalArgPayload drives the argument-evaluation loop. Arguments are
// evaluated strictly left-to-right: exprs holds all of a call's
// argument expressions, idx is the one currently being reduced, and
// done holds the values already reduced (those before idx), in source
// order. This frame also carries the accumulated argument values, so no
// separate PUSH_ARGS frame exists.
type evalArgPayload struct {
	fun   values.Value
	exprs []values.Value
	idx   int
	done  []values.Value
}

// applyFunPayload is APPLY_FUN's payload: the operator to dispatch once
// the full, already-evaluated argument list arrives as the incoming
// value.
type applyFunPayload struct {
	fun values.Value
}

// pushRestoreEnv pushes a RESTORE_ENV(env) frame onto k unless the top
// of k is already a RESTORE_ENV frame, in which case the environment
// further up the stack is the one that must survive — this is the
// tail-call-flattening rule of spec.md §4.D.5/§9.
func pushRestoreEnv(k *Cont, env *values.Env) *Cont {
	if k != nil && k.Op == opRestoreEnv {
		return k
	}
	return &Cont{Op: opRestoreEnv, Payload: env, Next: k}
}
