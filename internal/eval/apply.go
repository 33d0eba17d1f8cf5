package eval

import (
	"fmt"

	"github.com/cwbudde/go-scheme/internal/values"
)

// dispatchResult tells Evaluate's continuation phase whether the
// dispatched call produced an immediate value (intrinsics, and
// continuation/call-cc/apply forwarding once their target turns out to
// be one) or a (exp, env) pair that must go back through the reduction
// phase (closure activation is the only case: a Scheme-level body is
// itself further-reducible code, not a value).
type dispatchResult struct {
	isExp bool
	exp   values.Value
	env   *values.Env
	value values.Value
}

// dispatch is the function-call half of application: fun has already
// been reduced to a value and args to a fully-evaluated Scheme list.
// It returns the continuation stack to resume with — unchanged for an
// intrinsic result, extended with RESTORE_ENV/BEGIN frames for a
// closure activation (the tail-call elision of spec.md §4.D.5), or (for
// invoking a reified continuation) replaced outright by the captured
// stack, discarding k.
func dispatch(fun values.Value, args values.Value, k *Cont, env *values.Env) (dispatchResult, *Cont, error) {
	switch f := fun.(type) {
	case *values.Symbol:
		switch f {
		case values.SymCallCC:
			return dispatchCallCC(args, k, env)
		case values.SymApply:
			return dispatchApply(args, k, env)
		default:
			return dispatchResult{}, k, fmt.Errorf("not applicable: %s", values.Stringify(f, true))
		}

	case *values.Closure:
		return dispatchClosure(f, args, k, env)

	case *values.Intrinsic:
		return dispatchIntrinsic(f, args, k)

	case *values.Continuation:
		return dispatchContinuation(f, args)

	default:
		return dispatchResult{}, k, fmt.Errorf("not applicable: %s", values.Stringify(fun, true))
	}
}

func dispatchClosure(cl *values.Closure, args values.Value, k *Cont, callerEnv *values.Env) (dispatchResult, *Cont, error) {
	bindings, err := values.Prepend(cl.Params, args, cl.Env)
	if err != nil {
		return dispatchResult{}, k, err
	}
	frame := values.NewFrame(bindings)

	body, ok := cl.Body.(*values.Pair)
	if !ok {
		// A closure with an empty body is degenerate but not an error:
		// it evaluates to Unit, same as (begin).
		return dispatchResult{isExp: false, value: values.TheUnit}, k, nil
	}

	k2 := pushRestoreEnv(k, callerEnv)
	if _, ok := body.Cdr.(*values.Pair); ok {
		k2 = &Cont{Op: opBegin, Payload: beginPayload{rest: body.Cdr}, Next: k2}
	}
	return dispatchResult{isExp: true, exp: body.Car, env: frame}, k2, nil
}

func dispatchIntrinsic(in *values.Intrinsic, args values.Value, k *Cont) (dispatchResult, *Cont, error) {
	if in.Arity >= 0 {
		n, err := values.ListLen(args)
		if err != nil {
			return dispatchResult{}, k, err
		}
		if n != in.Arity {
			return dispatchResult{}, k, fmt.Errorf("%s: expected %d argument(s), got %d", in.Name, in.Arity, n)
		}
	}
	result, err := in.Fn(args)
	if err != nil {
		return dispatchResult{}, k, fmt.Errorf("%s: %w", in.Name, err)
	}
	return dispatchResult{isExp: false, value: result}, k, nil
}

func dispatchContinuation(cont *values.Continuation, args values.Value) (dispatchResult, *Cont, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return dispatchResult{}, nil, err
	}
	if len(slice) != 1 {
		return dispatchResult{}, nil, fmt.Errorf("continuation: expected 1 argument, got %d", len(slice))
	}
	captured, _ := cont.K.(*Cont)
	// Invoking a continuation discards the current stack outright and
	// resumes the one captured at call/cc time — this is what makes the
	// jump non-local.
	return dispatchResult{isExp: false, value: slice[0]}, captured, nil
}

func dispatchCallCC(args values.Value, k *Cont, env *values.Env) (dispatchResult, *Cont, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return dispatchResult{}, k, err
	}
	if len(slice) != 1 {
		return dispatchResult{}, k, fmt.Errorf("call/cc: expected 1 argument, got %d", len(slice))
	}
	proc := slice[0]
	k2 := pushRestoreEnv(k, env)
	reified := &values.Continuation{K: k2}
	return dispatch(proc, values.NewList(reified), k2, env)
}

func dispatchApply(args values.Value, k *Cont, env *values.Env) (dispatchResult, *Cont, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return dispatchResult{}, k, err
	}
	if len(slice) < 2 {
		return dispatchResult{}, k, fmt.Errorf("apply: expected a procedure and an argument list, got %d argument(s)", len(slice))
	}
	proc := slice[0]
	tail, err := values.ListToSlice(slice[len(slice)-1])
	if err != nil {
		return dispatchResult{}, k, fmt.Errorf("apply: last argument must be a list: %w", err)
	}
	flat := append(append([]values.Value{}, slice[1:len(slice)-1]...), tail...)
	return dispatch(proc, values.NewList(flat...), k, env)
}
