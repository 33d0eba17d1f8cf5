package eval

import (
	"context"

	"github.com/cwbudde/go-scheme/internal/schemerr"
	"github.com/cwbudde/go-scheme/internal/values"
)

// Evaluate drives the CPS trampoline of spec.md §4.D to a final value
// with no cancellation point (equivalent to EvaluateContext with
// context.Background()).
func Evaluate(exp values.Value, env *values.Env) (values.Value, error) {
	return EvaluateContext(context.Background(), exp, env)
}

// EvaluateContext is Evaluate with a cancellation point checked once per
// trampoline iteration (SPEC_FULL.md §4.F): a caller that cancels ctx
// while an evaluation is running on another goroutine is guaranteed the
// evaluation stops touching env within one reduce-plus-continuation
// cycle, rather than running on unsupervised in the background.
//
// There is no recursion proportional to the size or depth of the
// Scheme computation: every nested reduction either grows the explicit
// continuation stack k (a *Cont chain on the Go heap) or, for a tail
// call, replaces the current frame outright per the elision rules in
// pushRestoreEnv and the BEGIN/Closure-activation logic below.
func EvaluateContext(ctx context.Context, exp values.Value, env *values.Env) (values.Value, error) {
	k := NoCont
	var value values.Value

trampoline:
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Reduction phase: drive (exp, env) down to a value, pushing
		// continuation frames for anything that must happen afterward.
	reduce:
		for {
			switch e := exp.(type) {
			case *values.Symbol:
				v, err := env.Get(e)
				if err != nil {
					return nil, wrap(err, schemerr.Unbound, k)
				}
				value = v
				break reduce

			case *values.Pair:
				op, _ := e.Car.(*values.Symbol)
				switch {
				case op == values.SymQuote:
					rest, ok := e.Cdr.(*values.Pair)
					if !ok {
						return nil, wrap(synErr("malformed quote"), schemerr.Syntax, k)
					}
					value = rest.Car
					break reduce

				case op == values.SymIf:
					rest, ok := e.Cdr.(*values.Pair)
					if !ok {
						return nil, wrap(synErr("malformed if"), schemerr.Syntax, k)
					}
					test := rest.Car
					branches, _ := rest.Cdr.(*values.Pair)
					var thenE, elseE values.Value = values.TheUnit, values.TheUnit
					if branches != nil {
						thenE = branches.Car
						if elseBranches, ok := branches.Cdr.(*values.Pair); ok {
							elseE = elseBranches.Car
						}
					}
					k = &Cont{Op: opThen, Payload: thenPayload{e2: thenE, e3: elseE}, Next: k}
					exp = test
					continue reduce

				case op == values.SymLambda:
					rest, ok := e.Cdr.(*values.Pair)
					if !ok {
						return nil, wrap(synErr("malformed lambda"), schemerr.Syntax, k)
					}
					value = &values.Closure{Params: rest.Car, Body: rest.Cdr, Env: env}
					break reduce

				case op == values.SymDefine:
					rest, ok := e.Cdr.(*values.Pair)
					if !ok {
						return nil, wrap(synErr("malformed define"), schemerr.Syntax, k)
					}
					// (define (name . params) body...) is sugar for
					// (define name (lambda params body...)); this is not
					// in the source's own DEFINE handling (which asserts
					// its target is a bare symbol) but is required by the
					// testable scenarios that use it.
					if sig, isSig := rest.Car.(*values.Pair); isSig {
						sym, ok := sig.Car.(*values.Symbol)
						if !ok {
							return nil, wrap(synErr("define: name must be a symbol"), schemerr.Type, k)
						}
						lambda := &values.Pair{Car: values.SymLambda, Cdr: &values.Pair{Car: sig.Cdr, Cdr: rest.Cdr}}
						k = &Cont{Op: opDefine, Payload: definePayload{sym: sym, env: env}, Next: k}
						exp = lambda
						continue reduce
					}
					sym, ok := rest.Car.(*values.Symbol)
					if !ok {
						return nil, wrap(synErr("define: name must be a symbol"), schemerr.Type, k)
					}
					valExpr, ok := rest.Cdr.(*values.Pair)
					if !ok {
						return nil, wrap(synErr("malformed define"), schemerr.Syntax, k)
					}
					k = &Cont{Op: opDefine, Payload: definePayload{sym: sym, env: env}, Next: k}
					exp = valExpr.Car
					continue reduce

				case op == values.SymSetq:
					rest, ok := e.Cdr.(*values.Pair)
					if !ok {
						return nil, wrap(synErr("malformed set!"), schemerr.Syntax, k)
					}
					sym, ok := rest.Car.(*values.Symbol)
					if !ok {
						return nil, wrap(synErr("set!: name must be a symbol"), schemerr.Type, k)
					}
					binding, err := env.Lookup(sym)
					if err != nil {
						return nil, wrap(err, schemerr.Unbound, k)
					}
					valExpr, ok := rest.Cdr.(*values.Pair)
					if !ok {
						return nil, wrap(synErr("malformed set!"), schemerr.Syntax, k)
					}
					k = &Cont{Op: opSetq, Payload: setqPayload{binding: binding}, Next: k}
					exp = valExpr.Car
					continue reduce

				case op == values.SymBegin:
					body, ok := e.Cdr.(*values.Pair)
					if !ok {
						value = values.TheUnit
						break reduce
					}
					if _, ok := body.Cdr.(*values.Pair); ok {
						k = &Cont{Op: opBegin, Payload: beginPayload{rest: body.Cdr}, Next: k}
					}
					exp = body.Car
					continue reduce

				default:
					k = &Cont{Op: opApply, Payload: applyPayload{argsExprs: e.Cdr}, Next: k}
					exp = e.Car
					continue reduce
				}

			default:
				// Self-evaluating: numbers, strings, booleans, Unit, Nil,
				// and anything already reduced to a runtime value
				// (Closure, Intrinsic, Continuation, EOF object).
				value = exp
				break reduce
			}
		}

		// Continuation phase: feed value into the stack, one frame at a
		// time, until a frame hands back a new (exp, env) to reduce or
		// the stack empties (the program's result).
		for {
			if k == nil {
				return value, nil
			}
			frame := k
			k = frame.Next

			switch frame.Op {
			case opThen:
				p := frame.Payload.(thenPayload)
				if values.Truthy(value) {
					exp = p.e2
				} else {
					exp = p.e3
				}
				continue trampoline

			case opBegin:
				p := frame.Payload.(beginPayload)
				body := p.rest.(*values.Pair)
				if _, ok := body.Cdr.(*values.Pair); ok {
					k = &Cont{Op: opBegin, Payload: beginPayload{rest: body.Cdr}, Next: k}
				}
				exp = body.Car
				continue trampoline

			case opDefine:
				p := frame.Payload.(definePayload)
				p.env.Define(p.sym, value)
				value = values.TheUnit
				continue

			case opSetq:
				p := frame.Payload.(setqPayload)
				p.binding.Val = value
				value = values.TheUnit
				continue

			case opApply:
				p := frame.Payload.(applyPayload)
				fun := value
				if _, isNil := p.argsExprs.(values.Nil); isNil {
					k = &Cont{Op: opApplyFun, Payload: applyFunPayload{fun: fun}, Next: k}
					value = values.TheNil
					continue
				}
				exprs, err := values.ListToSlice(p.argsExprs)
				if err != nil {
					return nil, wrap(err, classify(err), k)
				}
				k = &Cont{Op: opEvalArg, Payload: evalArgPayload{fun: fun, exprs: exprs, idx: 0, done: nil}, Next: k}
				exp = exprs[0]
				continue trampoline

			case opEvalArg:
				p := frame.Payload.(evalArgPayload)
				done := append(append(make([]values.Value, 0, len(p.exprs)), p.done...), value)
				if p.idx == len(p.exprs)-1 {
					k = &Cont{Op: opApplyFun, Payload: applyFunPayload{fun: p.fun}, Next: k}
					value = values.NewList(done...)
					continue
				}
				k = &Cont{Op: opEvalArg, Payload: evalArgPayload{fun: p.fun, exprs: p.exprs, idx: p.idx + 1, done: done}, Next: k}
				exp = p.exprs[p.idx+1]
				continue trampoline

			case opApplyFun:
				p := frame.Payload.(applyFunPayload)
				res, newK, err := dispatch(p.fun, value, k, env)
				if err != nil {
					return nil, wrap(err, classify(err), newK)
				}
				k = newK
				if res.isExp {
					exp = res.exp
					env = res.env
					continue trampoline
				}
				value = res.value
				continue

			case opRestoreEnv:
				env = frame.Payload.(*values.Env)
				continue

			default:
				return nil, wrap(synErr("internal: unknown continuation op"), schemerr.Type, k)
			}
		}
	}
}

func synErr(msg string) error { return &plainError{msg} }

type plainError struct{ msg string }

func (e *plainError) Error() string { return e.msg }

// classify picks a schemerr.Kind for an error surfaced from deeper
// layers (values.ErrUnbound, values.ErrArity, values.ErrImproperList,
// or a plain dispatch-time message) when the call site didn't already
// know a more specific kind.
func classify(err error) schemerr.Kind {
	switch err.(type) {
	case *values.ErrUnbound:
		return schemerr.Unbound
	case *values.ErrImproperList:
		return schemerr.ImproperList
	case *values.ErrArity:
		return schemerr.Type
	default:
		return schemerr.Type
	}
}

// wrap promotes a lower-level error into a *schemerr.Error tagged with
// kind and annotated with the continuation stack active at the moment
// of failure, so the driver can render it with source context.
func wrap(err error, kind schemerr.Kind, k *Cont) error {
	if se, ok := err.(*schemerr.Error); ok {
		return se
	}
	return schemerr.New(kind, err.Error()).WithContext(stringifyCont(k))
}

// stringifyCont renders the continuation stack as a parenthesized list
// of its pending operations, innermost first, for error context.
func stringifyCont(k *Cont) string {
	s := "("
	first := true
	for f := k; f != nil; f = f.Next {
		if !first {
			s += " "
		}
		first = false
		s += opName(f.Op)
	}
	return s + ")"
}

func opName(o op) string {
	switch o {
	case opThen:
		return "if"
	case opBegin:
		return "begin"
	case opDefine:
		return "define"
	case opSetq:
		return "set!"
	case opApply:
		return "apply"
	case opEvalArg:
		return "eval-arg"
	case opApplyFun:
		return "apply-fun"
	case opRestoreEnv:
		return "restore-env"
	default:
		return "?"
	}
}
