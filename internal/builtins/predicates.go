package builtins

import "github.com/cwbudde/go-scheme/internal/values"

// eq implements identity comparison: pointer identity for the
// heap-allocated, reference-semantics kinds (symbols, pairs, closures,
// intrinsics, continuations, the EOF sentinel), plain Go equality for
// the small value kinds, where "identity" and "value" coincide because
// each carries no separate heap identity to distinguish (spec.md's only
// tested eq? invariant is on interned symbols).
func eq(a, b values.Value) bool {
	switch av := a.(type) {
	case *values.Symbol:
		bv, ok := b.(*values.Symbol)
		return ok && av == bv
	case *values.Pair:
		bv, ok := b.(*values.Pair)
		return ok && av == bv
	case *values.Closure:
		bv, ok := b.(*values.Closure)
		return ok && av == bv
	case *values.Intrinsic:
		bv, ok := b.(*values.Intrinsic)
		return ok && av == bv
	case *values.Continuation:
		bv, ok := b.(*values.Continuation)
		return ok && av == bv
	case values.Nil:
		_, ok := b.(values.Nil)
		return ok
	case values.Unit:
		_, ok := b.(values.Unit)
		return ok
	case values.Bool:
		bv, ok := b.(values.Bool)
		return ok && av.Val == bv.Val
	case values.Int:
		bv, ok := b.(values.Int)
		return ok && av.Val == bv.Val
	case values.Float:
		bv, ok := b.(values.Float)
		return ok && av.Val == bv.Val
	default:
		return a == b
	}
}

// eqv is value equality for numbers, symbols, and booleans (spec.md
// §4.E); it falls back to eq for everything else, matching eq? exactly
// except that a future exact/inexact-aware numeric tower could
// distinguish them here without touching eq?.
func eqv(a, b values.Value) bool {
	return eq(a, b)
}

func eqProc(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	return values.Bool{Val: eq(slice[0], slice[1])}, nil
}

func eqvProc(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	return values.Bool{Val: eqv(slice[0], slice[1])}, nil
}

func pairPredicate(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	_, ok := slice[0].(*values.Pair)
	return values.Bool{Val: ok}, nil
}

func nullPredicate(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	_, ok := slice[0].(values.Nil)
	return values.Bool{Val: ok}, nil
}

func notProc(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	return values.Bool{Val: !values.Truthy(slice[0])}, nil
}

func symbolPredicate(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	_, ok := slice[0].(*values.Symbol)
	return values.Bool{Val: ok}, nil
}

func booleanPredicate(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	_, ok := slice[0].(values.Bool)
	return values.Bool{Val: ok}, nil
}

func numberPredicate(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	switch slice[0].(type) {
	case values.Int, values.Float:
		return values.True, nil
	default:
		return values.False, nil
	}
}

func stringPredicate(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	_, ok := slice[0].(values.SchemeStr)
	return values.Bool{Val: ok}, nil
}

func procedurePredicate(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	switch slice[0].(type) {
	case *values.Closure, *values.Intrinsic, *values.Continuation:
		return values.True, nil
	default:
		return values.False, nil
	}
}

func eofPredicate(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	return values.Bool{Val: values.IsEOF(slice[0])}, nil
}
