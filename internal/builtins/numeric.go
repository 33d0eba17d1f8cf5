package builtins

import (
	"fmt"
	"math"

	"github.com/cwbudde/go-scheme/internal/values"
)

// asNumber extracts a Go float64/whether-exact pair from an Int or
// Float value, promoting Int to float64 for mixed arithmetic (Open
// Question 2: exact/inexact comparisons promote rather than erroring).
func asNumber(v values.Value) (f float64, isInt bool, err error) {
	switch n := v.(type) {
	case values.Int:
		return float64(n.Val), true, nil
	case values.Float:
		return n.Val, false, nil
	default:
		return 0, false, fmt.Errorf("not a number: %s", values.Stringify(v, true))
	}
}

// numResult packages an arithmetic result back into Int when every
// operand was exact and the result is integral, or Float otherwise (any
// inexact operand, or a non-integral quotient such as (/ 2)).
func numResult(f float64, allInt bool) values.Value {
	if allInt && f == math.Trunc(f) {
		return values.Int{Val: int64(f)}
	}
	return values.Float{Val: f}
}

// variadicArith folds op over all arguments (at least one required).
// With a single argument it applies unaryOp when non-nil (so `(- x)`
// and `(/ x)` mean negate/reciprocal), and otherwise folds that one
// argument onto ident (so `(+ x)` is x), matching
// typical Scheme semantics for the variadic forms the supplement adds
// on top of spec.md's strictly-binary `+ - * < =`).
func variadicArith(name string, ident float64, op func(acc, x float64) float64, unaryOp func(x float64) float64) values.IntrinsicFunc {
	return func(args values.Value) (values.Value, error) {
		slice, err := values.ListToSlice(args)
		if err != nil {
			return nil, err
		}
		if len(slice) == 0 {
			return nil, fmt.Errorf("%s: expected at least 1 argument", name)
		}
		first, firstInt, err := asNumber(slice[0])
		if err != nil {
			return nil, err
		}
		if len(slice) == 1 {
			if unaryOp != nil {
				return numResult(unaryOp(first), firstInt), nil
			}
			return numResult(op(ident, first), firstInt), nil
		}
		acc, allInt := first, firstInt
		for _, v := range slice[1:] {
			n, isInt, err := asNumber(v)
			if err != nil {
				return nil, err
			}
			acc = op(acc, n)
			allInt = allInt && isInt
		}
		return numResult(acc, allInt), nil
	}
}

func binaryCompare(op func(a, b float64) bool) values.IntrinsicFunc {
	return func(args values.Value) (values.Value, error) {
		slice, err := values.ListToSlice(args)
		if err != nil {
			return nil, err
		}
		a, _, err := asNumber(slice[0])
		if err != nil {
			return nil, err
		}
		b, _, err := asNumber(slice[1])
		if err != nil {
			return nil, err
		}
		return values.Bool{Val: op(a, b)}, nil
	}
}

func variadicCompare(op func(a, b float64) bool) values.IntrinsicFunc {
	return func(args values.Value) (values.Value, error) {
		slice, err := values.ListToSlice(args)
		if err != nil {
			return nil, err
		}
		if len(slice) < 2 {
			return values.True, nil
		}
		prev, _, err := asNumber(slice[0])
		if err != nil {
			return nil, err
		}
		for _, v := range slice[1:] {
			n, _, err := asNumber(v)
			if err != nil {
				return nil, err
			}
			if !op(prev, n) {
				return values.False, nil
			}
			prev = n
		}
		return values.True, nil
	}
}
