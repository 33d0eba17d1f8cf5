package builtins

import (
	"fmt"

	"github.com/cwbudde/go-scheme/internal/values"
)

func wantPair(v values.Value, who string) (*values.Pair, error) {
	p, ok := v.(*values.Pair)
	if !ok {
		return nil, fmt.Errorf("%s: not a pair: %s", who, values.Stringify(v, true))
	}
	return p, nil
}

func car(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	p, err := wantPair(slice[0], "car")
	if err != nil {
		return nil, err
	}
	return p.Car, nil
}

func cdr(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	p, err := wantPair(slice[0], "cdr")
	if err != nil {
		return nil, err
	}
	return p.Cdr, nil
}

func cons(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	return &values.Pair{Car: slice[0], Cdr: slice[1]}, nil
}

// cxr implements the cadr/cddr/caar/cdar family: path is read
// right-to-left, each letter 'a' or 'd' selecting car/cdr, mirroring
// how (cadr x) means (car (cdr x)).
func cxr(path string) values.IntrinsicFunc {
	return func(args values.Value) (values.Value, error) {
		slice, err := values.ListToSlice(args)
		if err != nil {
			return nil, err
		}
		v := slice[0]
		for i := len(path) - 1; i >= 0; i-- {
			p, err := wantPair(v, "c"+path+"r")
			if err != nil {
				return nil, err
			}
			if path[i] == 'a' {
				v = p.Car
			} else {
				v = p.Cdr
			}
		}
		return v, nil
	}
}

func listProc(args values.Value) (values.Value, error) {
	return args, nil
}

func listPredicate(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	_, err = values.ListToSlice(slice[0])
	return values.Bool{Val: err == nil}, nil
}

func length(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	n, err := values.ListLen(slice[0])
	if err != nil {
		return nil, fmt.Errorf("length: %w", err)
	}
	return values.Int{Val: int64(n)}, nil
}

func appendProc(args values.Value) (values.Value, error) {
	lists, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return values.TheNil, nil
	}
	var elems []values.Value
	for _, l := range lists[:len(lists)-1] {
		s, err := values.ListToSlice(l)
		if err != nil {
			return nil, fmt.Errorf("append: %w", err)
		}
		elems = append(elems, s...)
	}
	result := lists[len(lists)-1]
	for i := len(elems) - 1; i >= 0; i-- {
		result = &values.Pair{Car: elems[i], Cdr: result}
	}
	return result, nil
}

func reverse(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	elems, err := values.ListToSlice(slice[0])
	if err != nil {
		return nil, fmt.Errorf("reverse: %w", err)
	}
	var result values.Value = values.TheNil
	for _, e := range elems {
		result = &values.Pair{Car: e, Cdr: result}
	}
	return result, nil
}

func member(args values.Value) (values.Value, error) {
	slice, err := values.ListToSlice(args)
	if err != nil {
		return nil, err
	}
	needle, haystack := slice[0], slice[1]
	for {
		p, ok := haystack.(*values.Pair)
		if !ok {
			return values.False, nil
		}
		if eqv(needle, p.Car) {
			return p, nil
		}
		haystack = p.Cdr
	}
}
