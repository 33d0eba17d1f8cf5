package values

import "fmt"

// Env is a node in the linked-list environment chain described in
// spec.md §3/§4.B. A node with Sym == nil is a frame-top marker rather
// than a binding; Define attaches new bindings immediately after the
// nearest marker ahead of the current head, so they stay local to the
// enclosing activation.
type Env struct {
	Sym  *Symbol
	Val  Value
	Next *Env
}

// IsMarker reports whether e is a frame-top marker rather than a binding.
func (e *Env) IsMarker() bool { return e.Sym == nil }

// NewFrame pushes a frame-top marker in front of parent, starting a
// fresh (initially empty) activation.
func NewFrame(parent *Env) *Env {
	return &Env{Sym: nil, Val: nil, Next: parent}
}

// ErrUnbound is raised by Lookup (and so by Get) when a symbol has no
// binding in the chain.
type ErrUnbound struct{ Sym *Symbol }

func (e *ErrUnbound) Error() string { return "unbound variable: " + e.Sym.Name }

// Lookup performs a linear scan from e, returning the binding node for
// sym. Scanning stops at the first match, so shadowing works naturally.
func (e *Env) Lookup(sym *Symbol) (*Env, error) {
	for node := e; node != nil; node = node.Next {
		if node.Sym == sym {
			return node, nil
		}
	}
	return nil, &ErrUnbound{Sym: sym}
}

// Get looks up sym's value, or returns an error if unbound.
func (e *Env) Get(sym *Symbol) (Value, error) {
	node, err := e.Lookup(sym)
	if err != nil {
		return nil, err
	}
	return node.Val, nil
}

// Define inserts a new binding for sym immediately after the nearest
// frame-top marker reachable from e, making it local to the enclosing
// function activation regardless of how many parameter bindings already
// sit between e and that marker. Repeated Define of the same symbol in
// the same frame creates a new binding that shadows the old one rather
// than updating it in place (Open Question 1 in spec.md §9, preserved
// from the source).
func (e *Env) Define(sym *Symbol, val Value) {
	m := e
	for !m.IsMarker() {
		m = m.Next
	}
	m.Next = &Env{Sym: sym, Val: val, Next: m.Next}
}

// ErrArity is raised by Prepend when params and args have mismatched
// lengths.
type ErrArity struct {
	SurplusArg   Value // set when there are more args than params
	SurplusParam Value // set when there are more params than args
}

func (e *ErrArity) Error() string {
	if e.SurplusArg != nil {
		return "surplus arg: " + Stringify(e.SurplusArg, true)
	}
	return "surplus param: " + Stringify(e.SurplusParam, true)
}

// Prepend builds a new environment head with one binding per parameter
// in params, each bound to the corresponding element of args, sharing
// tail as the rest of the chain. params and args must be proper lists
// of the same length.
func Prepend(params, args Value, tail *Env) (*Env, error) {
	if _, ok := params.(Nil); ok {
		if _, ok := args.(Nil); !ok {
			return nil, &ErrArity{SurplusArg: args}
		}
		return tail, nil
	}
	pp, ok := params.(*Pair)
	if !ok {
		return nil, fmt.Errorf("malformed parameter list: %s", Stringify(params, true))
	}
	ap, ok := args.(*Pair)
	if !ok {
		return nil, &ErrArity{SurplusParam: params}
	}
	rest, err := Prepend(pp.Cdr, ap.Cdr, tail)
	if err != nil {
		return nil, err
	}
	sym, ok := pp.Car.(*Symbol)
	if !ok {
		return nil, fmt.Errorf("parameter is not a symbol: %s", Stringify(pp.Car, true))
	}
	return &Env{Sym: sym, Val: ap.Car, Next: rest}, nil
}
