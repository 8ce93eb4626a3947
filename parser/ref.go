package parser

import (
	"errors"
	"sync/atomic"
)

// ErrUnbound is returned when parsing through a Ref that was never bound.
var ErrUnbound = errors.New("parser: unbound reference")

type refCell[I, O any] struct {
	p atomic.Pointer[Parser[I, O]]
}

// Ref is a shared handle to a parser. Copying a Ref, or calling Clone, is
// cheap and shares the underlying parser instead of duplicating it.
//
// A Ref created with NewRef starts unbound so a rule can mention itself (or a
// rule defined later) before it is complete:
//
//	expr := parser.NewRef[string, int]()
//	paren := parser.AndR(text.Literal("("), parser.AndL(expr, text.Literal(")")))
//	expr.Bind(parser.Or(number, paren))
//
// Bind before parsing. After that the Ref is read-only and safe for
// concurrent use.
type Ref[I, O any] struct {
	cell *refCell[I, O]
}

// NewRef returns an unbound Ref.
func NewRef[I, O any]() Ref[I, O] {
	return Ref[I, O]{cell: &refCell[I, O]{}}
}

// Rc wraps p in a bound Ref.
func Rc[I, O any](p Parser[I, O]) Ref[I, O] {
	r := NewRef[I, O]()
	r.Bind(p)
	return r
}

// Bind sets the parser behind r. It panics if p is nil or r is already bound.
func (r Ref[I, O]) Bind(p Parser[I, O]) {
	if p == nil {
		panic("parser: Bind with nil parser")
	}
	if r.cell == nil {
		panic("parser: Bind on zero Ref, use NewRef")
	}
	if !r.cell.p.CompareAndSwap(nil, &p) {
		panic("parser: Ref already bound")
	}
}

// Bound reports whether r has been bound.
func (r Ref[I, O]) Bound() bool {
	return r.cell != nil && r.cell.p.Load() != nil
}

// Clone returns a handle sharing r's parser.
func (r Ref[I, O]) Clone() Ref[I, O] {
	return r
}

func (r Ref[I, O]) Parse(input I) (O, I, error) {
	if r.cell != nil {
		if p := r.cell.p.Load(); p != nil {
			return (*p).Parse(input)
		}
	}
	var zero O
	return zero, input, ErrUnbound
}
