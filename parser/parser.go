package parser

import "errors"

// Parser is implemented by every matcher, primitive or composed.
//
// On success Parse returns the parsed value, the unconsumed suffix of input
// and a nil error. On failure it returns the zero value, input itself and a
// non-nil error.
type Parser[I, O any] interface {
	Parse(input I) (O, I, error)
}

// Func adapts an ordinary function to the Parser interface.
type Func[I, O any] func(input I) (O, I, error)

func (f Func[I, O]) Parse(input I) (O, I, error) {
	return f(input)
}

// Parse runs p against input. A non-empty remainder is not an error; callers
// that need the whole input consumed must check it themselves.
func Parse[I, O any](p Parser[I, O], input I) (O, I, error) {
	return p.Parse(input)
}

// Unit is the value of parsers whose result carries no information.
type Unit struct{}

// Pair holds the values of both sides of And.
type Pair[A, B any] struct {
	Left  A
	Right B
}

// Option is the value produced by Opt.
type Option[T any] struct {
	Value   T
	Present bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Present: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Present
}

// OrElse returns the value if present and def otherwise.
func (o Option[T]) OrElse(def T) T {
	if o.Present {
		return o.Value
	}
	return def
}

// ErrFailed is the default error of Fail.
var ErrFailed = errors.New("parser: failed")

// Fail returns a parser that always fails with err, or ErrFailed if err is nil.
func Fail[I, O any](err error) Parser[I, O] {
	if err == nil {
		err = ErrFailed
	}
	return Func[I, O](func(input I) (O, I, error) {
		var zero O
		return zero, input, err
	})
}

// Succeed returns a parser that consumes nothing and yields v.
func Succeed[I, O any](v O) Parser[I, O] {
	return Func[I, O](func(input I) (O, I, error) {
		return v, input, nil
	})
}

type mapParser[I, A, B any] struct {
	p Parser[I, A]
	f func(A) B
}

// Map returns a parser that behaves like p and converts its value with f.
// f is only called on success and must be total over p's results.
func Map[I, A, B any](p Parser[I, A], f func(A) B) Parser[I, B] {
	return &mapParser[I, A, B]{p: p, f: f}
}

func (m *mapParser[I, A, B]) Parse(input I) (B, I, error) {
	a, rest, err := m.p.Parse(input)
	if err != nil {
		var zero B
		return zero, input, err
	}
	return m.f(a), rest, nil
}

type skipParser[I, O any] struct {
	p Parser[I, O]
}

// Skip runs p and discards its value. Consumption and failure are p's.
func Skip[I, O any](p Parser[I, O]) Parser[I, Unit] {
	return &skipParser[I, O]{p: p}
}

func (s *skipParser[I, O]) Parse(input I) (Unit, I, error) {
	_, rest, err := s.p.Parse(input)
	if err != nil {
		return Unit{}, input, err
	}
	return Unit{}, rest, nil
}

type optParser[I, O any] struct {
	p Parser[I, O]
}

// Opt runs p and absorbs its failure. When p fails the result is absent and
// the remainder is input itself.
func Opt[I, O any](p Parser[I, O]) Parser[I, Option[O]] {
	return &optParser[I, O]{p: p}
}

func (o *optParser[I, O]) Parse(input I) (Option[O], I, error) {
	v, rest, err := o.p.Parse(input)
	if err != nil {
		return None[O](), input, nil
	}
	return Some(v), rest, nil
}
