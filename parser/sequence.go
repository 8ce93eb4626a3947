package parser

type andParser[I, A, B any] struct {
	p1 Parser[I, A]
	p2 Parser[I, B]
}

// And runs p1 and then p2 on what p1 left. It fails with the first error
// encountered.
func And[I, A, B any](p1 Parser[I, A], p2 Parser[I, B]) Parser[I, Pair[A, B]] {
	return &andParser[I, A, B]{p1: p1, p2: p2}
}

func (a *andParser[I, A, B]) Parse(input I) (Pair[A, B], I, error) {
	v1, rest, err := a.p1.Parse(input)
	if err != nil {
		return Pair[A, B]{}, input, err
	}
	v2, rest, err := a.p2.Parse(rest)
	if err != nil {
		return Pair[A, B]{}, input, err
	}
	return Pair[A, B]{Left: v1, Right: v2}, rest, nil
}

// AndL is And keeping only the value of p1.
func AndL[I, A, B any](p1 Parser[I, A], p2 Parser[I, B]) Parser[I, A] {
	return Map(And(p1, p2), func(p Pair[A, B]) A { return p.Left })
}

// AndR is And keeping only the value of p2.
func AndR[I, A, B any](p1 Parser[I, A], p2 Parser[I, B]) Parser[I, B] {
	return Map(And(p1, p2), func(p Pair[A, B]) B { return p.Right })
}

type orParser[I, O any] struct {
	p1 Parser[I, O]
	p2 Parser[I, O]
}

// Or tries p1 and, only if it fails, tries p2 on the same input.
// The first success wins even if p2 would consume more. When both fail the
// error of p2 is returned.
func Or[I, O any](p1, p2 Parser[I, O]) Parser[I, O] {
	return &orParser[I, O]{p1: p1, p2: p2}
}

func (o *orParser[I, O]) Parse(input I) (O, I, error) {
	if v, rest, err := o.p1.Parse(input); err == nil {
		return v, rest, nil
	}
	return o.p2.Parse(input)
}

// Choice is Or over any number of alternatives, tried in order.
// With no alternatives it always fails.
func Choice[I, O any](ps ...Parser[I, O]) Parser[I, O] {
	if len(ps) == 0 {
		return Fail[I, O](nil)
	}
	p := ps[len(ps)-1]
	for i := len(ps) - 2; i >= 0; i-- {
		p = Or(ps[i], p)
	}
	return p
}
