package parser

type repeatParser[I, O any] struct {
	p   Parser[I, O]
	min int
}

// Repeat applies p as many times as it succeeds and collects the values in
// order. It never fails; with no matches the result is empty and the
// remainder is input itself. Consumed elements are never given back.
func Repeat[I, O any](p Parser[I, O]) Parser[I, []O] {
	return &repeatParser[I, O]{p: p}
}

// Repeat1 is Repeat requiring at least one match. With none it fails with
// the error of p.
func Repeat1[I, O any](p Parser[I, O]) Parser[I, []O] {
	return &repeatParser[I, O]{p: p, min: 1}
}

func (r *repeatParser[I, O]) Parse(input I) ([]O, I, error) {
	values := []O{}
	rest := input
	for {
		v, next, err := r.p.Parse(rest)
		if err != nil {
			if len(values) < r.min {
				return nil, input, err
			}
			return values, rest, nil
		}
		values = append(values, v)
		rest = next
	}
}
