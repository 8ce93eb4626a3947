package parser

type listParser[I, O, S any] struct {
	elem       Parser[I, O]
	sep        Parser[I, S]
	allowEmpty bool
}

// ListSep parses elem { sep elem } and collects the element values.
//
// The list ends at the first separator or element that fails; the remainder
// then starts just before that separator, so a trailing separator is left for
// the caller. ListSep fails only if the first element fails.
func ListSep[I, O, S any](elem Parser[I, O], sep Parser[I, S]) Parser[I, []O] {
	return &listParser[I, O, S]{elem: elem, sep: sep}
}

// ListSepOrEmpty is ListSep accepting zero elements. When the first element
// fails the result is empty and the remainder is input itself.
func ListSepOrEmpty[I, O, S any](elem Parser[I, O], sep Parser[I, S]) Parser[I, []O] {
	return &listParser[I, O, S]{elem: elem, sep: sep, allowEmpty: true}
}

func (l *listParser[I, O, S]) Parse(input I) ([]O, I, error) {
	first, rest, err := l.elem.Parse(input)
	if err != nil {
		if l.allowEmpty {
			return []O{}, input, nil
		}
		return nil, input, err
	}

	values := []O{first}
	for {
		_, afterSep, err := l.sep.Parse(rest)
		if err != nil {
			break
		}
		v, next, err := l.elem.Parse(afterSep)
		if err != nil {
			break
		}
		values = append(values, v)
		rest = next
	}
	return values, rest, nil
}
