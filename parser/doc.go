// Package parser provides generic parser combinators for building
// recursive-descent parsers directly in Go code.
//
// # Overview
//
// A Parser consumes a prefix of its input and returns a value together with
// the remaining input:
//
//	type Parser[I, O any] interface {
//	    Parse(input I) (O, I, error)
//	}
//
// The input type I is usually a string or a slice of tokens. Input is never
// modified, only narrowed: the remainder is always a suffix of the input that
// was passed in. When a parser fails it returns a non-nil error and hands the
// original input back, so a caller can always retry from where it started.
//
// # Combinators
//
//	Map(p, f)              transform the value of p
//	And(p, q)              p then q, keeping both values as a Pair
//	AndL(p, q), AndR(p, q) p then q, keeping only the left/right value
//	Or(p, q), Choice(...)  ordered choice: first success wins
//	Repeat(p), Repeat1(p)  zero-or-more / one-or-more, greedy
//	Opt(p)                 optional, yields an Option
//	Skip(p)                run p and drop its value
//	ListSep(e, s)          e { s e }
//	ListSepOrEmpty(e, s)   [ e { s e } ]
//
// # Recursion
//
// Grammar rules usually refer to each other. A Ref breaks the cycle:
//
//	value := parser.NewRef[string, Value]()
//	array := parser.AndR(text.Token("["),
//	    parser.AndL(parser.ListSepOrEmpty[string, Value, string](value, text.Token(",")), text.Token("]")))
//	value.Bind(parser.Or(array, scalar))
//
// Copies of a Ref share the same underlying parser.
//
// # Progress
//
// Repeat, Repeat1 and the list combinators loop until their child fails.
// Children used in those positions must consume input whenever they succeed,
// otherwise the loop does not terminate.
package parser
