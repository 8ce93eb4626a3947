package lex

import (
	"fmt"

	"github.com/dhamidi/parcomb/parser"
)

// MismatchError is returned by the token parsers when the next token is not
// the expected one. Found is the zero Token at the end of the slice.
type MismatchError struct {
	Want  string
	Found Token
}

func (e *MismatchError) Error() string {
	if e.Found.Kind == "" {
		return fmt.Sprintf("expected %s, found end of input", e.Want)
	}
	return fmt.Sprintf("%s: expected %s, found %s %q", e.Found.Position, e.Want, e.Found.Kind, e.Found.Literal)
}

func mismatch(want string, input []Token) error {
	err := &MismatchError{Want: want}
	if len(input) > 0 {
		err.Found = input[0]
	}
	return err
}

// Kind matches one token of the given kind.
func Kind(kind string) parser.Parser[[]Token, Token] {
	return parser.Func[[]Token, Token](func(input []Token) (Token, []Token, error) {
		if len(input) == 0 || input[0].Kind != kind {
			return Token{}, input, mismatch(kind, input)
		}
		return input[0], input[1:], nil
	})
}

// Literal matches one token whose text is lit, whatever its kind.
func Literal(lit string) parser.Parser[[]Token, Token] {
	want := fmt.Sprintf("%q", lit)
	return parser.Func[[]Token, Token](func(input []Token) (Token, []Token, error) {
		if len(input) == 0 || input[0].Kind == KindEOF || input[0].Literal != lit {
			return Token{}, input, mismatch(want, input)
		}
		return input[0], input[1:], nil
	})
}

// EOF matches the EOF token produced by Tokenize, or an exhausted slice.
// It consumes the EOF token.
func EOF() parser.Parser[[]Token, parser.Unit] {
	return parser.Func[[]Token, parser.Unit](func(input []Token) (parser.Unit, []Token, error) {
		if len(input) == 0 {
			return parser.Unit{}, input, nil
		}
		if input[0].Kind != KindEOF {
			return parser.Unit{}, input, mismatch("end of input", input)
		}
		return parser.Unit{}, input[1:], nil
	})
}

// Text returns the literal of tok; handy with parser.Map.
func Text(tok Token) string {
	return tok.Literal
}
