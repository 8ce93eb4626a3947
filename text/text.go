// Package text provides terminal parsers over string input.
package text

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dhamidi/parcomb/parser"
)

// MismatchError is returned by the parsers in this package when the input
// does not start with what they expect.
type MismatchError struct {
	Kind  string // "literal", "pattern", "end" or a grammar's own kind
	Want  string // literal text, pattern source or description
	Input string // remaining input at the point of failure
}

func (e *MismatchError) Error() string {
	found := e.Input
	if len(found) > 16 {
		found = found[:16] + "..."
	}
	switch e.Kind {
	case "end":
		return fmt.Sprintf("expected end of input, found %q", found)
	case "literal", "pattern":
		return fmt.Sprintf("%s %q: no match at %q", e.Kind, e.Want, found)
	}
	return fmt.Sprintf("expected %s, found %q", e.Want, found)
}

type literal string

// Literal matches s exactly and returns it.
func Literal(s string) parser.Parser[string, string] {
	return literal(s)
}

func (l literal) Parse(input string) (string, string, error) {
	if !strings.HasPrefix(input, string(l)) {
		return "", input, &MismatchError{Kind: "literal", Want: string(l), Input: input}
	}
	return string(l), input[len(l):], nil
}

type pattern struct {
	source string
	re     *regexp.Regexp
}

// Regexp compiles expr once and returns a parser matching it at the start of
// the input. The matched text is the value.
func Regexp(expr string) (parser.Parser[string, string], error) {
	re, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	return &pattern{source: expr, re: re}, nil
}

// MustRegexp is like Regexp but panics if expr does not compile.
// It is meant for grammars built from constant patterns.
func MustRegexp(expr string) parser.Parser[string, string] {
	p, err := Regexp(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *pattern) Parse(input string) (string, string, error) {
	loc := p.re.FindStringIndex(input)
	if loc == nil {
		return "", input, &MismatchError{Kind: "pattern", Want: p.source, Input: input}
	}
	return input[:loc[1]], input[loc[1]:], nil
}

var spaces = MustRegexp(`\s*`)

// Spaces skips any amount of whitespace, including none. It never fails.
func Spaces() parser.Parser[string, string] {
	return spaces
}

// Token matches s surrounded by optional whitespace and returns s.
func Token(s string) parser.Parser[string, string] {
	return parser.AndL(parser.AndR(spaces, Literal(s)), spaces)
}

type end struct{}

// End succeeds, consuming nothing, only when the input is empty.
func End() parser.Parser[string, parser.Unit] {
	return end{}
}

func (end) Parse(input string) (parser.Unit, string, error) {
	if input != "" {
		return parser.Unit{}, input, &MismatchError{Kind: "end", Input: input}
	}
	return parser.Unit{}, input, nil
}
