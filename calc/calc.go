// Package calc parses and evaluates arithmetic expressions. The input is
// tokenized with the EBNF grammar in calc.ebnf and parsed with combinators
// over the token slice.
package calc

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"github.com/dhamidi/parcomb/lex"
	"github.com/dhamidi/parcomb/parser"
	"golang.org/x/exp/ebnf"
)

//go:embed calc.ebnf
var grammarSource []byte

var tokenKinds = []string{"WhiteSpace", "Number", "Ident", "Plus", "Minus", "Star", "Slash", "LParen", "RParen", "Comma"}

// LexicalGrammar returns the parsed token grammar.
var LexicalGrammar = sync.OnceValues(func() (ebnf.Grammar, error) {
	return lex.ParseGrammar("calc.ebnf", bytes.NewReader(grammarSource))
})

type tokens = []lex.Token

var expression = sync.OnceValue(newExpression)

func newExpression() parser.Parser[tokens, Node] {
	expr := parser.NewRef[tokens, Node]()
	factor := parser.NewRef[tokens, Node]()

	number := parser.Map(lex.Kind("Number"), func(t lex.Token) Node {
		// Number tokens are digits with an optional fraction.
		f, _ := strconv.ParseFloat(t.Literal, 64)
		return Num(f)
	})

	args := parser.AndR(lex.Kind("LParen"),
		parser.AndL(parser.ListSepOrEmpty[tokens, Node, lex.Token](expr, lex.Kind("Comma")), lex.Kind("RParen")))
	call := parser.Map(parser.And(lex.Kind("Ident"), args), func(p parser.Pair[lex.Token, []Node]) Node {
		return &Call{Name: p.Left.Literal, Args: p.Right}
	})

	paren := parser.AndR(lex.Kind("LParen"), parser.AndL[tokens, Node, lex.Token](expr, lex.Kind("RParen")))

	neg := parser.Map(parser.AndR[tokens, lex.Token, Node](lex.Kind("Minus"), factor), func(n Node) Node {
		return &Neg{X: n}
	})

	factor.Bind(parser.Choice(number, call, paren, neg))

	mulOp := parser.Map(parser.Or(lex.Kind("Star"), lex.Kind("Slash")), lex.Text)
	addOp := parser.Map(parser.Or(lex.Kind("Plus"), lex.Kind("Minus")), lex.Text)

	term := leftAssoc(factor, mulOp)
	expr.Bind(leftAssoc(term, addOp))

	return parser.AndL[tokens, Node, parser.Unit](expr, lex.EOF())
}

// leftAssoc parses operand { op operand } and folds it to the left.
func leftAssoc(operand parser.Parser[tokens, Node], op parser.Parser[tokens, string]) parser.Parser[tokens, Node] {
	tail := parser.Repeat(parser.And(op, operand))
	return parser.Map(parser.And(operand, tail), func(p parser.Pair[Node, []parser.Pair[string, Node]]) Node {
		n := p.Left
		for _, t := range p.Right {
			n = &Binary{Op: t.Left, L: n, R: t.Right}
		}
		return n
	})
}

// Tokenize splits src into calc tokens, without whitespace.
func Tokenize(src string) ([]lex.Token, error) {
	g, err := LexicalGrammar()
	if err != nil {
		return nil, err
	}
	toks, err := lex.Tokenize(g, []byte(src), "", lex.WithKinds(tokenKinds...))
	if err != nil {
		return nil, err
	}
	for _, t := range toks {
		if t.Kind == lex.KindError {
			return nil, fmt.Errorf("%s: unexpected character %q", t.Position, t.Literal)
		}
	}
	return toks, nil
}

// Parse parses a complete expression.
func Parse(src string) (Node, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	n, _, err := expression().Parse(toks)
	if err != nil {
		return nil, fmt.Errorf("parse expression: %w", err)
	}
	return n, nil
}

// Eval parses and evaluates src.
func Eval(src string) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return n.Eval()
}
