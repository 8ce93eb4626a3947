package lex

import (
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

const testGrammar = `
	Tokens = { Token } .
	Token = WhiteSpace | Keyword | Ident | Number | Arrow | Minus | Greater .
	WhiteSpace = " " | "\t" | "\n" .
	Keyword = "let" | "in" .
	Ident = Letter { Letter | Digit } .
	Number = Digit { Digit } [ "." Digit { Digit } ] .
	Arrow = "->" .
	Minus = "-" .
	Greater = ">" .
	Letter = "a" … "z" .
	Digit = "0" … "9" .
`

func mustGrammar(t *testing.T, src string) ebnf.Grammar {
	t.Helper()
	g, err := ParseGrammar("test.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	return g
}

func kinds() Option {
	return WithKinds("WhiteSpace", "Keyword", "Ident", "Number", "Arrow", "Minus", "Greater")
}

func TestTokenize(t *testing.T) {
	g := mustGrammar(t, testGrammar)

	tests := []struct {
		input    string
		expected []string
	}{
		{"", []string{"EOF"}},
		{"x", []string{"Ident", "EOF"}},
		{"let x", []string{"Keyword", "Ident", "EOF"}},
		{"letter", []string{"Ident", "EOF"}},
		{"12.5", []string{"Number", "EOF"}},
		{"7", []string{"Number", "EOF"}},
		{"a->b", []string{"Ident", "Arrow", "Ident", "EOF"}},
		{"- >", []string{"Minus", "Greater", "EOF"}},
		{"x @", []string{"Ident", "ERROR", "EOF"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(g, []byte(tt.input), "test", kinds())
			if err != nil {
				t.Fatalf("tokenize: %v", err)
			}
			var got []string
			for _, tok := range tokens {
				got = append(got, tok.Kind)
			}
			if strings.Join(got, " ") != strings.Join(tt.expected, " ") {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTieGoesToFirstDeclared(t *testing.T) {
	g := mustGrammar(t, testGrammar)

	// "in" matches both Keyword and Ident with the same length.
	tokens, err := Tokenize(g, []byte("in"), "test", kinds())
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if tokens[0].Kind != "Keyword" {
		t.Errorf("got %s, want Keyword", tokens[0].Kind)
	}
}

func TestDefaultKindsInDeclarationOrder(t *testing.T) {
	g := mustGrammar(t, testGrammar)
	names := lexicalProductions(g)
	if names[0] != "Tokens" || names[len(names)-1] != "Digit" {
		t.Errorf("got %v, want declaration order", names)
	}
}

func TestPositions(t *testing.T) {
	g := mustGrammar(t, testGrammar)

	tokens, err := Tokenize(g, []byte("let\n  x"), "f.txt", kinds())
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	x := tokens[1]
	if x.Literal != "x" || x.Position.Line != 2 || x.Position.Column != 3 || x.Position.Offset != 6 {
		t.Errorf("got %v", x)
	}
	if got := x.Position.String(); got != "f.txt:2:3" {
		t.Errorf("String() = %q", got)
	}
}

func TestSkipKinds(t *testing.T) {
	g := mustGrammar(t, testGrammar)

	tokens, err := Tokenize(g, []byte("a b"), "test", kinds(), WithSkipKinds())
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(tokens) != 4 || tokens[1].Kind != "WhiteSpace" {
		t.Errorf("whitespace should be kept, got %v", tokens)
	}
}

func TestVerify(t *testing.T) {
	g := mustGrammar(t, testGrammar)
	if err := Verify(g, "Tokens"); err != nil {
		t.Errorf("verify: %v", err)
	}
	if err := Verify(g, "Missing"); err == nil {
		t.Error("expected error for missing start production")
	}
}

func TestSequenceWithEmptyNamedPart(t *testing.T) {
	g := mustGrammar(t, `
		Num = Digits Frac Exp Empty .
		Digits = Digit { Digit } .
		Frac = [ "." Digits ] .
		Exp = { "e" } [ Sign ] .
		Sign = "+" | "-" | Empty .
		Empty = .
		Digit = "0" … "9" .
	`)

	tests := []struct {
		input string
		want  string
	}{
		{"12", "12"},
		{"1.5", "1.5"},
		{"1.5e", "1.5e"},
		{"7e-", "7e-"},
	}
	for _, tt := range tests {
		tokens, err := Tokenize(g, []byte(tt.input), "test", WithKinds("Num"))
		if err != nil {
			t.Fatalf("%s: %v", tt.input, err)
		}
		if tokens[0].Kind != "Num" || tokens[0].Literal != tt.want {
			t.Errorf("%s: got %v", tt.input, tokens[0])
		}
	}
}
