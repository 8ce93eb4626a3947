// Package lex turns text into tokens using the lexical productions of an
// EBNF grammar, and provides terminal parsers over the resulting token slices.
package lex

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/ebnf"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

const (
	KindEOF   = "EOF"
	KindError = "ERROR"
)

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithKinds restricts token candidates to the named productions, tried in
// the given order. By default every lexical production (name starting with an
// uppercase letter) is a candidate, in declaration order. Among equally long
// matches the earlier candidate wins.
func WithKinds(kinds ...string) Option {
	return func(l *Lexer) {
		l.kinds = append([]string{}, kinds...)
	}
}

// WithSkipKinds sets which token kinds Tokenize drops. The default is
// WhiteSpace and Comment.
func WithSkipKinds(kinds ...string) Option {
	return func(l *Lexer) {
		l.skipKinds = make(map[string]bool)
		for _, k := range kinds {
			l.skipKinds[k] = true
		}
	}
}

// Lexer tokenizes input based on an EBNF grammar.
type Lexer struct {
	grammar   ebnf.Grammar
	input     []byte
	filename  string
	pos       int
	line      int
	column    int
	kinds     []string
	skipKinds map[string]bool
	memo      map[memoKey]int  // match length per production and offset, -1 = no match
	visiting  map[memoKey]bool // cycle detection
}

// NewLexer creates a lexer for the given grammar and input.
func NewLexer(grammar ebnf.Grammar, input []byte, filename string, opts ...Option) *Lexer {
	l := &Lexer{
		grammar:   grammar,
		input:     input,
		filename:  filename,
		line:      1,
		column:    1,
		skipKinds: map[string]bool{"WhiteSpace": true, "Comment": true},
		memo:      make(map[memoKey]int),
		visiting:  make(map[memoKey]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.kinds == nil {
		l.kinds = lexicalProductions(grammar)
	}
	return l
}

// lexicalProductions returns the names of the uppercase productions in
// declaration order, so that ties between equally long matches are resolved
// in favour of the production written first.
func lexicalProductions(grammar ebnf.Grammar) []string {
	var names []string
	for name, prod := range grammar {
		if prod.Expr == nil || !isLexical(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := grammar[names[i]].Pos(), grammar[names[j]].Pos()
		if pi.Offset != pj.Offset {
			return pi.Offset < pj.Offset
		}
		return names[i] < names[j]
	})
	return names
}

func isLexical(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open grammar")
	}
	defer f.Close()

	return ParseGrammar(filename, f)
}

// ParseGrammar reads an EBNF grammar from r.
func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, errors.Wrap(err, "parse grammar")
	}
	return grammar, nil
}

// Verify checks that grammar is consistent and that every production is
// reachable from start.
func Verify(grammar ebnf.Grammar, start string) error {
	if err := ebnf.Verify(grammar, start); err != nil {
		return errors.Wrapf(err, "verify grammar from %q", start)
	}
	return nil
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// NextToken returns the next token from the input, including trivia.
// It tries every candidate production and returns the longest match.
// At the end of input it returns an EOF token and io.EOF.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Position: l.Position()}, io.EOF
	}

	startPos := l.Position()
	startOffset := l.pos

	// positions change with every token
	l.memo = make(map[memoKey]int)

	var bestKind string
	var bestLen int

	for _, name := range l.kinds {
		prod, ok := l.grammar[name]
		if !ok || prod.Expr == nil {
			continue
		}

		l.visiting = make(map[memoKey]bool)
		matchLen := l.tryMatch(prod.Expr, startOffset)
		if matchLen > bestLen {
			bestLen = matchLen
			bestKind = name
		}
	}

	if bestLen == 0 {
		ch := l.advance()
		return Token{
			Kind:     KindError,
			Literal:  string(ch),
			Position: startPos,
		}, nil
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}

	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[startOffset : startOffset+bestLen]),
		Position: startPos,
	}, nil
}

// tryMatch attempts to match an expression at the given offset.
// Returns the length of the match, or 0 if no match.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return l.tryMatchToken(e.String, offset)

	case *ebnf.Range:
		return l.tryMatchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		pos := offset
		for _, item := range e {
			n := l.tryMatch(item, pos)
			if n == 0 && !l.nullable(item) {
				return 0
			}
			total += n
			pos += n
		}
		return total

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			if n := l.tryMatch(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		pos := offset
		for {
			n := l.tryMatch(e.Body, pos)
			if n == 0 {
				break
			}
			total += n
			pos += n
		}
		return total

	case *ebnf.Option:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset)

	default:
		return 0
	}
}

// nullable reports whether expr can succeed without consuming input: an
// option or repetition, or a name, group, sequence or alternative built
// from them.
func (l *Lexer) nullable(expr ebnf.Expression) bool {
	return l.nullableIn(expr, map[string]bool{})
}

func (l *Lexer) nullableIn(expr ebnf.Expression, seen map[string]bool) bool {
	switch e := expr.(type) {
	case *ebnf.Option, *ebnf.Repetition:
		return true
	case *ebnf.Group:
		return l.nullableIn(e.Body, seen)
	case ebnf.Sequence:
		for _, item := range e {
			if !l.nullableIn(item, seen) {
				return false
			}
		}
		return true
	case ebnf.Alternative:
		for _, alt := range e {
			if l.nullableIn(alt, seen) {
				return true
			}
		}
		return false
	case *ebnf.Name:
		if seen[e.String] {
			return false
		}
		seen[e.String] = true
		prod, ok := l.grammar[e.String]
		// an empty production matches nothing
		return ok && (prod.Expr == nil || l.nullableIn(prod.Expr, seen))
	}
	return false
}

// tryMatchName matches a named production with memoization and cycle detection.
func (l *Lexer) tryMatchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}

	if result, ok := l.memo[key]; ok {
		if result == -1 {
			return 0
		}
		return result
	}

	// left recursion
	if l.visiting[key] {
		return 0
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = -1
		return 0
	}

	l.visiting[key] = true
	result := l.tryMatch(prod.Expr, offset)
	delete(l.visiting, key)

	if result == 0 {
		l.memo[key] = -1
	} else {
		l.memo[key] = result
	}
	return result
}

// tryMatchToken matches a literal string token.
func (l *Lexer) tryMatchToken(token string, offset int) int {
	s := strings.Trim(token, "\"")
	if offset+len(s) > len(l.input) {
		return 0
	}
	if string(l.input[offset:offset+len(s)]) == s {
		return len(s)
	}
	return 0
}

// tryMatchRange matches a character range (e.g., "a" … "z").
func (l *Lexer) tryMatchRange(begin, end string, offset int) int {
	if offset >= len(l.input) {
		return 0
	}
	beginChar := strings.Trim(begin, "\"")
	endChar := strings.Trim(end, "\"")
	if len(beginChar) != 1 || len(endChar) != 1 {
		return 0
	}
	ch := l.input[offset]
	if ch >= beginChar[0] && ch <= endChar[0] {
		return 1
	}
	return 0
}

// Tokenize reads all tokens from input, dropping skipped kinds. The result
// always ends with an EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			break
		}
		if err != nil {
			return tokens, err
		}
		if l.skipKinds[tok.Kind] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Tokenize is a shorthand for NewLexer(...).Tokenize().
func Tokenize(grammar ebnf.Grammar, input []byte, filename string, opts ...Option) ([]Token, error) {
	return NewLexer(grammar, input, filename, opts...).Tokenize()
}
