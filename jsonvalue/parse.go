package jsonvalue

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dhamidi/parcomb/text"
	"github.com/tliron/commonlog"
)

// ErrTooDeep is wrapped by the SyntaxError of a document nested deeper than
// the parser allows.
var ErrTooDeep = errors.New("exceeds maximum nesting depth")

// SyntaxError describes where and why a document was rejected.
type SyntaxError struct {
	Offset int
	Line   int
	Column int
	Msg    string
	Err    error // underlying parser failure, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

type Option func(*Parser)

// WithTrace logs every grammar rule attempt to log at debug level.
func WithTrace(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// WithMaxDepth limits how deeply arrays and objects may nest.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// Parser parses complete JSON documents. It is safe for concurrent use.
type Parser struct {
	log      commonlog.Logger
	maxDepth int
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{maxDepth: MaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src as a single JSON value. Content after the value, other
// than whitespace, is an error. A failure is reported at the point farthest
// into src that any rule reached.
func (p *Parser) Parse(src string) (Value, error) {
	g := newGrammar(p.log, p.maxDepth)
	v, rest, err := g.Value.Parse(src)
	if err != nil {
		if g.state.exceeded {
			msg := fmt.Sprintf("%s %d", ErrTooDeep, p.maxDepth)
			return nil, newSyntaxError(src, text.Consumed(src, g.state.deep), msg, ErrTooDeep)
		}
		if g.state.far != nil {
			err = g.state.far
		}
		offset, ok := text.Offset(src, err)
		if !ok {
			offset = 0
		}
		return nil, newSyntaxError(src, offset, "invalid value: "+err.Error(), err)
	}
	if rest != "" {
		return nil, newSyntaxError(src, text.Consumed(src, rest), fmt.Sprintf("unexpected %q after value", firstRune(rest)), nil)
	}
	return v, nil
}

func newSyntaxError(src string, offset int, msg string, err error) *SyntaxError {
	pos := text.Position(src, offset)
	return &SyntaxError{Offset: offset, Line: pos.Line, Column: pos.Column, Msg: msg, Err: err}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

var defaultParser = sync.OnceValue(func() *Parser { return NewParser() })

// Parse parses src with a shared untraced Parser.
func Parse(src string) (Value, error) {
	return defaultParser().Parse(src)
}
