package jsonvalue

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/dhamidi/parcomb/parser"
	"github.com/dhamidi/parcomb/text"
	"github.com/tliron/commonlog"
)

// MaxDepth is the default limit on nested arrays and objects.
const MaxDepth = 10000

var (
	numberToken = text.MustRegexp(`-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?`)
	stringToken = text.MustRegexp(`"(?:[^"\\\x00-\x1f]|\\(?:["\\/bfnrt]|u[0-9a-fA-F]{4}))*"`)
)

// state is the bookkeeping of a single parse.
type state struct {
	maxDepth int
	depth    int

	// deep is the remaining input where maxDepth was exceeded.
	deep     string
	exceeded bool

	// far is the recorded failure that got farthest into the input.
	far *text.MismatchError
}

func (s *state) fail(err error) {
	var me *text.MismatchError
	if !errors.As(err, &me) {
		return
	}
	if s.far == nil || len(me.Input) < len(s.far.Input) {
		s.far = me
	}
}

func record[O any](s *state, p parser.Parser[string, O]) parser.Parser[string, O] {
	return parser.Func[string, O](func(input string) (O, string, error) {
		v, rest, err := p.Parse(input)
		if err != nil {
			s.fail(err)
		}
		return v, rest, err
	})
}

// nest counts p as one more level of container nesting and fails instead
// of going past maxDepth.
func (s *state) nest(p parser.Parser[string, Value]) parser.Parser[string, Value] {
	return parser.Func[string, Value](func(input string) (Value, string, error) {
		if s.depth >= s.maxDepth {
			if !s.exceeded {
				s.exceeded, s.deep = true, input
			}
			return nil, input, ErrTooDeep
		}
		s.depth++
		defer func() { s.depth-- }()
		return p.Parse(input)
	})
}

// Grammar holds the rules of the JSON grammar. Every rule skips the
// whitespace that follows it; Value also skips leading whitespace.
//
// A Grammar tracks nesting depth while it parses and must not be used by
// several goroutines at once. Parser builds one per call.
type Grammar struct {
	Null   parser.Parser[string, Value]
	Bool   parser.Parser[string, Value]
	Number parser.Parser[string, Value]
	String parser.Parser[string, Value]
	Array  parser.Parser[string, Value]
	Object parser.Parser[string, Value]
	Value  parser.Ref[string, Value]

	state *state
}

// NewGrammar builds the JSON grammar with the default depth limit. When log
// is non-nil each rule is traced at debug level.
func NewGrammar(log commonlog.Logger) *Grammar {
	return newGrammar(log, MaxDepth)
}

func newGrammar(log commonlog.Logger, maxDepth int) *Grammar {
	s := &state{maxDepth: maxDepth}
	ws := text.Spaces()
	g := &Grammar{Value: parser.NewRef[string, Value](), state: s}

	rule := func(name string, p parser.Parser[string, Value]) parser.Parser[string, Value] {
		return parser.Trace(log, name, record(s, parser.AndL(p, ws)))
	}

	g.Null = rule("null", parser.Map(text.Literal("null"), func(string) Value { return Null{} }))

	g.Bool = rule("bool", parser.Or(
		parser.Map(text.Literal("true"), func(string) Value { return Bool(true) }),
		parser.Map(text.Literal("false"), func(string) Value { return Bool(false) }),
	))

	// The pattern admits only valid JSON numbers, so ParseFloat cannot
	// fail on syntax; out of range values become ±Inf.
	g.Number = rule("number", parser.Map(numberToken, func(lit string) Value {
		f, _ := strconv.ParseFloat(lit, 64)
		return Number(f)
	}))

	str := parser.Map(stringToken, unquote)
	g.String = rule("string", parser.Map(str, func(v string) Value { return String(v) }))

	var value parser.Parser[string, Value] = g.Value
	comma := text.Token(",")

	g.Array = rule("array", s.nest(parser.Map(
		parser.AndR(text.Token("["), parser.AndL(parser.ListSepOrEmpty(value, comma), text.Literal("]"))),
		func(vs []Value) Value { return Array(vs) },
	)))

	member := record(s, parser.Map(
		parser.And(parser.AndL(str, text.Token(":")), value),
		func(p parser.Pair[string, Value]) Member { return Member{Key: p.Left, Value: p.Right} },
	))
	g.Object = rule("object", s.nest(parser.Map(
		parser.AndR(text.Token("{"), parser.AndL(parser.ListSepOrEmpty(member, comma), text.Literal("}"))),
		func(ms []Member) Value { return Object(ms) },
	)))

	g.Value.Bind(parser.AndR(ws, record(s, g.dispatch())))
	return g
}

// dispatch picks the only rule that can match from the first byte of the
// input, so a failure is reported by the rule that was meant to match.
func (g *Grammar) dispatch() parser.Parser[string, Value] {
	return parser.Func[string, Value](func(input string) (Value, string, error) {
		var p parser.Parser[string, Value]
		if input != "" {
			switch c := input[0]; {
			case c == '{':
				p = g.Object
			case c == '[':
				p = g.Array
			case c == '"':
				p = g.String
			case c == '-' || c >= '0' && c <= '9':
				p = g.Number
			case c == 't' || c == 'f':
				p = g.Bool
			case c == 'n':
				p = g.Null
			}
		}
		if p == nil {
			return nil, input, &text.MismatchError{Kind: "value", Want: "value", Input: input}
		}
		return p.Parse(input)
	})
}

// unquote decodes a string literal already validated by stringToken.
func unquote(lit string) string {
	var s string
	if err := json.Unmarshal([]byte(lit), &s); err != nil {
		// unreachable for literals accepted by stringToken
		return lit[1 : len(lit)-1]
	}
	return s
}
