package parser_test

import (
	"errors"
	"strconv"
	"testing"
	"unsafe"

	"github.com/dhamidi/parcomb/parser"
	"github.com/dhamidi/parcomb/text"
)

// sameString reports whether a and b are the same slice of memory, not just
// equal content.
func sameString(a, b string) bool {
	return len(a) == len(b) && unsafe.StringData(a) == unsafe.StringData(b)
}

var errNope = errors.New("nope")

func TestLiteral(t *testing.T) {
	tests := []struct {
		lit, input string
		ok         bool
		rest       string
	}{
		{"abc", "abcdef", true, "def"},
		{"abc", "abc", true, ""},
		{"", "xyz", true, "xyz"},
		{"abc", "ab", false, "ab"},
		{"abc", "xabc", false, "xabc"},
	}

	for _, tt := range tests {
		t.Run(tt.lit+"/"+tt.input, func(t *testing.T) {
			v, rest, err := parser.Parse(text.Literal(tt.lit), tt.input)
			if tt.ok != (err == nil) {
				t.Fatalf("got err %v, want ok=%v", err, tt.ok)
			}
			if rest != tt.rest {
				t.Errorf("rest = %q, want %q", rest, tt.rest)
			}
			if tt.ok && v != tt.lit {
				t.Errorf("value = %q, want %q", v, tt.lit)
			}
		})
	}
}

func TestMap(t *testing.T) {
	p := parser.Map(text.MustRegexp(`\d+`), func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	})

	v, rest, err := p.Parse("123abc")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v != 123 || rest != "abc" {
		t.Errorf("got (%d, %q), want (123, \"abc\")", v, rest)
	}

	_, rest, err = p.Parse("abc")
	if err == nil {
		t.Fatal("expected failure")
	}
	if rest != "abc" {
		t.Errorf("rest = %q, want original input", rest)
	}
}

func TestAnd(t *testing.T) {
	p := parser.And(text.Literal("abc"), text.Literal("def"))

	v, rest, err := p.Parse("abcdefg")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v.Left != "abc" || v.Right != "def" || rest != "g" {
		t.Errorf("got (%v, %q)", v, rest)
	}

	for _, input := range []string{"xxxx", "abcxxx"} {
		_, rest, err := p.Parse(input)
		if err == nil {
			t.Errorf("%q: expected failure", input)
		}
		if !sameString(rest, input) {
			t.Errorf("%q: failure must hand back the original input, got %q", input, rest)
		}
	}
}

func TestAndLeftRight(t *testing.T) {
	left := parser.AndL(text.Literal("abc"), text.Literal("def"))
	right := parser.AndR(text.Literal("abc"), text.Literal("def"))

	v, rest, err := left.Parse("abcdefg")
	if err != nil || v != "abc" || rest != "g" {
		t.Errorf("AndL = (%q, %q, %v), want (\"abc\", \"g\", nil)", v, rest, err)
	}
	v, rest, err = right.Parse("abcdefg")
	if err != nil || v != "def" || rest != "g" {
		t.Errorf("AndR = (%q, %q, %v), want (\"def\", \"g\", nil)", v, rest, err)
	}

	if _, _, err := left.Parse("xxxx"); err == nil {
		t.Error("AndL: expected failure")
	}
	if _, _, err := right.Parse("abcxxx"); err == nil {
		t.Error("AndR: expected failure")
	}
}

func TestAndPropagatesFirstError(t *testing.T) {
	p := parser.And(parser.Fail[string, string](errNope), text.Literal("a"))
	if _, _, err := p.Parse("a"); !errors.Is(err, errNope) {
		t.Errorf("err = %v, want %v", err, errNope)
	}
}

func TestOrIsOrdered(t *testing.T) {
	short := text.Literal("ab")
	long := text.Literal("abc")

	v, rest, err := parser.Or(short, long).Parse("abcd")
	if err != nil || v != "ab" || rest != "cd" {
		t.Errorf("got (%q, %q, %v), want first alternative", v, rest, err)
	}

	v, rest, err = parser.Or(parser.Fail[string, string](nil), long).Parse("abcd")
	if err != nil || v != "abc" || rest != "d" {
		t.Errorf("Or(fail, p) = (%q, %q, %v), want p's result", v, rest, err)
	}
}

func TestOrRetriesOriginalInput(t *testing.T) {
	// The first alternative consumes "a" before failing; the second must
	// still see the "a".
	first := parser.And(text.Literal("a"), text.Literal("x"))
	second := parser.And(text.Literal("a"), text.Literal("b"))

	v, rest, err := parser.Or(first, second).Parse("abc")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v.Right != "b" || rest != "c" {
		t.Errorf("got (%v, %q)", v, rest)
	}
}

func TestOrReturnsLastError(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")
	p := parser.Or(parser.Fail[string, int](errFirst), parser.Fail[string, int](errSecond))

	_, rest, err := p.Parse("input")
	if !errors.Is(err, errSecond) {
		t.Errorf("err = %v, want %v", err, errSecond)
	}
	if rest != "input" {
		t.Errorf("rest = %q, want original input", rest)
	}
}

func TestChoice(t *testing.T) {
	p := parser.Choice(text.Literal("a"), text.Literal("b"), text.Literal("c"))
	for _, input := range []string{"a", "b", "c"} {
		v, _, err := p.Parse(input)
		if err != nil || v != input {
			t.Errorf("%q: got (%q, %v)", input, v, err)
		}
	}
	if _, _, err := p.Parse("d"); err == nil {
		t.Error("expected failure")
	}
	if _, _, err := parser.Choice[string, string]().Parse("a"); !errors.Is(err, parser.ErrFailed) {
		t.Errorf("empty choice: err = %v, want ErrFailed", err)
	}
}

func TestRepeat(t *testing.T) {
	p := parser.Repeat(text.Literal("ab"))

	v, rest, err := p.Parse("ababx")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(v) != 2 || rest != "x" {
		t.Errorf("got (%v, %q)", v, rest)
	}

	input := "xyz"
	v, rest, err = p.Parse(input)
	if err != nil {
		t.Fatalf("repeat must not fail: %v", err)
	}
	if v == nil || len(v) != 0 {
		t.Errorf("value = %#v, want empty slice", v)
	}
	if !sameString(rest, input) {
		t.Errorf("rest must be the original input")
	}
}

func TestRepeat1(t *testing.T) {
	p := parser.Repeat1(text.Literal("ab"))

	v, rest, err := p.Parse("ababab")
	if err != nil || len(v) != 3 || rest != "" {
		t.Errorf("got (%v, %q, %v)", v, rest, err)
	}

	_, rest, err = p.Parse("xyz")
	var me *text.MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want the child's mismatch", err)
	}
	if rest != "xyz" {
		t.Errorf("rest = %q, want original input", rest)
	}
}

func TestRepeatIsGreedy(t *testing.T) {
	// "a"* consumes every "a", leaving nothing for the final "a".
	p := parser.And(parser.Repeat(text.Literal("a")), text.Literal("a"))
	if _, _, err := p.Parse("aaa"); err == nil {
		t.Error("expected greedy repetition to starve the following parser")
	}
}

func TestOpt(t *testing.T) {
	p := parser.Opt(text.Literal("abc"))

	v, rest, err := p.Parse("abcd")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, ok := v.Get(); !ok || got != "abc" || rest != "d" {
		t.Errorf("got (%v, %q)", v, rest)
	}

	input := "xxxx"
	v, rest, err = p.Parse(input)
	if err != nil {
		t.Fatalf("opt must absorb failure: %v", err)
	}
	if v.Present {
		t.Errorf("value = %v, want absent", v)
	}
	if !sameString(rest, input) {
		t.Errorf("rest must be the original input, not a copy")
	}
	if v.OrElse("def") != "def" {
		t.Errorf("OrElse on absent value")
	}
}

func TestSkip(t *testing.T) {
	p := parser.Skip(text.Literal("abc"))

	v, rest, err := p.Parse("abcd")
	if err != nil || v != (parser.Unit{}) || rest != "d" {
		t.Errorf("got (%v, %q, %v)", v, rest, err)
	}
	if _, _, err := p.Parse("xxxx"); err == nil {
		t.Error("expected failure")
	}
}

func TestSucceed(t *testing.T) {
	v, rest, err := parser.Succeed[string](42).Parse("abc")
	if err != nil || v != 42 || rest != "abc" {
		t.Errorf("got (%d, %q, %v)", v, rest, err)
	}
}

func TestFunc(t *testing.T) {
	first := parser.Func[string, byte](func(input string) (byte, string, error) {
		if input == "" {
			return 0, input, errNope
		}
		return input[0], input[1:], nil
	})

	v, rest, err := parser.Repeat[string, byte](first).Parse("xyz")
	if err != nil || string(v) != "xyz" || rest != "" {
		t.Errorf("got (%q, %q, %v)", v, rest, err)
	}
}
