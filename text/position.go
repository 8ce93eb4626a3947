package text

import (
	"errors"
	"fmt"
	"strings"
)

// Pos is a line and column in a source text, both starting at 1.
// Columns count bytes.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Position returns the position of offset in src.
func Position(src string, offset int) Pos {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		col = offset - i
	}
	return Pos{Offset: offset, Line: line, Column: col}
}

// Consumed returns how much of src was consumed when rest was left over.
// rest must be a suffix of src, as returned by a parser run on src.
func Consumed(src, rest string) int {
	return len(src) - len(rest)
}

// Offset reports the byte offset in src at which err occurred, when err wraps
// a *MismatchError produced while parsing src.
func Offset(src string, err error) (int, bool) {
	var me *MismatchError
	if !errors.As(err, &me) || len(me.Input) > len(src) {
		return 0, false
	}
	return Consumed(src, me.Input), true
}
