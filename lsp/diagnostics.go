package lsp

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/parcomb/jsonvalue"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "parcomb"

// diagnose parses text and reports at most one syntax error.
func (ls *Server) diagnose(text string) []protocol.Diagnostic {
	_, err := ls.parser.Parse(text)
	if err == nil {
		return []protocol.Diagnostic{}
	}

	var se *jsonvalue.SyntaxError
	if !errors.As(err, &se) {
		return []protocol.Diagnostic{newDiagnostic(protocol.Range{}, err.Error())}
	}

	start := offsetPosition(text, se.Offset)
	end := start
	if r, _ := utf8.DecodeRuneInString(text[min(se.Offset, len(text)):]); r != utf8.RuneError && r != '\n' {
		end.Character += protocol.UInteger(utf16.RuneLen(r))
	}
	return []protocol.Diagnostic{newDiagnostic(protocol.Range{Start: start, End: end}, se.Msg)}
}

func newDiagnostic(r protocol.Range, msg string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource
	return protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}

// offsetPosition converts a byte offset into a zero-based LSP position whose
// character counts UTF-16 code units.
func offsetPosition(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line := strings.Count(before, "\n")
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(utf16Len(before)),
	}
}

func endPosition(text string) protocol.Position {
	return offsetPosition(text, len(text))
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
