package parser

import "github.com/tliron/commonlog"

type traceParser[I, O any] struct {
	log  commonlog.Logger
	name string
	p    Parser[I, O]
}

// Trace wraps p so every attempt is logged at debug level under name.
// The outcome of p is passed through untouched.
func Trace[I, O any](log commonlog.Logger, name string, p Parser[I, O]) Parser[I, O] {
	if log == nil {
		return p
	}
	return &traceParser[I, O]{log: log, name: name, p: p}
}

func (t *traceParser[I, O]) Parse(input I) (O, I, error) {
	if !t.log.AllowLevel(commonlog.Debug) {
		return t.p.Parse(input)
	}
	v, rest, err := t.p.Parse(input)
	if err != nil {
		t.log.Debugf("%s: failed: %s", t.name, err)
	} else {
		t.log.Debugf("%s: matched %v", t.name, v)
	}
	return v, rest, err
}
