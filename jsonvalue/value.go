// Package jsonvalue parses JSON documents with a grammar written in parser
// combinators.
package jsonvalue

// Value is one of Null, Bool, Number, String, Array or Object.
type Value interface {
	Kind() Kind
}

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{"null", "bool", "number", "string", "array", "object"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

type (
	Null   struct{}
	Bool   bool
	Number float64
	String string
	Array  []Value
	// Object keeps its members in document order. Duplicate keys are kept.
	Object []Member
)

// Member is a key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

// Get returns the value of the last member named key.
func (o Object) Get(key string) (Value, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the member keys in document order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}
