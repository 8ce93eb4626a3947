// Package format renders parsed JSON values in several output formats.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/parcomb/jsonvalue"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(v jsonvalue.Value) error
}

// Names lists the formats accepted by NewEncoder.
var Names = []string{"json", "yaml", "line"}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
