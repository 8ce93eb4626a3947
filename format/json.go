package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dhamidi/parcomb/jsonvalue"
)

// JSONEncoder writes values as indented JSON, keeping object members in
// document order.
type JSONEncoder struct {
	w      io.Writer
	value  jsonvalue.Value
	Indent string
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w, Indent: "  "}
}

func (e *JSONEncoder) Encode(v jsonvalue.Value) error {
	e.value = v
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	var compact bytes.Buffer
	if err := appendJSON(&compact, e.value); err != nil {
		return nil, err
	}
	if e.Indent == "" {
		compact.WriteByte('\n')
		return compact.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", e.Indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v jsonvalue.Value) error {
	switch v := v.(type) {
	case nil, jsonvalue.Null:
		buf.WriteString("null")
	case jsonvalue.Bool:
		buf.WriteString(strconv.FormatBool(bool(v)))
	case jsonvalue.Number:
		f := float64(v)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return fmt.Errorf("number %v cannot be encoded as JSON", f)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case jsonvalue.String:
		appendString(buf, string(v))
	case jsonvalue.Array:
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case jsonvalue.Object:
		buf.WriteByte('{')
		for i, m := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			appendString(buf, m.Key)
			buf.WriteByte(':')
			if err := appendJSON(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value %T", v)
	}
	return nil
}

func appendString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encode cannot fail for a string.
	_ = enc.Encode(s)
	// drop the newline written by Encode
	buf.Truncate(buf.Len() - 1)
}
