package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/parcomb/jsonvalue"
)

// LineEncoder writes one tab-separated line per value: its path from the
// root, its kind and, for scalars, its value. Paths use $ for the root,
// .key for members and [i] for elements.
type LineEncoder struct {
	w     io.Writer
	value jsonvalue.Value
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(v jsonvalue.Value) error {
	e.value = v
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if err := e.writeValue(&sb, "$", e.value); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeValue(sb *strings.Builder, path string, v jsonvalue.Value) error {
	switch v := v.(type) {
	case nil, jsonvalue.Null:
		fmt.Fprintf(sb, "%s\tnull\n", path)
	case jsonvalue.Bool:
		fmt.Fprintf(sb, "%s\tbool\t%t\n", path, bool(v))
	case jsonvalue.Number:
		fmt.Fprintf(sb, "%s\tnumber\t%s\n", path, strconv.FormatFloat(float64(v), 'g', -1, 64))
	case jsonvalue.String:
		fmt.Fprintf(sb, "%s\tstring\t%q\n", path, string(v))
	case jsonvalue.Array:
		fmt.Fprintf(sb, "%s\tarray\t%d\n", path, len(v))
		for i, elem := range v {
			if err := e.writeValue(sb, fmt.Sprintf("%s[%d]", path, i), elem); err != nil {
				return err
			}
		}
	case jsonvalue.Object:
		fmt.Fprintf(sb, "%s\tobject\t%d\n", path, len(v))
		for _, m := range v {
			if err := e.writeValue(sb, path+memberPath(m.Key), m.Value); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported value %T", v)
	}
	return nil
}

func memberPath(key string) string {
	if key != "" && strings.IndexFunc(key, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) < 0 {
		return "." + key
	}
	return "[" + strconv.Quote(key) + "]"
}
