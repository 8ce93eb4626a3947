package format

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dhamidi/parcomb/jsonvalue"
	"gopkg.in/yaml.v3"
)

// YAMLEncoder writes values as a YAML document. Object member order is kept.
type YAMLEncoder struct {
	w     io.Writer
	value jsonvalue.Value
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(v jsonvalue.Value) error {
	e.value = v
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	node, err := yamlNode(e.value)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func yamlNode(v jsonvalue.Value) (*yaml.Node, error) {
	switch v := v.(type) {
	case nil, jsonvalue.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case jsonvalue.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(v))}, nil
	case jsonvalue.Number:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			// whole numbers are written out in full; 'g' would use an exponent
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatFloat(f, 'f', -1, 64)}, nil
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlSpecialFloat(f)}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(f, 'g', -1, 64)}, nil
	case jsonvalue.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}, nil
	case jsonvalue.Array:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range v {
			n, err := yamlNode(elem)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case jsonvalue.Object:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, member := range v {
			n, err := yamlNode(member.Value)
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: member.Key}
			m.Content = append(m.Content, key, n)
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported value %T", v)
}

func yamlSpecialFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return ".nan"
}
