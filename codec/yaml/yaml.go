package yaml

import (
	"bytes"
	"fmt"
	"math"

	"github.com/0xalexb/anyconf/codec"
	"github.com/0xalexb/anyconf/processor"
	"github.com/0xalexb/anyconf/tree"

	"github.com/goccy/go-yaml"
)

// Type is the processor type of the codec.
const Type = "yaml"

// Codec implements codec.Codec for YAML.
type Codec struct {
	processor.Base

	Indent int
}

// New creates the YAML codec.
func New() *Codec {
	return &Codec{
		Base:   processor.NewBase("yaml.goccy", Type, 30, "yaml", "yml"),
		Indent: 2,
	}
}

// Decode parses the first document in data into an ordered tree.
func (c *Codec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, codec.ErrEmptyData
	}

	var raw any

	err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return fromYAML(raw), nil
}

// Encode renders v as YAML.
func (c *Codec) Encode(v any) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(toYAML(v), yaml.Indent(c.Indent), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

func fromYAML(v any) any {
	switch val := v.(type) {
	case yaml.MapSlice:
		out := tree.NewMap()
		for _, item := range val {
			out.Set(fmt.Sprint(item.Key), fromYAML(item.Value))
		}

		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromYAML(item)
		}

		return out
	case map[string]any, map[any]any:
		return fromYAML(toYAML(tree.FromPlain(val)))
	case uint64:
		if val <= math.MaxInt64 {
			return int64(val)
		}

		return val
	case int:
		return int64(val)
	default:
		return v
	}
}

func toYAML(v any) any {
	if m, ok := tree.AsMapping(v); ok {
		keys := m.Keys()

		out := make(yaml.MapSlice, 0, len(keys))
		for _, key := range keys {
			val, _ := m.Get(key)
			out = append(out, yaml.MapItem{Key: key, Value: toYAML(val)})
		}

		return out
	}

	if s, ok := tree.AsSequence(v); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = toYAML(item)
		}

		return out
	}

	return v
}
