// Package toml provides the TOML codec backed by github.com/pelletier/go-toml/v2.
//
// TOML tables carry no usable order through the decoder, so decoded mappings
// list their keys sorted.
package toml

import (
	"bytes"
	"fmt"

	"github.com/0xalexb/anyconf/codec"
	"github.com/0xalexb/anyconf/processor"
	"github.com/0xalexb/anyconf/tree"

	"github.com/pelletier/go-toml/v2"
)

// Type is the processor type of the codec.
const Type = "toml"

// Codec implements codec.Codec for TOML.
type Codec struct {
	processor.Base
}

// New creates the TOML codec.
func New() *Codec {
	return &Codec{Base: processor.NewBase("toml.pelletier", Type, 30, "toml")}
}

// Decode parses data into a tree.
func (c *Codec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, codec.ErrEmptyData
	}

	var raw map[string]any

	err := toml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	return tree.FromPlain(raw), nil
}

// Encode renders a mapping as a TOML document.
func (c *Codec) Encode(v any) ([]byte, error) {
	if _, ok := tree.AsMapping(v); !ok {
		return nil, fmt.Errorf("%w: toml documents must be tables, got %T", codec.ErrUnsupportedValue, v)
	}

	var buf bytes.Buffer

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)

	err := enc.Encode(tree.ToPlain(v))
	if err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}

	return buf.Bytes(), nil
}
