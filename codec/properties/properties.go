// Package properties provides the Java properties codec backed by
// github.com/magiconair/properties.
package properties

import (
	"bytes"
	"fmt"

	"github.com/0xalexb/anyconf/codec"
	"github.com/0xalexb/anyconf/processor"
	"github.com/0xalexb/anyconf/tree"

	"github.com/magiconair/properties"
)

// Type is the processor type of the codec.
const Type = "properties"

// Codec implements codec.Codec for .properties files. ${key} references are
// kept verbatim.
type Codec struct {
	processor.Base

	ParseValues bool
}

// New creates the properties codec.
func New() *Codec {
	return &Codec{Base: processor.NewBase("properties.magiconair", Type, 20, "properties", "props")}
}

// Decode parses data into a flat mapping in file order.
func (c *Codec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, codec.ErrEmptyData
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}

	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}

	out := tree.NewMap()

	for _, key := range props.Keys() {
		raw, _ := props.Get(key)

		if c.ParseValues {
			out.Set(key, tree.ParseScalar(raw))

			continue
		}

		out.Set(key, raw)
	}

	return out, nil
}

// Encode renders a flat mapping. Nested values are rejected.
func (c *Codec) Encode(v any) ([]byte, error) {
	root, ok := tree.AsMapping(v)
	if !ok {
		return nil, fmt.Errorf("%w: properties documents must be mappings, got %T", codec.ErrUnsupportedValue, v)
	}

	props := properties.NewProperties()
	props.DisableExpansion = true

	for _, key := range root.Keys() {
		value, _ := root.Get(key)

		text, err := codec.ScalarText(key, value)
		if err != nil {
			return nil, err
		}

		_, _, err = props.Set(key, text)
		if err != nil {
			return nil, fmt.Errorf("encode properties: key %q: %w", key, err)
		}
	}

	var buf bytes.Buffer

	_, err := props.Write(&buf, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("encode properties: %w", err)
	}

	return buf.Bytes(), nil
}
