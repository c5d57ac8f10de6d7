// Package json provides the JSON codec.
//
// Objects decode into *tree.Map keeping their key order; numbers decode into
// int64 when they are integral and fit, float64 otherwise.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/0xalexb/anyconf/codec"
	"github.com/0xalexb/anyconf/processor"
	"github.com/0xalexb/anyconf/tree"
)

// Type is the processor type of the codec.
const Type = "json"

var errTrailingData = errors.New("trailing data after JSON value")

// Codec implements codec.Codec for JSON.
type Codec struct {
	processor.Base

	Indent string
}

// New creates the JSON codec. Output is indented with two spaces.
func New() *Codec {
	return &Codec{
		Base:   processor.NewBase("json.stdlib", Type, 30, "json", "jsn", "js"),
		Indent: "  ",
	}
}

// Decode parses data into an ordered tree.
func (c *Codec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, codec.ErrEmptyData
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	_, err = dec.Token()
	if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: %w", errTrailingData)
	}

	return value, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		return number(t), nil
	default:
		return t, nil
	}
}

func decodeObject(dec *json.Decoder) (*tree.Map, error) {
	out := tree.NewMap()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		out.Set(key, value)
	}

	_, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return out, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	out := []any{}

	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		out = append(out, value)
	}

	_, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return out, nil
}

func number(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}

	if f, err := n.Float64(); err == nil {
		return f
	}

	return n.String()
}

// Encode renders v as JSON followed by a newline.
func (c *Codec) Encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", c.Indent)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}

	return append(data, '\n'), nil
}
