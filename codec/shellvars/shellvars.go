// Package shellvars provides a codec for shell variable assignment files
// (KEY=value lines, as in .env files) backed by github.com/subosito/gotenv.
//
// Variable references are expanded against earlier assignments in the same
// file, never against the process environment.
package shellvars

import (
	"bytes"
	"fmt"

	"github.com/0xalexb/anyconf/codec"
	"github.com/0xalexb/anyconf/processor"
	"github.com/0xalexb/anyconf/tree"

	"github.com/subosito/gotenv"
)

// Type is the processor type of the codec.
const Type = "shellvars"

// Codec implements codec.Codec for shell variable files.
type Codec struct {
	processor.Base

	ParseValues bool
}

// New creates the shellvars codec.
func New() *Codec {
	return &Codec{Base: processor.NewBase("shellvars.gotenv", Type, 20, "sh", "env")}
}

// Decode parses assignments into a flat mapping with sorted keys.
func (c *Codec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, codec.ErrEmptyData
	}

	env, err := gotenv.StrictParse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode shellvars: %w", err)
	}

	plain := make(map[string]any, len(env))
	for key, value := range env {
		if c.ParseValues {
			plain[key] = tree.ParseScalar(value)

			continue
		}

		plain[key] = value
	}

	return tree.FromPlain(plain), nil
}

// Encode renders a flat mapping as quoted assignments sorted by name.
func (c *Codec) Encode(v any) ([]byte, error) {
	root, ok := tree.AsMapping(v)
	if !ok {
		return nil, fmt.Errorf("%w: shellvars documents must be mappings, got %T", codec.ErrUnsupportedValue, v)
	}

	env := make(gotenv.Env)

	for _, key := range root.Keys() {
		value, _ := root.Get(key)

		text, err := codec.ScalarText(key, value)
		if err != nil {
			return nil, err
		}

		env[key] = text
	}

	out, err := gotenv.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode shellvars: %w", err)
	}

	return []byte(out + "\n"), nil
}
