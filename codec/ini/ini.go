// Package ini provides the INI codec backed by gopkg.in/ini.v1.
//
// Each section becomes a nested mapping under its name; keys outside any
// section land under "DEFAULT". Values are strings unless ParseValues is set,
// in which case they go through tree.ParseScalar.
package ini

import (
	"bytes"
	"fmt"

	"github.com/0xalexb/anyconf/codec"
	"github.com/0xalexb/anyconf/processor"
	"github.com/0xalexb/anyconf/tree"

	"gopkg.in/ini.v1"
)

// Type is the processor type of the codec.
const Type = "ini"

// Codec implements codec.Codec for INI files.
type Codec struct {
	processor.Base

	ParseValues bool
}

// New creates the INI codec.
func New() *Codec {
	return &Codec{Base: processor.NewBase("ini.go-ini", Type, 20, "ini", "cfg", "conf")}
}

// Decode parses data into a tree of sections.
func (c *Codec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, codec.ErrEmptyData
	}

	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("decode ini: %w", err)
	}

	out := tree.NewMap()

	for _, section := range file.Sections() {
		keys := section.Keys()
		if len(keys) == 0 && section.Name() == ini.DefaultSection {
			continue
		}

		values := tree.NewMap()
		for _, key := range keys {
			values.Set(key.Name(), c.value(key.Value()))
		}

		out.Set(section.Name(), values)
	}

	return out, nil
}

func (c *Codec) value(raw string) any {
	if c.ParseValues {
		return tree.ParseScalar(raw)
	}

	return raw
}

// Encode renders a mapping as INI. Top-level scalars go into the default
// section, top-level mappings become sections; anything nested deeper is
// rejected.
func (c *Codec) Encode(v any) ([]byte, error) {
	root, ok := tree.AsMapping(v)
	if !ok {
		return nil, fmt.Errorf("%w: ini documents must be mappings, got %T", codec.ErrUnsupportedValue, v)
	}

	file := ini.Empty()

	for _, name := range root.Keys() {
		value, _ := root.Get(name)

		section, isSection := tree.AsMapping(value)
		if !isSection {
			err := addKey(file.Section(ini.DefaultSection), name, value)
			if err != nil {
				return nil, err
			}

			continue
		}

		target, err := file.NewSection(name)
		if err != nil {
			return nil, fmt.Errorf("encode ini: section %q: %w", name, err)
		}

		for _, key := range section.Keys() {
			val, _ := section.Get(key)

			err := addKey(target, key, val)
			if err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer

	_, err := file.WriteTo(&buf)
	if err != nil {
		return nil, fmt.Errorf("encode ini: %w", err)
	}

	return buf.Bytes(), nil
}

func addKey(section *ini.Section, key string, value any) error {
	text, err := codec.ScalarText(section.Name()+"."+key, value)
	if err != nil {
		return err
	}

	_, err = section.NewKey(key, text)
	if err != nil {
		return fmt.Errorf("encode ini: key %q: %w", key, err)
	}

	return nil
}
