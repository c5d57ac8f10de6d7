// Package schema validates configuration trees against JSON Schema documents
// and infers schemas from example data.
//
// Validation is delegated to github.com/santhosh-tekuri/jsonschema/v5. Both
// the schema and the instance are normalized through encoding/json first so
// that trees from any codec (int64 numbers, ordered maps) reach the validator
// as plain JSON values.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/0xalexb/anyconf/tree"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidSchema is returned when the schema document does not compile.
var ErrInvalidSchema = errors.New("invalid schema")

// ErrValidation is returned when data does not satisfy the schema.
var ErrValidation = errors.New("validation failed")

const schemaURL = "anyconf://schema.json"

// Validate checks data against schemaDoc, itself a decoded JSON Schema.
func Validate(data, schemaDoc any) error {
	compiled, err := Compile(schemaDoc)
	if err != nil {
		return err
	}

	return ValidateWith(compiled, data)
}

// Compile turns a decoded JSON Schema document into a reusable validator.
func Compile(schemaDoc any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schemaDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	compiler := jsonschema.NewCompiler()

	err = compiler.AddResource(schemaURL, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	return compiled, nil
}

// ValidateWith checks data against an already compiled schema.
func ValidateWith(compiled *jsonschema.Schema, data any) error {
	instance, err := normalize(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	err = compiled.Validate(instance)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

func normalize(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("normalize instance: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any

	err = dec.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("normalize instance: %w", err)
	}

	return out, nil
}

// Generate infers a JSON Schema describing data. Mappings list their
// properties, sequences describe their items from the first element.
func Generate(data any) *tree.Map {
	out := tree.NewMap()
	out.Set("$schema", "http://json-schema.org/draft-07/schema#")

	described := describe(data)
	for _, key := range described.Keys() {
		value, _ := described.Get(key)
		out.Set(key, value)
	}

	return out
}

func describe(v any) *tree.Map {
	out := tree.NewMap()

	if m, ok := tree.AsMapping(v); ok {
		out.Set("type", "object")

		props := tree.NewMap()
		for _, key := range m.Keys() {
			val, _ := m.Get(key)
			props.Set(key, describe(val))
		}

		out.Set("properties", props)

		return out
	}

	if s, ok := tree.AsSequence(v); ok {
		out.Set("type", "array")

		if len(s) > 0 {
			out.Set("items", describe(s[0]))
		}

		return out
	}

	out.Set("type", scalarType(v))

	return out
}

func scalarType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64, json.Number:
		return "number"
	default:
		return "string"
	}
}
