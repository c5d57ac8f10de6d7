// Package codec defines the contract between format handlers and the loader.
//
// A Codec is a processor.Processor that can also turn bytes into a tree and
// back. Decoders return ordered tree values (*tree.Map for mappings, []any for
// sequences) so that key order survives a load/dump round trip wherever the
// format allows it.
package codec

import (
	"errors"
	"fmt"

	"github.com/0xalexb/anyconf/processor"
	"github.com/0xalexb/anyconf/tree"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrUnsupportedValue is returned by encoders for values the format cannot
// represent, e.g. nested mappings in a flat key/value format.
var ErrUnsupportedValue = errors.New("unsupported value")

// ErrNotCodec is returned by As for processors that cannot load or dump.
var ErrNotCodec = errors.New("processor is not a codec")

// Codec decodes and encodes one format.
type Codec interface {
	processor.Processor
	Decode(data []byte) (any, error)
	Encode(v any) ([]byte, error)
}

// As returns p as a Codec.
func As(p processor.Processor) (Codec, error) {
	c, ok := p.(Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotCodec, processor.IDOf(p))
	}

	return c, nil
}

// ScalarText renders value for flat key/value formats. Mappings and
// sequences are rejected, nil renders as an empty string.
func ScalarText(key string, value any) (string, error) {
	if _, isMap := tree.AsMapping(value); isMap {
		return "", fmt.Errorf("%w: %q holds a mapping", ErrUnsupportedValue, key)
	}

	if _, isSeq := tree.AsSequence(value); isSeq {
		return "", fmt.Errorf("%w: %q holds a list", ErrUnsupportedValue, key)
	}

	if value == nil {
		return "", nil
	}

	return fmt.Sprint(value), nil
}
