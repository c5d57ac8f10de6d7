package processor

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MinPriority and MaxPriority bound Processor.Priority.
const (
	MinPriority = 0
	MaxPriority = 99
)

// ErrInvalidArgument is returned when a lookup or listing is called with
// arguments it cannot work with.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnknownProcessorType is matched by UnknownProcessorTypeError.
var ErrUnknownProcessorType = errors.New("unknown processor type")

// ErrUnknownFileType is matched by UnknownFileTypeError.
var ErrUnknownFileType = errors.New("unknown file type")

// UnknownProcessorTypeError reports a type or id no candidate answers to.
type UnknownProcessorTypeError struct {
	Type string
}

func (e *UnknownProcessorTypeError) Error() string {
	return fmt.Sprintf("unknown processor type: %q", e.Type)
}

// Is matches ErrUnknownProcessorType.
func (e *UnknownProcessorTypeError) Is(target error) bool {
	return target == ErrUnknownProcessorType
}

// UnknownFileTypeError reports a file extension no candidate claims.
type UnknownFileTypeError struct {
	Ext  string
	Path string
}

func (e *UnknownFileTypeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("unknown file type: %q (extension %q)", e.Path, e.Ext)
	}

	return fmt.Sprintf("unknown file type: extension %q", e.Ext)
}

// Is matches ErrUnknownFileType.
func (e *UnknownFileTypeError) Is(target error) bool {
	return target == ErrUnknownFileType
}

// Processor identifies a format handler.
type Processor interface {
	// ID is unique among registered processors.
	ID() string
	// Type is the format family, e.g. "yaml".
	Type() string
	// Priority breaks ties between processors of the same type or extension;
	// higher wins.
	Priority() int
	// Extensions lists the file extensions handled, without leading dots.
	Extensions() []string
}

// Base implements Processor and is meant to be embedded by codecs.
type Base struct {
	id         string
	typ        string
	priority   int
	extensions []string
}

// NewBase creates a descriptor. Extensions are lowercased and stripped of a
// leading dot.
func NewBase(id, typ string, priority int, extensions ...string) Base {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		exts = append(exts, NormalizeExt(ext))
	}

	return Base{id: id, typ: typ, priority: priority, extensions: exts}
}

// ID returns the processor id.
func (b Base) ID() string { return b.id }

// Type returns the processor type.
func (b Base) Type() string { return b.typ }

// Priority returns the processor priority.
func (b Base) Priority() int { return b.priority }

// Extensions returns a copy of the claimed extensions.
func (b Base) Extensions() []string { return slices.Clone(b.extensions) }

// DefaultID derives an id from the dynamic type of p, used when a processor
// reports an empty id.
func DefaultID(p any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", p), "*")
}

// IDOf returns p.ID() or DefaultID(p) when that is empty.
func IDOf(p Processor) string {
	if id := p.ID(); id != "" {
		return id
	}

	return DefaultID(p)
}

// Equal reports whether a and b share the same id.
func Equal(a, b Processor) bool {
	if a == nil || b == nil {
		return a == b
	}

	return IDOf(a) == IDOf(b)
}

// NormalizeExt lowercases ext and strips a leading dot.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// HasExtension reports whether p claims ext.
func HasExtension(p Processor, ext string) bool {
	return slices.Contains(p.Extensions(), NormalizeExt(ext))
}
