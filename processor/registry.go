package processor

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidProcessor is returned by Register for descriptors that cannot be
// looked up reliably.
var ErrInvalidProcessor = errors.New("invalid processor")

// Group is one entry of Registry.ListBy: the processors sharing Key.
type Group struct {
	Key        string
	Processors []Processor
}

// Registry holds the known processors in registration order.
type Registry struct {
	processors []Processor
}

// NewRegistry creates a registry pre-populated with ps.
func NewRegistry(ps ...Processor) (*Registry, error) {
	r := &Registry{}

	err := r.Register(ps...)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Register adds processors. A processor whose id is already registered
// replaces the earlier one at its position.
func (r *Registry) Register(ps ...Processor) error {
	for _, p := range ps {
		err := validate(p)
		if err != nil {
			return err
		}

		id := IDOf(p)

		idx := slices.IndexFunc(r.processors, func(existing Processor) bool {
			return IDOf(existing) == id
		})
		if idx >= 0 {
			r.processors[idx] = p

			continue
		}

		r.processors = append(r.processors, p)
	}

	return nil
}

func validate(p Processor) error {
	if p == nil {
		return fmt.Errorf("%w: nil", ErrInvalidProcessor)
	}

	if p.Type() == "" {
		return fmt.Errorf("%w: %s has an empty type", ErrInvalidProcessor, IDOf(p))
	}

	if p.Priority() < MinPriority || p.Priority() > MaxPriority {
		return fmt.Errorf("%w: %s priority %d outside [%d, %d]",
			ErrInvalidProcessor, IDOf(p), p.Priority(), MinPriority, MaxPriority)
	}

	return nil
}

// List returns the registered processors, in registration order or sorted by
// id.
func (r *Registry) List(sorted bool) []Processor {
	out := slices.Clone(r.processors)

	if sorted {
		slices.SortStableFunc(out, func(a, b Processor) int {
			return strings.Compare(IDOf(a), IDOf(b))
		})
	}

	return out
}

// ListBy groups processors by attribute: "id" (or "cid"), "type", or
// "extension" (or "extensions"). Groups are sorted by key; a processor appears
// once per extension it claims.
func (r *Registry) ListBy(attr string) ([]Group, error) {
	var keysOf func(Processor) []string

	switch strings.ToLower(attr) {
	case "id", "cid":
		keysOf = func(p Processor) []string { return []string{IDOf(p)} }
	case "type":
		keysOf = func(p Processor) []string { return []string{p.Type()} }
	case "extension", "extensions", "ext":
		keysOf = Processor.Extensions
	default:
		return nil, fmt.Errorf("%w: cannot list processors by %q", ErrInvalidArgument, attr)
	}

	index := make(map[string]int)

	var groups []Group

	for _, p := range r.processors {
		for _, key := range keysOf(p) {
			idx, ok := index[key]
			if !ok {
				idx = len(groups)
				index[key] = idx
				groups = append(groups, Group{Key: key})
			}

			groups[idx].Processors = append(groups[idx].Processors, p)
		}
	}

	slices.SortFunc(groups, func(a, b Group) int { return strings.Compare(a.Key, b.Key) })

	return groups, nil
}

// ListByCID groups processors by id.
func (r *Registry) ListByCID() []Group {
	groups, _ := r.ListBy("id")

	return groups
}

// ListByType groups processors by type.
func (r *Registry) ListByType() []Group {
	groups, _ := r.ListBy("type")

	return groups
}

// ListByExtension groups processors by claimed extension.
func (r *Registry) ListByExtension() []Group {
	groups, _ := r.ListBy("extension")

	return groups
}

// Types returns the distinct processor types, sorted.
func (r *Registry) Types() []string {
	groups := r.ListByType()

	types := make([]string, len(groups))
	for i, g := range groups {
		types[i] = g.Key
	}

	return types
}
