package processor

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
)

// Predicate filters candidates.
type Predicate func(Processor) bool

// Selector forces a processor choice instead of deriving it from a path.
type Selector func(candidates []Processor) ([]Processor, error)

// ByType selects processors whose type, or failing that id, equals typeOrID.
// An empty typeOrID yields a nil Selector so that optional flags can be passed
// straight through.
func ByType(typeOrID string) Selector {
	if typeOrID == "" {
		return nil
	}

	return func(candidates []Processor) ([]Processor, error) {
		return FindByTypeOrID(typeOrID, candidates)
	}
}

// ByInstance always selects p.
func ByInstance(p Processor) Selector {
	return func([]Processor) ([]Processor, error) {
		if p == nil {
			return nil, fmt.Errorf("%w: nil processor", ErrInvalidArgument)
		}

		return []Processor{p}, nil
	}
}

// ByFactory selects a new processor built by factory.
func ByFactory(factory func() Processor) Selector {
	return func([]Processor) ([]Processor, error) {
		if factory == nil {
			return nil, fmt.Errorf("%w: nil factory", ErrInvalidArgument)
		}

		return ByInstance(factory())(nil)
	}
}

// FindAllWithPred returns the candidates matching pred, highest priority
// first. Equal priorities keep their order in candidates.
func FindAllWithPred(pred Predicate, candidates []Processor) []Processor {
	var matches []Processor

	for _, p := range candidates {
		if pred(p) {
			matches = append(matches, p)
		}
	}

	slices.SortStableFunc(matches, func(a, b Processor) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})

	return matches
}

// FindWithPred returns the best candidate matching pred.
func FindWithPred(pred Predicate, candidates []Processor) (Processor, bool) {
	matches := FindAllWithPred(pred, candidates)
	if len(matches) == 0 {
		return nil, false
	}

	return matches[0], true
}

// FindByTypeOrID matches candidates by type, falling back to id when no type
// matches.
func FindByTypeOrID(typeOrID string, candidates []Processor) ([]Processor, error) {
	matches := FindAllWithPred(func(p Processor) bool { return p.Type() == typeOrID }, candidates)
	if len(matches) > 0 {
		return matches, nil
	}

	matches = FindAllWithPred(func(p Processor) bool { return IDOf(p) == typeOrID }, candidates)
	if len(matches) > 0 {
		return matches, nil
	}

	return nil, &UnknownProcessorTypeError{Type: typeOrID}
}

// FindByFileExt matches candidates claiming ext.
func FindByFileExt(ext string, candidates []Processor) ([]Processor, error) {
	matches := FindAllWithPred(func(p Processor) bool { return HasExtension(p, ext) }, candidates)
	if len(matches) == 0 {
		return nil, &UnknownFileTypeError{Ext: NormalizeExt(ext)}
	}

	return matches, nil
}

// FindByMaybeFile matches candidates against the extension of path.
func FindByMaybeFile(path string, candidates []Processor) ([]Processor, error) {
	ext := NormalizeExt(filepath.Ext(path))

	matches, err := FindByFileExt(ext, candidates)
	if err != nil {
		return nil, &UnknownFileTypeError{Ext: ext, Path: path}
	}

	return matches, nil
}

// FindAll resolves the processors for path, or for sel when given. Either
// path or sel must be set.
func FindAll(path string, candidates []Processor, sel Selector) ([]Processor, error) {
	if path == "" && sel == nil {
		return nil, fmt.Errorf("%w: path or type must be given", ErrInvalidArgument)
	}

	if sel != nil {
		return sel(candidates)
	}

	return FindByMaybeFile(path, candidates)
}

// Find is FindAll returning only the best match.
func Find(path string, candidates []Processor, sel Selector) (Processor, error) {
	matches, err := FindAll(path, candidates, sel)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		if path == "" {
			return nil, fmt.Errorf("%w: selector matched nothing", ErrInvalidArgument)
		}

		return nil, &UnknownFileTypeError{Ext: NormalizeExt(filepath.Ext(path)), Path: path}
	}

	return matches[0], nil
}
