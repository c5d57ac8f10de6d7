// Package merge folds one nested mapping into another under a selectable
// conflict strategy.
package merge

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/0xalexb/anyconf/tree"
)

// ErrInvalidArgument is returned when the value to merge from is neither a
// mapping nor a sequence of key/value pairs.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnknownStrategy is returned by ParseStrategy for names it does not know.
var ErrUnknownStrategy = errors.New("unknown merge strategy")

// Strategy selects how conflicting keys are resolved.
type Strategy int

const (
	// MergeDicts recurses into mapping/mapping conflicts and lets the new value
	// win everywhere else.
	MergeDicts Strategy = iota
	// Replace lets the new value win, except that mappings meeting mappings are
	// merged key by key with Replace.
	Replace
	// NoReplace keeps existing values and only installs absent keys.
	NoReplace
	// MergeDictsAndLists behaves like MergeDicts and additionally extends
	// existing sequences with the new elements they do not already contain.
	MergeDictsAndLists
)

var strategyNames = map[Strategy]string{
	MergeDicts:         "merge_dicts",
	Replace:            "replace",
	NoReplace:          "noreplace",
	MergeDictsAndLists: "merge_dicts_and_lists",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Strategies lists the built-in strategies, default first.
func Strategies() []Strategy {
	return []Strategy{MergeDicts, Replace, NoReplace, MergeDictsAndLists}
}

// ParseStrategy returns the strategy named name. Matching ignores case and
// accepts "-" in place of "_".
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")

	for strategy, known := range strategyNames {
		if known == normalized {
			return strategy, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Merger resolves a single key of other into target.
type Merger interface {
	MergeKey(target, other tree.Mapping, key string)
}

// Func adapts a function to Merger. It is called once per key of other,
// whether or not target already holds the key, and is responsible for the
// assignment.
type Func func(target, other tree.Mapping, key string)

// MergeKey calls f.
func (f Func) MergeKey(target, other tree.Mapping, key string) {
	f(target, other, key)
}

// Pair is a single key/value entry used when merging from an ordered list
// instead of a mapping.
type Pair struct {
	Key   string
	Value any
}

// Merge folds other into target and returns target. other may be mapping-like,
// a []Pair or an iter.Seq2[string, any]; it is never modified. Pairs are
// applied one at a time in order, so a repeated key is merged once per
// occurrence. A nil merger selects MergeDicts.
func Merge(target tree.Mapping, other any, merger Merger) (tree.Mapping, error) {
	if tree.IsNil(target) {
		return nil, fmt.Errorf("%w: target must be a mapping", ErrInvalidArgument)
	}

	if merger == nil {
		merger = MergeDicts
	}

	if source, ok := tree.AsMapping(other); ok {
		for _, key := range source.Keys() {
			merger.MergeKey(target, source, key)
		}

		return target, nil
	}

	pairs, err := asPairs(other)
	if err != nil {
		return nil, err
	}

	for key, value := range pairs {
		single := tree.NewMap()
		single.Set(key, value)

		merger.MergeKey(target, single, key)
	}

	return target, nil
}

func asPairs(other any) (iter.Seq2[string, any], error) {
	switch o := other.(type) {
	case []Pair:
		return func(yield func(string, any) bool) {
			for _, p := range o {
				if !yield(p.Key, p.Value) {
					return
				}
			}
		}, nil
	case iter.Seq2[string, any]:
		return o, nil
	case func(yield func(string, any) bool):
		return o, nil
	default:
		return nil, fmt.Errorf("%w: cannot merge from %T", ErrInvalidArgument, other)
	}
}

// MergeKey implements Merger for the built-in strategies.
func (s Strategy) MergeKey(target, other tree.Mapping, key string) {
	value, _ := other.Get(key)

	current, exists := target.Get(key)
	if !exists {
		target.Set(key, tree.Copy(value))

		return
	}

	currentMap, currentIsMap := tree.AsMapping(current)
	valueMap, valueIsMap := tree.AsMapping(value)

	if currentIsMap && valueIsMap {
		target.Set(key, mergeNested(currentMap, valueMap, s))

		return
	}

	switch s {
	case NoReplace:
		return
	case MergeDictsAndLists:
		if merged, ok := mergeSequences(current, value); ok {
			target.Set(key, merged)

			return
		}
	case MergeDicts, Replace:
	}

	target.Set(key, tree.Copy(value))
}

// mergeNested recurses into a nested mapping. Mappings that would not accept
// writes in place (converted map[any]any values, nil maps) are replaced by
// the result.
func mergeNested(current, other tree.Mapping, s Strategy) tree.Mapping {
	for _, key := range other.Keys() {
		s.MergeKey(current, other, key)
	}

	return current
}

func mergeSequences(current, value any) ([]any, bool) {
	currentSeq, ok := tree.AsSequence(current)
	if !ok {
		return nil, false
	}

	valueSeq, ok := tree.AsSequence(value)
	if !ok {
		return nil, false
	}

	merged := make([]any, len(currentSeq), len(currentSeq)+len(valueSeq))
	copy(merged, currentSeq)

	for _, item := range valueSeq {
		if !tree.Contains(currentSeq, item) {
			merged = append(merged, tree.Copy(item))
		}
	}

	return merged, true
}
