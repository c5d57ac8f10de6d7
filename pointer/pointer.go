// Package pointer addresses values inside nested configuration trees using
// JSON-Pointer style ("/a/b/0") or dotted ("a.b.0") path expressions.
//
// The first separator from the candidate list that occurs in a path is the
// only one honored for that path, so "/a.b" addresses the key "a.b".
package pointer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/0xalexb/anyconf/merge"
	"github.com/0xalexb/anyconf/tree"
)

// DefaultSeparators are the separators tried by Split, in priority order.
const DefaultSeparators = "/."

// ErrNotFound is wrapped by every addressing miss reported from Get.
var ErrNotFound = errors.New("path not found")

var indexPattern = regexp.MustCompile(`^[0-9]+$`)

var unescaper = strings.NewReplacer("~1", "/", "~0", "~")

// Split decomposes path into segments. When seps is empty DefaultSeparators
// are used.
func Split(path string, seps ...rune) []string {
	if path == "" {
		return []string{}
	}

	if len(seps) == 0 {
		seps = []rune(DefaultSeparators)
	}

	for _, sep := range seps {
		if path == string(sep) {
			return []string{""}
		}
	}

	for _, sep := range seps {
		if !strings.ContainsRune(path, sep) {
			continue
		}

		parts := strings.Split(path, string(sep))

		segments := make([]string, 0, len(parts))
		for _, part := range parts {
			if part == "" {
				continue
			}

			segments = append(segments, unescape(part))
		}

		return segments
	}

	return []string{unescape(path)}
}

func unescape(segment string) string {
	if !strings.Contains(segment, "~") {
		return segment
	}

	return unescaper.Replace(segment)
}

// Get resolves path against root. An empty path returns root. Misses are
// reported as an error wrapping ErrNotFound together with a nil value.
func Get(root any, path string) (any, error) {
	current := root

	for i, segment := range Split(path) {
		next, err := step(current, segment)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at segment %d: %w", ErrNotFound, path, i, err)
		}

		current = next
	}

	return current, nil
}

func step(current any, segment string) (any, error) {
	if seq, ok := tree.AsSequence(current); ok {
		if !indexPattern.MatchString(segment) {
			return nil, fmt.Errorf("%q is not a valid index", segment)
		}

		idx, err := strconv.Atoi(segment)
		if err != nil || idx >= len(seq) {
			return nil, fmt.Errorf("index %s out of range (len %d)", segment, len(seq))
		}

		return seq[idx], nil
	}

	if m, ok := tree.AsMapping(current); ok {
		value, found := m.Get(segment)
		if !found {
			return nil, fmt.Errorf("key %q does not exist", segment)
		}

		return value, nil
	}

	return nil, fmt.Errorf("cannot index %T with %q", current, segment)
}

// Set stores value at path inside root, creating intermediate mappings as
// needed. Conflicting branches are overwritten with MergeDicts semantics.
// An empty path merges value into root when value is mapping-like and is a
// no-op otherwise.
func Set(root tree.Mapping, path string, value any) {
	segments := Split(path)

	branch := value
	for i := len(segments) - 1; i >= 0; i-- {
		wrapper := tree.NewMap()
		wrapper.Set(segments[i], branch)
		branch = wrapper
	}

	if _, ok := tree.AsMapping(branch); !ok {
		return
	}

	// branch is always mapping-like here, Merge cannot fail.
	_, _ = merge.Merge(root, branch, merge.MergeDicts)
}
