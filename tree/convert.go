package tree

import (
	"strconv"
	"strings"
)

// FromPlain converts decoder output into ordered trees. Native maps become
// Maps with sorted keys; Maps already present are converted in place.
func FromPlain(v any) any {
	if m, ok := AsMapping(v); ok {
		out := NewMap()
		for _, key := range m.Keys() {
			val, _ := m.Get(key)
			out.Set(key, FromPlain(val))
		}

		return out
	}

	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = FromPlain(item)
		}

		return out
	}

	return v
}

// ToPlain converts a tree into map[string]any and []any values for libraries
// that only understand native containers.
func ToPlain(v any) any {
	if m, ok := AsMapping(v); ok {
		keys := m.Keys()

		out := make(map[string]any, len(keys))
		for _, key := range keys {
			val, _ := m.Get(key)
			out[key] = ToPlain(val)
		}

		return out
	}

	if s, ok := AsSequence(v); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = ToPlain(item)
		}

		return out
	}

	return v
}

// ParseScalar infers a scalar from its textual form: booleans, null, integers
// and floats are recognized, everything else stays a string. Quoted strings
// lose their quotes.
func ParseScalar(s string) any {
	trimmed := strings.TrimSpace(s)

	switch strings.ToLower(trimmed) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	case "null", "none", "~":
		return nil
	}

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && strings.ContainsAny(trimmed, "0123456789") {
		return f
	}

	if len(trimmed) >= 2 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		if (first == '"' || first == '\'') && first == last {
			return trimmed[1 : len(trimmed)-1]
		}
	}

	return s
}
