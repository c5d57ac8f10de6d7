// Package tree defines the in-memory shape of loaded configuration data.
//
// A nested value is a mapping, a sequence or a scalar. Mappings are anything
// that satisfies the Mapping interface; the package ships an insertion-ordered
// Map (what every built-in codec produces) and a Plain adapter over
// map[string]any so that callers can hand native maps to merge and pointer
// without converting them first.
//
// Sequences are []any. Other slice types are accepted where a sequence is
// expected and converted element by element.
package tree
