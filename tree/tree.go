package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"sort"
)

// Mapping is the mapping-like abstraction used across the module.
type Mapping interface {
	// Keys returns the keys in iteration order.
	Keys() []string
	// Get returns the value stored under key.
	Get(key string) (any, bool)
	// Set stores value under key, appending key if it is new.
	Set(key string, value any)
}

// Map is an insertion-ordered Mapping. The zero value is not usable, use NewMap.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Keys returns a copy of the keys in insertion order. A nil map has no keys.
func (m *Map) Keys() []string {
	if m == nil {
		return []string{}
	}

	return slices.Clone(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Set stores value under key. Existing keys keep their position.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Delete removes key. Missing keys are ignored.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}

	delete(m.values, key)

	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// MarshalJSON encodes the map as a JSON object keeping key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", key, err)
		}

		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, fmt.Errorf("marshal value of %q: %w", key, err)
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Plain adapts a native map to Mapping. Keys are reported sorted.
type Plain map[string]any

// Keys returns the keys in sorted order.
func (p Plain) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Get returns the value stored under key.
func (p Plain) Get(key string) (any, bool) {
	v, ok := p[key]

	return v, ok
}

// Set stores value under key.
func (p Plain) Set(key string, value any) {
	p[key] = value
}

// AsMapping reports whether v is mapping-like and returns it as a Mapping.
// map[any]any is converted into a new Map with stringified keys, so writes to
// the result do not reach the original. Nil maps are mapping-like and come
// back as a new empty Map, since they cannot be written to.
func AsMapping(v any) (Mapping, bool) {
	switch m := v.(type) {
	case *Map:
		if m == nil {
			return NewMap(), true
		}

		return m, true
	case Plain:
		if m == nil {
			return NewMap(), true
		}

		return m, true
	case Mapping:
		return m, true
	case map[string]any:
		if m == nil {
			return NewMap(), true
		}

		return Plain(m), true
	case map[any]any:
		return fromAnyMap(m), true
	default:
		return nil, false
	}
}

// IsNil reports whether m is nil or a nil *Map or Plain, none of which
// accept writes.
func IsNil(m Mapping) bool {
	switch t := m.(type) {
	case nil:
		return true
	case *Map:
		return t == nil
	case Plain:
		return t == nil
	default:
		return false
	}
}

// AsSequence reports whether v is sequence-like and returns its elements.
// Strings and byte slices are scalars.
func AsSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []byte, string, nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

// Copy returns a deep copy of mappings and sequences. Mappings are copied
// into a new Map keeping their iteration order.
func Copy(v any) any {
	if m, ok := AsMapping(v); ok {
		out := NewMap()
		for _, key := range m.Keys() {
			val, _ := m.Get(key)
			out.Set(key, Copy(val))
		}

		return out
	}

	if s, ok := AsSequence(v); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = Copy(item)
		}

		return out
	}

	return v
}

// Equal compares two nested values structurally. Mapping key order is not
// significant, sequence order is.
func Equal(a, b any) bool {
	am, aIsMap := AsMapping(a)
	bm, bIsMap := AsMapping(b)

	if aIsMap || bIsMap {
		if !aIsMap || !bIsMap {
			return false
		}

		return equalMappings(am, bm)
	}

	as, aIsSeq := AsSequence(a)
	bs, bIsSeq := AsSequence(b)

	if aIsSeq || bIsSeq {
		if !aIsSeq || !bIsSeq || len(as) != len(bs) {
			return false
		}

		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}

		return true
	}

	if equal, numeric := equalNumbers(a, b); numeric {
		return equal
	}

	return reflect.DeepEqual(a, b)
}

// equalNumbers compares two numeric scalars by value regardless of their Go
// type, so int64(1) and float64(1) are equal. numeric is false when either
// side is not a number.
func equalNumbers(a, b any) (equal, numeric bool) {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)

	ak, bk := numberKind(av), numberKind(bv)
	if ak == reflect.Invalid || bk == reflect.Invalid {
		return false, false
	}

	switch {
	case ak == reflect.Int && bk == reflect.Int:
		return av.Int() == bv.Int(), true
	case ak == reflect.Uint && bk == reflect.Uint:
		return av.Uint() == bv.Uint(), true
	case ak == reflect.Int && bk == reflect.Uint:
		return av.Int() >= 0 && uint64(av.Int()) == bv.Uint(), true
	case ak == reflect.Uint && bk == reflect.Int:
		return bv.Int() >= 0 && av.Uint() == uint64(bv.Int()), true
	default:
		return toFloat(av) == toFloat(bv), true
	}
}

// numberKind folds the numeric kinds into Int, Uint and Float64 and returns
// Invalid for everything else.
func numberKind(v reflect.Value) reflect.Kind {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return reflect.Uint
	case reflect.Float32, reflect.Float64:
		return reflect.Float64
	default:
		return reflect.Invalid
	}
}

func toFloat(v reflect.Value) float64 {
	switch numberKind(v) {
	case reflect.Int:
		return float64(v.Int())
	case reflect.Uint:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func equalMappings(a, b Mapping) bool {
	keys := a.Keys()
	if len(keys) != len(b.Keys()) {
		return false
	}

	for _, key := range keys {
		av, _ := a.Get(key)

		bv, ok := b.Get(key)
		if !ok || !Equal(av, bv) {
			return false
		}
	}

	return true
}

// Contains reports whether seq holds an element Equal to v.
func Contains(seq []any, v any) bool {
	return slices.ContainsFunc(seq, func(item any) bool { return Equal(item, v) })
}

func fromAnyMap(m map[any]any) *Map {
	byKey := make(map[string]any, len(m))
	for k, v := range m {
		byKey[fmt.Sprint(k)] = v
	}

	out := NewMap()
	for _, key := range Plain(byKey).Keys() {
		out.Set(key, byKey[key])
	}

	return out
}
