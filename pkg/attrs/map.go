package attrs

import (
	"bytes"
	"encoding/json"
	"iter"
)

// Map is an attribute mapping that remembers insertion order. Setting an
// existing key replaces its value in place.
//
// A Map is owned by its caller; helpers that edit one in place (AddClass,
// AddStyle, the select renderer) are not safe for concurrent use on the
// same Map.
type Map struct {
	keys   []string
	values map[string]Value
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]Value)}
}

// Of builds a Map from alternating key/value pairs. Values go through From.
// A trailing key without a value is ignored.
func Of(pairs ...any) *Map {
	m := New()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		m.Set(key, From(pairs[i+1]))
	}
	return m
}

// Set stores v under key and returns m for chaining.
func (m *Map) Set(key string, v Value) *Map {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

// SetAny stores From(v) under key.
func (m *Map) SetAny(key string, v any) *Map {
	return m.Set(key, From(v))
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present, including keys holding Omit.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key, keeping the order of the remaining keys.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Take returns the value under key and removes it.
func (m *Map) Take(key string) (Value, bool) {
	v, ok := m.Get(key)
	if ok {
		m.Delete(key)
	}
	return v, ok
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// All iterates over key/value pairs in order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of m. Nested maps are shared.
func (m *Map) Clone() *Map {
	c := New()
	for k, v := range m.All() {
		c.Set(k, v)
	}
	return c
}

// Merge copies every pair of o into m, overwriting existing keys.
func (m *Map) Merge(o *Map) *Map {
	for k, v := range o.All() {
		m.Set(k, v)
	}
	return m
}

// Equal reports whether both maps hold equal values in the same order.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	for i, k := range m.keys {
		if o.keys[i] != k || !m.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes m as a JSON object with keys in insertion order.
// Omitted values are encoded as null.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := m.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
