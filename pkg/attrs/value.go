package attrs

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Kind identifies the shape of an attribute Value.
type Kind uint8

const (
	// KindOmit marks an attribute that is not rendered at all.
	KindOmit Kind = iota
	// KindBool is a boolean attribute: present when true, absent when false.
	KindBool
	// KindScalar is a string or number rendered as a quoted, escaped value.
	KindScalar
	// KindList is an ordered sequence of strings, used for class lists.
	KindList
	// KindMap is a nested ordered mapping, used for style, data-* and JSON attributes.
	KindMap
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOmit:
		return "omit"
	case KindBool:
		return "bool"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Entry is one element of a list value. Entries with a non-empty Key are
// named slots: merging a class list never replaces an existing slot.
type Entry struct {
	Key   string
	Value string
}

// Value is an attribute value. The zero Value is Omit.
type Value struct {
	kind   Kind
	b      bool
	raw    any
	text   string
	list   []Entry
	nested *Map
}

// Omit returns a value that suppresses the attribute.
func Omit() Value { return Value{} }

// Bool returns a boolean attribute value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Text returns a string value.
func Text(s string) Value { return Value{kind: KindScalar, raw: s, text: s} }

// Scalar returns a value for a string, number or other scalar. The rendered
// text is the value coerced to a string; JSON output keeps the original type.
func Scalar(v any) Value {
	s, err := cast.ToStringE(v)
	if err != nil {
		s = fmt.Sprint(v)
	}
	return Value{kind: KindScalar, raw: v, text: s}
}

// List returns a list value of unkeyed entries.
func List(values ...string) Value {
	entries := make([]Entry, len(values))
	for i, v := range values {
		entries[i] = Entry{Value: v}
	}
	return Value{kind: KindList, list: entries}
}

// Entries returns a list value from entries, keyed or not.
func Entries(entries ...Entry) Value {
	return Value{kind: KindList, list: append([]Entry(nil), entries...)}
}

// Nested returns a map value. A nil map is treated as empty.
func Nested(m *Map) Value {
	if m == nil {
		m = New()
	}
	return Value{kind: KindMap, nested: m}
}

// From converts a Go value into a Value:
//
//   - nil becomes Omit
//   - bool becomes Bool
//   - Value and *Map are used as they are
//   - []string and []any become List
//   - map[string]V becomes a Map with keys in sorted order
//   - anything else becomes Scalar
func From(v any) Value {
	switch x := v.(type) {
	case nil:
		return Omit()
	case Value:
		return x
	case *Map:
		return Nested(x)
	case bool:
		return Bool(x)
	case string:
		return Text(x)
	case []string:
		return List(x...)
	case []any:
		return List(cast.ToStringSlice(x)...)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := New()
		for _, k := range keys {
			m.Set(k, From(x[k]))
		}
		return Nested(m)
	case map[string]string:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := New()
		for _, k := range keys {
			m.Set(k, Text(x[k]))
		}
		return Nested(m)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Omit()
	}
	return Scalar(v)
}

// Kind reports the value's shape.
func (v Value) Kind() Kind { return v.kind }

// IsOmit reports whether the value suppresses its attribute.
func (v Value) IsOmit() bool { return v.kind == KindOmit }

// Bool returns the boolean for KindBool values.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// String returns the value as text: the coerced scalar, the space-joined
// list, "true"/"false" for booleans and "" for omitted values and maps.
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return v.text
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindList:
		return strings.Join(v.Strings(), " ")
	default:
		return ""
	}
}

// Strings returns list entry values, or map values in key order.
func (v Value) Strings() []string {
	switch v.kind {
	case KindList:
		out := make([]string, len(v.list))
		for i, e := range v.list {
			out[i] = e.Value
		}
		return out
	case KindMap:
		out := make([]string, 0, v.nested.Len())
		for _, val := range v.nested.All() {
			out = append(out, val.String())
		}
		return out
	default:
		return nil
	}
}

// Entries returns a copy of the list entries. Map values yield keyed entries.
func (v Value) Entries() []Entry {
	switch v.kind {
	case KindList:
		return append([]Entry(nil), v.list...)
	case KindMap:
		out := make([]Entry, 0, v.nested.Len())
		for k, val := range v.nested.All() {
			out = append(out, Entry{Key: k, Value: val.String()})
		}
		return out
	default:
		return nil
	}
}

// Map returns the nested map of a KindMap value, or nil.
func (v Value) Map() *Map {
	if v.kind != KindMap {
		return nil
	}
	return v.nested
}

// Len returns the number of list entries or map keys.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return v.nested.Len()
	default:
		return 0
	}
}

// MarshalJSON encodes the value keeping scalar types. Lists with keyed
// entries are encoded as objects.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindScalar:
		return json.Marshal(v.raw)
	case KindList:
		keyed := false
		for _, e := range v.list {
			if e.Key != "" {
				keyed = true
				break
			}
		}
		if !keyed {
			return json.Marshal(v.Strings())
		}
		m := New()
		for i, e := range v.list {
			k := e.Key
			if k == "" {
				k = cast.ToString(i)
			}
			m.Set(k, Text(e.Value))
		}
		return m.MarshalJSON()
	case KindMap:
		return v.nested.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// Equal reports whether two values have the same shape and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindScalar:
		return v.text == o.text
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	case KindMap:
		return v.nested.Equal(o.nested)
	default:
		return true
	}
}
