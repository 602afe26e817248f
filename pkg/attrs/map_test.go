package attrs

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapOrder(t *testing.T) {
	m := New().
		Set("b", Text("1")).
		Set("a", Text("2")).
		Set("c", Text("3"))
	m.Set("b", Text("updated"))
	m.Delete("a")
	m.Delete("missing")

	if diff := cmp.Diff([]string{"b", "c"}, m.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("b"); v.String() != "updated" {
		t.Errorf("b = %q", v.String())
	}

	v, ok := m.Take("c")
	if !ok || v.String() != "3" || m.Has("c") {
		t.Errorf("Take(c) = %q, %v; still present: %v", v.String(), ok, m.Has("c"))
	}
}

func TestMapCloneIsIndependent(t *testing.T) {
	m := Of("a", "1", "b", "2")
	c := m.Clone()
	c.Set("c", Text("3"))
	c.Delete("a")

	if diff := cmp.Diff([]string{"a", "b"}, m.Keys()); diff != "" {
		t.Errorf("original changed (-want +got):\n%s", diff)
	}
}

func TestMapMarshalJSON(t *testing.T) {
	m := New().
		Set("z", Scalar(1)).
		Set("a", Text("x")).
		Set("flag", Bool(true)).
		Set("none", Omit()).
		Set("list", List("p", "q")).
		Set("slots", Entries(Entry{Key: "size", Value: "lg"}, Entry{Value: "btn"})).
		Set("nested", Nested(Of("k", 2.5)))

	got, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"z":1,"a":"x","flag":true,"none":null,"list":["p","q"],"slots":{"size":"lg","1":"btn"},"nested":{"k":2.5}}`
	if string(got) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestFrom(t *testing.T) {
	var nilMap *Map
	tests := []struct {
		name string
		in   any
		kind Kind
		text string
	}{
		{"nil", nil, KindOmit, ""},
		{"nil map pointer", nilMap, KindMap, ""},
		{"bool", true, KindBool, "true"},
		{"string", "s", KindScalar, "s"},
		{"int", 42, KindScalar, "42"},
		{"float", 1.5, KindScalar, "1.5"},
		{"strings", []string{"a", "b"}, KindList, "a b"},
		{"anys", []any{"a", 1}, KindList, "a 1"},
		{"value", Text("v"), KindScalar, "v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := From(tt.in)
			if v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.kind)
			}
			if v.String() != tt.text {
				t.Errorf("String() = %q, want %q", v.String(), tt.text)
			}
		})
	}
}

func TestFromGoMapSortsKeys(t *testing.T) {
	v := From(map[string]any{"b": 1, "a": "x", "c": []string{"y"}})
	if diff := cmp.Diff([]string{"a", "b", "c"}, v.Map().Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	v = From(map[string]string{"width": "1px", "color": "red"})
	if got := StyleToString(v.Map()); got != "color: red; width: 1px;" {
		t.Errorf("StyleToString() = %q", got)
	}
}
