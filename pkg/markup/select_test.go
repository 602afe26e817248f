package markup

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/vango-dev/htmlkit/pkg/attrs"
)

func lines(s ...string) string { return strings.Join(s, "\n") }

func TestRenderSelectOptions(t *testing.T) {
	tests := []struct {
		name      string
		selection Selection
		items     Items
		opts      *attrs.Map
		want      string
	}{
		{
			name:      "scalar selection",
			selection: Selected("2"),
			items:     Options(1, "A", 2, "B"),
			want: lines(
				`<option value="1">A</option>`,
				`<option value="2" selected>B</option>`,
			),
		},
		{
			name:      "integer selection compares as string",
			selection: Selected(2),
			items:     Options("1", "A", "2", "B"),
			want: lines(
				`<option value="1">A</option>`,
				`<option value="2" selected>B</option>`,
			),
		},
		{
			name:      "set selection",
			selection: SelectionOf([]int{1, 3}),
			items:     Options(1, "A", 2, "B", 3, "C"),
			want: lines(
				`<option value="1" selected>A</option>`,
				`<option value="2">B</option>`,
				`<option value="3" selected>C</option>`,
			),
		},
		{
			name:  "nested group",
			items: Items{Group("g1", Leaf(1, "A"))},
			want: lines(
				`<optgroup label="g1">`,
				`<option value="1">A</option>`,
				`</optgroup>`,
			),
		},
		{
			name:      "labels are encoded",
			selection: Selection{},
			items:     Options("a", "<b>x</b> & y"),
			want:      `<option value="a">&lt;b&gt;x&lt;/b&gt; &amp; y</option>`,
		},
		{
			name:  "encode false",
			items: Options("a", "<b>x</b>"),
			opts:  attrs.New().Set("encode", attrs.Bool(false)),
			want:  `<option value="a"><b>x</b></option>`,
		},
		{
			name:  "encode spaces after encoding",
			items: Options("a", "a & b"),
			opts:  attrs.Of("encodeSpaces", true),
			want:  `<option value="a">a&nbsp;&amp;&nbsp;b</option>`,
		},
		{
			name:  "prompt text",
			items: Items{Group("g", Leaf(1, "A"))},
			opts:  attrs.Of("prompt", "Pick one"),
			want: lines(
				`<option value="">Pick one</option>`,
				`<optgroup label="g">`,
				`<option value="1">A</option>`,
				`</optgroup>`,
			),
		},
		{
			name:  "prompt with attributes",
			items: nil,
			opts: attrs.New().Set("prompt", attrs.Nested(attrs.New().
				Set("text", attrs.Text("Choose")).
				Set("options", attrs.Nested(attrs.Of("disabled", true))))),
			want: `<option value="" disabled>Choose</option>`,
		},
		{
			name:      "explicit selected wins",
			selection: Selected("2"),
			items:     Options(1, "A", 2, "B"),
			opts: attrs.New().Set("options", attrs.Nested(attrs.New().
				Set("1", attrs.Nested(attrs.Of("selected", true))).
				Set("2", attrs.Nested(attrs.Of("selected", false, "class", "x"))))),
			want: lines(
				`<option value="1" selected>A</option>`,
				`<option class="x" value="2">B</option>`,
			),
		},
		{
			name:      "group attributes",
			selection: Selected("1"),
			items:     Items{Group("g", Leaf("1", "A")), Leaf("2", "B")},
			opts: attrs.New().Set("groups", attrs.Nested(attrs.New().
				Set("g", attrs.Nested(attrs.Of("label", "Group", "disabled", true))))),
			want: lines(
				`<optgroup disabled label="Group">`,
				`<option value="1" selected>A</option>`,
				`</optgroup>`,
				`<option value="2">B</option>`,
			),
		},
		{
			name:  "nothing",
			items: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSelectOptions(tt.selection, tt.items, tt.opts); got != tt.want {
				t.Errorf("RenderSelectOptions() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderSelectOptionsConsumesDirectives(t *testing.T) {
	opts := attrs.Of(
		"prompt", "Pick",
		"class", "form-control",
		"encodeSpaces", true,
		"encode", true,
		"options", map[string]any{},
		"groups", map[string]any{},
	)
	RenderSelectOptions(Selection{}, Options("a", "A"), opts)

	if diff := cmp.Diff([]string{"class"}, opts.Keys()); diff != "" {
		t.Errorf("remaining keys (-want +got):\n%s", diff)
	}
}

func TestRenderOptionsDoesNotEditPerOptionMaps(t *testing.T) {
	optAttrs := attrs.Of("class", "x")
	cfg := SelectConfig{Options: map[string]*attrs.Map{"1": optAttrs}}

	Default().RenderOptions(Selected("1"), Options(1, "A"), cfg)

	if diff := cmp.Diff([]string{"class"}, optAttrs.Keys()); diff != "" {
		t.Errorf("per-option map changed (-want +got):\n%s", diff)
	}
}

func TestSelectionOf(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		contains []string
		missing  []string
		multiple bool
	}{
		{name: "nil", in: nil, missing: []string{"", "0"}},
		{name: "string", in: "a", contains: []string{"a"}, missing: []string{"b"}},
		{name: "int", in: 7, contains: []string{"7"}, missing: []string{"07"}},
		{name: "strings", in: []string{"a", "b"}, contains: []string{"a", "b"}, missing: []string{"c"}, multiple: true},
		{name: "anys", in: []any{1, "x"}, contains: []string{"1", "x"}, multiple: true},
		{name: "array", in: [2]int{4, 5}, contains: []string{"4", "5"}, multiple: true},
		{name: "set", in: map[string]bool{"a": true, "b": false}, contains: []string{"a"}, missing: []string{"b"}, multiple: true},
		{name: "empty slice", in: []string{}, missing: []string{""}, multiple: true},
		{name: "selection", in: Selected("z"), contains: []string{"z"}},
		{name: "true", in: true, contains: []string{"1"}, missing: []string{"0", "true"}},
		{name: "false", in: false, contains: []string{"0"}, missing: []string{"1", "false"}},
		{name: "bools", in: []any{true}, contains: []string{"1"}, missing: []string{"0", "true"}, multiple: true},
		{name: "bool slice", in: []bool{false}, contains: []string{"0"}, missing: []string{"1"}, multiple: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SelectionOf(tt.in)
			if s.IsMultiple() != tt.multiple {
				t.Errorf("IsMultiple() = %v, want %v", s.IsMultiple(), tt.multiple)
			}
			for _, k := range tt.contains {
				if !s.Contains(k) {
					t.Errorf("Contains(%q) = false", k)
				}
			}
			for _, k := range tt.missing {
				if s.Contains(k) {
					t.Errorf("Contains(%q) = true", k)
				}
			}
		})
	}

	var p *string
	if SelectionOf(p).IsSet() {
		t.Error("nil pointer should select nothing")
	}
	v := "q"
	if !SelectionOf(&v).Contains("q") {
		t.Error("pointer should be followed")
	}
}

func TestDropDownList(t *testing.T) {
	opts := attrs.Of("prompt", "-", "class", "c")
	got := dropDown("n", Selected(2), Options(1, "A", 2, "B"), opts)
	want := lines(
		`<select class="c" name="n">`,
		`<option value="">-</option>`,
		`<option value="1">A</option>`,
		`<option value="2" selected>B</option>`,
		`</select>`,
	)
	if got != want {
		t.Errorf("DropDownList() =\n%s\nwant\n%s", got, want)
	}
	if diff := cmp.Diff([]string{"prompt", "class"}, opts.Keys()); diff != "" {
		t.Errorf("caller options changed (-want +got):\n%s", diff)
	}
}

func TestListBox(t *testing.T) {
	got := Default().ListBox("tags", SelectedAll("a"), Options("a", "A", "b", "B"),
		attrs.Of("multiple", true, "unselect", ""))
	want := `<input type="hidden" name="tags" value="">` + lines(
		`<select name="tags[]" multiple size="4">`,
		`<option value="a" selected>A</option>`,
		`<option value="b">B</option>`,
		`</select>`,
	)
	if got != want {
		t.Errorf("ListBox() =\n%s\nwant\n%s", got, want)
	}

	got = Default().ListBox("one", Selection{}, nil, attrs.Of("size", 2))
	if want := "<select name=\"one\" size=\"2\">\n\n</select>"; got != want {
		t.Errorf("ListBox(size) = %q, want %q", got, want)
	}
}

func TestDropDownListMultipleIsListBox(t *testing.T) {
	got := dropDown("x", Selection{}, Options(1, "A"), attrs.Of("multiple", true))
	for _, want := range []string{`name="x[]"`, ` multiple`, `size="4"`} {
		if !strings.Contains(got, want) {
			t.Errorf("DropDownList() = %q, missing %q", got, want)
		}
	}
}

func TestDropDownListParses(t *testing.T) {
	items := Items{
		Leaf("", "None"),
		Group("Fruit", Leaf("apple", "Apple"), Leaf("pear", "Pear")),
		Group("Veg", Leaf("kale", "Kale <raw>")),
	}
	out := dropDown("food", SelectedAll("pear", "kale"), items, nil)

	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}

	var selected, groups []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "option":
				for _, a := range n.Attr {
					if a.Key == "selected" {
						selected = append(selected, attrValue(n, "value"))
					}
				}
			case "optgroup":
				groups = append(groups, attrValue(n, "label"))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if diff := cmp.Diff([]string{"pear", "kale"}, selected); diff != "" {
		t.Errorf("selected options (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Fruit", "Veg"}, groups); diff != "" {
		t.Errorf("groups (-want +got):\n%s", diff)
	}
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// dropDown renders with the default builder.
func dropDown(name string, s Selection, items Items, opts *attrs.Map) string {
	return Default().DropDownList(name, s, items, opts)
}

func TestBooleanSelection(t *testing.T) {
	items := Options(true, "Yes", false, "No")

	got := dropDown("agree", SelectionOf([]any{true}), items, nil)
	want := "<select name=\"agree\">\n" +
		"<option value=\"1\" selected>Yes</option>\n" +
		"<option value=\"0\">No</option>\n" +
		"</select>"
	if got != want {
		t.Errorf("DropDownList(true) =\n%s\nwant\n%s", got, want)
	}

	got = dropDown("agree", Selected(false), Options("1", "Yes", "0", "No"), nil)
	if !strings.Contains(got, `<option value="0" selected>No</option>`) {
		t.Errorf("DropDownList(false) = %q", got)
	}
}
