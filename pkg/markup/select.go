package markup

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"github.com/vango-dev/htmlkit/pkg/attrs"
)

// Item is an entry of a select item tree: either a leaf option with a label
// or a group of nested items rendered as an <optgroup>.
type Item struct {
	Key      string
	Label    string
	Children Items
	group    bool
}

// Items is an ordered list of select items.
type Items []Item

// Leaf returns an option item. key is coerced to a string, with booleans
// becoming "1" and "0".
func Leaf(key any, label string) Item {
	return Item{Key: selectionKey(key), Label: label}
}

// Group returns an option group item labelled by key.
func Group(key any, children ...Item) Item {
	return Item{Key: selectionKey(key), Children: children, group: true}
}

// IsGroup reports whether the item is an option group.
func (it Item) IsGroup() bool { return it.group }

// Options builds leaf items from alternating key/label pairs.
func Options(pairs ...any) Items {
	items := make(Items, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, Leaf(pairs[i], cast.ToString(pairs[i+1])))
	}
	return items
}

// leaves returns the leaf items of the tree in order.
func (items Items) leaves() Items {
	var out Items
	for _, it := range items {
		if it.group {
			out = append(out, it.Children.leaves()...)
			continue
		}
		out = append(out, it)
	}
	return out
}

type selectionKind uint8

const (
	selectNone selectionKind = iota
	selectOne
	selectMany
)

// Selection is the value or set of values an option list is matched
// against. Values compare as strings. The zero Selection selects nothing.
type Selection struct {
	kind selectionKind
	one  string
	many map[string]bool
}

// Selected returns a scalar selection.
func Selected(v any) Selection {
	if v == nil {
		return Selection{}
	}
	return Selection{kind: selectOne, one: selectionKey(v)}
}

// SelectedAll returns a set selection.
func SelectedAll(values ...any) Selection {
	s := Selection{kind: selectMany, many: make(map[string]bool, len(values))}
	for _, v := range values {
		s.many[selectionKey(v)] = true
	}
	return s
}

// selectionKey is the option key v matches. Booleans match "1" and "0",
// the keys a checkbox or yes/no list submits.
func selectionKey(v any) string {
	if b, ok := v.(bool); ok {
		if b {
			return "1"
		}
		return "0"
	}
	return cast.ToString(v)
}

// SelectionOf builds a Selection from v: nil selects nothing, slices and
// arrays become sets, a Selection is used as it is and anything else is a
// scalar.
func SelectionOf(v any) Selection {
	switch x := v.(type) {
	case nil:
		return Selection{}
	case Selection:
		return x
	case string:
		return Selected(x)
	case []string:
		values := make([]any, len(x))
		for i, s := range x {
			values[i] = s
		}
		return SelectedAll(values...)
	case []any:
		return SelectedAll(x...)
	case map[string]bool:
		s := Selection{kind: selectMany, many: make(map[string]bool, len(x))}
		for k, ok := range x {
			if ok {
				s.many[k] = true
			}
		}
		return s
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		values := make([]any, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return SelectedAll(values...)
	case reflect.Pointer:
		if rv.IsNil() {
			return Selection{}
		}
		return SelectionOf(rv.Elem().Interface())
	}
	return Selected(v)
}

// IsSet reports whether the selection selects anything at all.
func (s Selection) IsSet() bool { return s.kind != selectNone }

// IsMultiple reports whether the selection is a set.
func (s Selection) IsMultiple() bool { return s.kind == selectMany }

// Contains reports whether key is selected.
func (s Selection) Contains(key string) bool {
	switch s.kind {
	case selectOne:
		return s.one == key
	case selectMany:
		return s.many[key]
	default:
		return false
	}
}

// Prompt is the leading empty-value option of a select.
type Prompt struct {
	Text  string
	Attrs *attrs.Map
}

// SelectConfig holds the option-rendering directives of a select. They
// describe the options, not the <select> element itself.
type SelectConfig struct {
	// Prompt, when set, renders a leading option with an empty value.
	Prompt *Prompt

	// Options holds per-option attributes keyed by option value.
	Options map[string]*attrs.Map

	// Groups holds per-optgroup attributes keyed by group key.
	Groups map[string]*attrs.Map

	// EncodeSpaces replaces spaces in labels with &nbsp;.
	EncodeSpaces bool

	// Raw inserts labels without entity encoding.
	Raw bool
}

// Directive keys consumed from select tag options.
const (
	keyPrompt       = "prompt"
	keyOptions      = "options"
	keyGroups       = "groups"
	keyEncodeSpaces = "encodeSpaces"
	keyEncode       = "encode"
)

// TakeSelectConfig removes the option-rendering directives (prompt,
// options, groups, encodeSpaces, encode) from tagOptions and returns them
// as a SelectConfig, so they never become attributes of the <select>.
//
// prompt may be text or a map with "text" and "options"; options and groups
// are maps of attribute maps.
func TakeSelectConfig(tagOptions *attrs.Map) SelectConfig {
	var cfg SelectConfig
	if tagOptions == nil {
		return cfg
	}

	if v, ok := tagOptions.Take(keyPrompt); ok {
		switch v.Kind() {
		case attrs.KindScalar:
			cfg.Prompt = &Prompt{Text: v.String()}
		case attrs.KindMap:
			text, _ := v.Map().Get("text")
			opts, _ := v.Map().Get("options")
			cfg.Prompt = &Prompt{Text: text.String(), Attrs: opts.Map()}
		}
	}
	if v, ok := tagOptions.Take(keyOptions); ok {
		cfg.Options = attrMaps(v)
	}
	if v, ok := tagOptions.Take(keyGroups); ok {
		cfg.Groups = attrMaps(v)
	}
	if v, ok := tagOptions.Take(keyEncodeSpaces); ok {
		cfg.EncodeSpaces = truthy(v)
	}
	if v, ok := tagOptions.Take(keyEncode); ok {
		cfg.Raw = !truthy(v)
	}
	return cfg
}

func attrMaps(v attrs.Value) map[string]*attrs.Map {
	m := v.Map()
	if m == nil {
		return nil
	}
	out := make(map[string]*attrs.Map, m.Len())
	for k, inner := range m.All() {
		if im := inner.Map(); im != nil {
			out[k] = im
		}
	}
	return out
}

// truthy treats false, omitted, empty and "0" values as false.
func truthy(v attrs.Value) bool {
	switch v.Kind() {
	case attrs.KindBool:
		return v.Bool()
	case attrs.KindScalar:
		s := v.String()
		return s != "" && s != "0"
	case attrs.KindList, attrs.KindMap:
		return v.Len() > 0
	default:
		return false
	}
}

// RenderSelectOptions renders the <option> and <optgroup> lines for items.
// The select directives are consumed from tagOptions first (see
// TakeSelectConfig), leaving only attributes of the <select> itself.
func (b *Builder) RenderSelectOptions(selection Selection, items Items, tagOptions *attrs.Map) string {
	return b.RenderOptions(selection, items, TakeSelectConfig(tagOptions))
}

// RenderSelectOptions renders option lines with the default Builder.
func RenderSelectOptions(selection Selection, items Items, tagOptions *attrs.Map) string {
	return std.RenderSelectOptions(selection, items, tagOptions)
}

// RenderOptions renders the <option> and <optgroup> lines for items,
// separated by newlines.
//
// An option is selected when its attributes set "selected" explicitly, or
// else when the selection contains its key.
func (b *Builder) RenderOptions(selection Selection, items Items, cfg SelectConfig) string {
	var lines []string

	if cfg.Prompt != nil {
		opts := attrs.New().Set("value", attrs.Text(""))
		opts.Merge(cfg.Prompt.Attrs)
		lines = append(lines, b.Tag("option", b.label(cfg.Prompt.Text, cfg), opts))
	}

	nested := cfg
	nested.Prompt = nil

	for _, it := range items {
		if it.group {
			groupAttrs := attrs.New()
			if ga := cfg.Groups[it.Key]; ga != nil {
				groupAttrs = ga.Clone()
			}
			if !groupAttrs.Has("label") {
				groupAttrs.Set("label", attrs.Text(it.Key))
			}
			content := b.RenderOptions(selection, it.Children, nested)
			lines = append(lines, b.Tag("optgroup", "\n"+content+"\n", groupAttrs))
			continue
		}

		optAttrs := attrs.New()
		if oa := cfg.Options[it.Key]; oa != nil {
			optAttrs = oa.Clone()
		}
		optAttrs.Set("value", attrs.Text(it.Key))
		if !optAttrs.Has("selected") {
			optAttrs.Set("selected", attrs.Bool(selection.Contains(it.Key)))
		}
		lines = append(lines, b.Tag("option", b.label(it.Label, cfg), optAttrs))
	}

	return strings.Join(lines, "\n")
}

func (b *Builder) label(text string, cfg SelectConfig) string {
	if !cfg.Raw {
		text = b.enc.Encode(text)
	}
	if cfg.EncodeSpaces {
		text = strings.ReplaceAll(text, " ", "&nbsp;")
	}
	return text
}

// DropDownList renders a single-choice <select>. With a truthy "multiple"
// option it renders a ListBox instead. options is not modified.
func (b *Builder) DropDownList(name string, selection Selection, items Items, options *attrs.Map) string {
	opts := cloneOrNew(options)
	if v, ok := opts.Get("multiple"); ok && truthy(v) {
		return b.ListBox(name, selection, items, opts)
	}
	opts.Set("name", attrs.Text(name))
	opts.Delete("unselect")
	content := b.RenderSelectOptions(selection, items, opts)
	return b.Tag("select", "\n"+content+"\n", opts)
}

// ListBox renders a <select> showing several rows (size defaults to 4).
// Multiple list boxes get a [] name suffix. An "unselect" option adds a
// hidden input submitted when nothing is selected. options is not modified.
func (b *Builder) ListBox(name string, selection Selection, items Items, options *attrs.Map) string {
	opts := cloneOrNew(options)
	if !opts.Has("size") {
		opts.Set("size", attrs.Scalar(4))
	}
	multiple := false
	if v, ok := opts.Get("multiple"); ok {
		multiple = truthy(v)
	}
	if multiple && name != "" && !strings.HasSuffix(name, "[]") {
		name += "[]"
	}
	opts.Set("name", attrs.Text(name))

	hidden := ""
	if v, ok := opts.Take("unselect"); ok && !v.IsOmit() {
		hiddenName := name
		if multiple {
			hiddenName = strings.TrimSuffix(hiddenName, "[]")
		}
		hiddenOpts := attrs.New()
		if d, ok := opts.Get("disabled"); ok && truthy(d) {
			hiddenOpts.Set("disabled", d)
		}
		hidden = b.hiddenValue(hiddenName, v.String(), hiddenOpts)
	}

	content := b.RenderSelectOptions(selection, items, opts)
	return hidden + b.Tag("select", "\n"+content+"\n", opts)
}

func cloneOrNew(m *attrs.Map) *attrs.Map {
	if m == nil {
		return attrs.New()
	}
	return m.Clone()
}
