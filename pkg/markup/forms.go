package markup

import (
	"strconv"
	"strings"

	"github.com/vango-dev/htmlkit/pkg/attrs"
)

// Input renders an <input> of the given type. Empty name and value are
// left out. options is not modified.
func (b *Builder) Input(typ, name, value string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	if !opts.Has("type") {
		opts.Set("type", attrs.Text(typ))
	}
	if name != "" {
		opts.Set("name", attrs.Text(name))
	}
	if value != "" {
		opts.Set("value", attrs.Text(value))
	}
	return b.Tag("input", "", opts)
}

// hiddenValue renders a hidden input that carries value even when it is
// empty.
func (b *Builder) hiddenValue(name, value string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	opts.Set("value", attrs.Text(value))
	return b.Input("hidden", name, "", opts)
}

// TextInput renders a text input.
func (b *Builder) TextInput(name, value string, options *attrs.Map) string {
	return b.Input("text", name, value, options)
}

// HiddenInput renders a hidden input.
func (b *Builder) HiddenInput(name, value string, options *attrs.Map) string {
	return b.Input("hidden", name, value, options)
}

// PasswordInput renders a password input.
func (b *Builder) PasswordInput(name, value string, options *attrs.Map) string {
	return b.Input("password", name, value, options)
}

// FileInput renders a file input.
func (b *Builder) FileInput(name, value string, options *attrs.Map) string {
	return b.Input("file", name, value, options)
}

// Textarea renders a <textarea> with encoded content. A false
// "doubleEncode" option leaves existing entities in value alone.
func (b *Builder) Textarea(name, value string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	opts.Set("name", attrs.Text(name))

	double := true
	if v, ok := opts.Take("doubleEncode"); ok {
		double = truthy(v)
	}
	content := b.enc.Encode(value)
	if !double {
		content = b.enc.EncodeOnce(value)
	}
	return b.Tag("textarea", content, opts)
}

// Checkbox renders a checkbox input. See booleanInput for the "label",
// "labelOptions" and "uncheck" options.
func (b *Builder) Checkbox(name string, checked bool, options *attrs.Map) string {
	return b.booleanInput("checkbox", name, checked, options)
}

// Radio renders a radio input.
func (b *Builder) Radio(name string, checked bool, options *attrs.Map) string {
	return b.booleanInput("radio", name, checked, options)
}

// booleanInput renders a checkbox or radio. value defaults to "1". An
// "uncheck" option prepends a hidden input carrying that value so something
// is submitted when the box is unchecked. A "label" option wraps the input
// in a <label> with "labelOptions" as its attributes; the label is inserted
// as is.
func (b *Builder) booleanInput(typ, name string, checked bool, options *attrs.Map) string {
	opts := cloneOrNew(options)
	if !opts.Has("checked") {
		opts.Set("checked", attrs.Bool(checked))
	}
	value := "1"
	if v, ok := opts.Take("value"); ok && !v.IsOmit() {
		value = v.String()
	}

	hidden := ""
	if v, ok := opts.Take("uncheck"); ok && !v.IsOmit() {
		hiddenOpts := attrs.New()
		if f, ok := opts.Get("form"); ok {
			hiddenOpts.Set("form", f)
		}
		if d, ok := opts.Get("disabled"); ok && truthy(d) {
			hiddenOpts.Set("disabled", d)
		}
		hidden = b.hiddenValue(name, v.String(), hiddenOpts)
	}

	labelValue, hasLabel := opts.Take("label")
	labelOpts, _ := opts.Take("labelOptions")

	opts.Set("value", attrs.Text(value))
	input := b.Input(typ, name, "", opts)
	if !hasLabel || labelValue.IsOmit() {
		return hidden + input
	}
	return hidden + b.Tag("label", input+" "+labelValue.String(), labelOpts.Map())
}

// ItemFormatter renders one item of a checkbox list, radio list or plain
// list. name and checked are only meaningful for form lists.
type ItemFormatter interface {
	FormatItem(index int, label, name string, checked bool, value string) string
}

// ItemFormatterFunc adapts a function to ItemFormatter.
type ItemFormatterFunc func(index int, label, name string, checked bool, value string) string

// FormatItem calls f.
func (f ItemFormatterFunc) FormatItem(index int, label, name string, checked bool, value string) string {
	return f(index, label, name, checked, value)
}

// ListOptions configures CheckboxList and RadioList.
type ListOptions struct {
	// Tag wraps the items. Empty means "div"; use NoTag for no wrapper.
	Tag string

	// Attrs are the wrapper attributes.
	Attrs *attrs.Map

	// Separator is placed between items. Default "\n".
	Separator *string

	// Unselect, when set, adds a hidden input submitted when nothing is
	// selected.
	Unselect *string

	// Disabled also disables the unselect input.
	Disabled bool

	// Raw inserts labels without encoding.
	Raw bool

	// ItemAttrs are passed to each generated input.
	ItemAttrs *attrs.Map

	// Item replaces the default input rendering.
	Item ItemFormatter
}

// NoTag disables the wrapper element of a list.
const NoTag = "-"

// CheckboxList renders a checkbox per item. Groups are flattened. The
// name gets a [] suffix.
func (b *Builder) CheckboxList(name string, selection Selection, items Items, opts ListOptions) string {
	if !strings.HasSuffix(name, "[]") {
		name += "[]"
	}
	return b.inputList("checkbox", name, selection, items, opts)
}

// RadioList renders a radio button per item. Groups are flattened.
func (b *Builder) RadioList(name string, selection Selection, items Items, opts ListOptions) string {
	return b.inputList("radio", name, selection, items, opts)
}

func (b *Builder) inputList(typ, name string, selection Selection, items Items, opts ListOptions) string {
	sep := "\n"
	if opts.Separator != nil {
		sep = *opts.Separator
	}

	lines := make([]string, 0, len(items))
	for i, it := range items.leaves() {
		checked := selection.Contains(it.Key)
		if opts.Item != nil {
			lines = append(lines, opts.Item.FormatItem(i, it.Label, name, checked, it.Key))
			continue
		}
		label := it.Label
		if !opts.Raw {
			label = b.enc.Encode(label)
		}
		itemOpts := cloneOrNew(opts.ItemAttrs)
		itemOpts.Set("value", attrs.Text(it.Key))
		itemOpts.Set("label", attrs.Text(label))
		lines = append(lines, b.booleanInput(typ, name, checked, itemOpts))
	}

	hidden := ""
	if opts.Unselect != nil {
		hiddenOpts := attrs.New()
		if opts.Disabled {
			hiddenOpts.Set("disabled", attrs.Bool(true))
		}
		hidden = b.hiddenValue(strings.TrimSuffix(name, "[]"), *opts.Unselect, hiddenOpts)
	}

	content := strings.Join(lines, sep)
	switch opts.Tag {
	case NoTag:
		return hidden + content
	case "":
		return hidden + b.Tag("div", content, opts.Attrs)
	default:
		return hidden + b.Tag(opts.Tag, content, opts.Attrs)
	}
}

// Ul renders an unordered list of items. formatter may be nil.
func (b *Builder) Ul(items []string, formatter ItemFormatter, options *attrs.Map) string {
	return b.list("ul", items, formatter, options)
}

// Ol renders an ordered list of items. formatter may be nil.
func (b *Builder) Ol(items []string, formatter ItemFormatter, options *attrs.Map) string {
	return b.list("ol", items, formatter, options)
}

// list renders items as <li> elements. An "encode" option of false inserts
// items raw; "itemOptions" holds the <li> attributes. An empty list renders
// an empty element.
func (b *Builder) list(tag string, items []string, formatter ItemFormatter, options *attrs.Map) string {
	opts := cloneOrNew(options)
	encode := true
	if v, ok := opts.Take("encode"); ok {
		encode = truthy(v)
	}
	itemOpts, _ := opts.Take("itemOptions")

	if len(items) == 0 {
		return b.Tag(tag, "", opts)
	}

	lines := make([]string, len(items))
	for i, item := range items {
		if formatter != nil {
			lines[i] = formatter.FormatItem(i, item, "", false, strconv.Itoa(i))
			continue
		}
		if encode {
			item = b.enc.Encode(item)
		}
		lines[i] = b.Tag("li", item, itemOpts.Map())
	}
	return b.Tag(tag, "\n"+strings.Join(lines, "\n")+"\n", opts)
}
