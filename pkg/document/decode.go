package document

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/attrs"
	"github.com/vango-dev/htmlkit/pkg/markup"
)

// Decode reads a YAML or JSON document from r.
func Decode(r io.Reader) (*Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("H020").Wrap(err)
	}
	return Parse("", src)
}

// Parse decodes a YAML or JSON document. name labels error locations and
// may be empty.
//
// Mapping order is preserved: attributes and select items keep the order
// in which they are written.
func Parse(name string, src []byte) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(src, &root); err != nil {
		return nil, errors.New("H020").
			WithLocation(name, 0, 0).
			Wrap(err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("H020").
			WithLocation(name, 0, 0).
			WithDetail("The document is empty.")
	}

	d := &decoder{name: name, src: src}
	return d.node(root.Content[0])
}

type decoder struct {
	name string
	src  []byte
}

func (d *decoder) fail(code string, y *yaml.Node, detail string) error {
	return errors.New(code).
		WithDetail(detail).
		WithSource(d.name, d.src, y.Line, y.Column)
}

func resolve(y *yaml.Node) *yaml.Node {
	for y.Kind == yaml.AliasNode && y.Alias != nil {
		y = y.Alias
	}
	return y
}

func (d *decoder) node(y *yaml.Node) (*Node, error) {
	y = resolve(y)
	n := &Node{Line: y.Line, Column: y.Column}

	switch y.Kind {
	case yaml.ScalarNode:
		if y.ShortTag() != "!!null" {
			n.Text = y.Value
		}
		return n, nil
	case yaml.MappingNode:
	default:
		return nil, d.fail("H021", y, "Expected a mapping or a string.")
	}

	var directives []struct {
		key string
		val attrs.Value
	}

	for i := 0; i+1 < len(y.Content); i += 2 {
		key, val := y.Content[i], resolve(y.Content[i+1])

		switch key.Value {
		case "tag":
			if val.Kind != yaml.ScalarNode || val.Value == "" {
				return nil, d.fail("H021", val, "tag must be a non-empty string.")
			}
			n.Tag = val.Value
		case "text", "html":
			if val.Kind != yaml.ScalarNode {
				return nil, d.fail("H021", val, key.Value+" must be a string.")
			}
			if key.Value == "text" {
				n.Text = val.Value
			} else {
				n.HTML = val.Value
			}
		case "attrs":
			if val.Kind != yaml.MappingNode {
				return nil, d.fail("H021", val, "attrs must be a mapping.")
			}
			m, err := d.attrMap(val)
			if err != nil {
				return nil, err
			}
			n.Attrs = m
		case "children":
			if val.Kind != yaml.SequenceNode {
				return nil, d.fail("H021", val, "children must be a sequence.")
			}
			for _, c := range val.Content {
				child, err := d.node(c)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, child)
			}
		case "items":
			items, err := d.items(val)
			if err != nil {
				return nil, err
			}
			n.Items = items
		case "selection":
			sel, err := d.selection(val)
			if err != nil {
				return nil, err
			}
			n.Selection = sel
		case "prompt", "multiple":
			v, err := d.value(val)
			if err != nil {
				return nil, err
			}
			directives = append(directives, struct {
				key string
				val attrs.Value
			}{key.Value, v})
		default:
			return nil, d.fail("H021", key, "Unknown node key "+key.Value+".")
		}
	}

	if n.Tag == "" && (n.Attrs != nil || n.Children != nil || n.Items != nil || len(directives) > 0) {
		return nil, d.fail("H021", y, "A node with attrs, children or items needs a tag.")
	}
	if len(directives) > 0 {
		if n.Attrs == nil {
			n.Attrs = attrs.New()
		}
		for _, dir := range directives {
			n.Attrs.Set(dir.key, dir.val)
		}
	}
	return n, nil
}

func (d *decoder) attrMap(y *yaml.Node) (*attrs.Map, error) {
	m := attrs.New()
	for i := 0; i+1 < len(y.Content); i += 2 {
		v, err := d.value(y.Content[i+1])
		if err != nil {
			return nil, err
		}
		m.Set(y.Content[i].Value, v)
	}
	return m, nil
}

// value converts a YAML node into an attribute value: null is Omit, bools
// are Bool, numbers keep their type for JSON output, sequences of scalars
// are List and mappings are Map.
func (d *decoder) value(y *yaml.Node) (attrs.Value, error) {
	y = resolve(y)
	switch y.Kind {
	case yaml.ScalarNode:
		switch y.ShortTag() {
		case "!!null":
			return attrs.Omit(), nil
		case "!!bool":
			var b bool
			if err := y.Decode(&b); err != nil {
				return attrs.Value{}, d.fail("H021", y, err.Error())
			}
			return attrs.Bool(b), nil
		case "!!int", "!!float":
			var x any
			if err := y.Decode(&x); err != nil {
				return attrs.Value{}, d.fail("H021", y, err.Error())
			}
			return attrs.Scalar(x), nil
		default:
			return attrs.Text(y.Value), nil
		}
	case yaml.SequenceNode:
		values := make([]string, 0, len(y.Content))
		for _, item := range y.Content {
			item = resolve(item)
			if item.Kind != yaml.ScalarNode {
				return attrs.Value{}, d.fail("H021", item, "Attribute lists may only hold strings and numbers.")
			}
			values = append(values, item.Value)
		}
		return attrs.List(values...), nil
	case yaml.MappingNode:
		m, err := d.attrMap(y)
		if err != nil {
			return attrs.Value{}, err
		}
		return attrs.Nested(m), nil
	default:
		return attrs.Value{}, d.fail("H021", y, "Unsupported attribute value.")
	}
}

// items converts a mapping into select items. A mapping value is a group.
func (d *decoder) items(y *yaml.Node) (markup.Items, error) {
	if y.Kind != yaml.MappingNode {
		return nil, d.fail("H022", y, "items must be a mapping.")
	}
	items := make(markup.Items, 0, len(y.Content)/2)
	for i := 0; i+1 < len(y.Content); i += 2 {
		key, val := y.Content[i], resolve(y.Content[i+1])
		switch val.Kind {
		case yaml.ScalarNode:
			items = append(items, markup.Leaf(key.Value, val.Value))
		case yaml.MappingNode:
			children, err := d.items(val)
			if err != nil {
				return nil, err
			}
			items = append(items, markup.Group(key.Value, children...))
		default:
			return nil, d.fail("H022", val, "Item "+key.Value+" must be a label or a group mapping.")
		}
	}
	return items, nil
}

func (d *decoder) selection(y *yaml.Node) (markup.Selection, error) {
	switch y.Kind {
	case yaml.ScalarNode:
		if y.ShortTag() == "!!null" {
			return markup.Selection{}, nil
		}
		return markup.Selected(y.Value), nil
	case yaml.SequenceNode:
		values := make([]any, 0, len(y.Content))
		for _, item := range y.Content {
			item = resolve(item)
			if item.Kind != yaml.ScalarNode {
				return markup.Selection{}, d.fail("H022", item, "selection entries must be scalars.")
			}
			values = append(values, item.Value)
		}
		return markup.SelectedAll(values...), nil
	default:
		return markup.Selection{}, d.fail("H022", y, "selection must be a value or a list of values.")
	}
}
