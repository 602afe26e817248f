package attrs

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/htmlkit/pkg/escape"
)

// defaultOrder lists attributes that are rendered first, in this order.
var defaultOrder = []string{
	"type", "id", "class", "name", "value",
	"href", "src", "srcset", "form", "action", "method",
	"selected", "checked", "readonly", "disabled", "multiple",
	"size", "maxlength", "minlength", "width", "height", "rows", "cols",
	"alt", "title", "rel", "media",
}

// defaultDataPrefixes are attribute names whose map values expand into one
// attribute per key (data="{id: 1}" → data-id="1").
var defaultDataPrefixes = []string{"data", "data-ng", "ng"}

// DefaultOrder returns a copy of the default attribute order.
func DefaultOrder() []string { return append([]string(nil), defaultOrder...) }

// DefaultDataPrefixes returns a copy of the default data prefixes.
func DefaultDataPrefixes() []string { return append([]string(nil), defaultDataPrefixes...) }

// Config configures a Renderer.
type Config struct {
	// Order lists attribute names rendered first, in this order. Other
	// attributes follow in their original order. Nil selects DefaultOrder.
	Order []string

	// DataPrefixes lists attribute names whose map values are expanded per
	// key. Nil selects DefaultDataPrefixes.
	DataPrefixes []string

	// Encoder encodes scalar values. Nil selects a UTF-8 encoder.
	Encoder *escape.Encoder

	// Logger receives a warning when a value cannot be JSON encoded.
	// Nil disables logging.
	Logger *slog.Logger
}

// Renderer serializes attribute maps. A Renderer is immutable after
// construction and safe for concurrent use.
type Renderer struct {
	order   []string
	ordered map[string]bool
	data    map[string]bool
	enc     *escape.Encoder
	logger  *slog.Logger
}

// NewRenderer creates a Renderer from cfg, filling in defaults.
func NewRenderer(cfg Config) *Renderer {
	if cfg.Order == nil {
		cfg.Order = defaultOrder
	}
	if cfg.DataPrefixes == nil {
		cfg.DataPrefixes = defaultDataPrefixes
	}
	if cfg.Encoder == nil {
		cfg.Encoder = &escape.Encoder{}
	}

	r := &Renderer{
		order:   make([]string, 0, len(cfg.Order)),
		ordered: make(map[string]bool, len(cfg.Order)),
		data:    make(map[string]bool, len(cfg.DataPrefixes)),
		enc:     cfg.Encoder,
		logger:  cfg.Logger,
	}
	// A repeated name keeps its first position.
	for _, name := range cfg.Order {
		if r.ordered[name] {
			continue
		}
		r.ordered[name] = true
		r.order = append(r.order, name)
	}
	for _, name := range cfg.DataPrefixes {
		r.data[name] = true
	}
	return r
}

var defaultRenderer = NewRenderer(Config{})

// Default returns the shared Renderer built from the default configuration.
func Default() *Renderer { return defaultRenderer }

// Render serializes m with the default Renderer.
func Render(m *Map) string { return defaultRenderer.Render(m) }

// Encoder returns the encoder used for scalar values.
func (r *Renderer) Encoder() *escape.Encoder { return r.enc }

// Render serializes m into an attribute string. The result is empty or
// starts with a single space, ready to follow a tag name.
func (r *Renderer) Render(m *Map) string {
	if m.Len() == 0 {
		return ""
	}

	var buf strings.Builder
	if m.Len() == 1 {
		for name, v := range m.All() {
			r.writeAttr(&buf, name, v)
		}
		return buf.String()
	}

	for _, name := range r.order {
		if v, ok := m.Get(name); ok {
			r.writeAttr(&buf, name, v)
		}
	}
	for name, v := range m.All() {
		if !r.ordered[name] {
			r.writeAttr(&buf, name, v)
		}
	}
	return buf.String()
}

// writeAttr writes a single attribute according to its value shape.
func (r *Renderer) writeAttr(buf *strings.Builder, name string, v Value) {
	switch v.Kind() {
	case KindOmit:
		return

	case KindBool:
		if v.Bool() {
			buf.WriteByte(' ')
			buf.WriteString(name)
		}

	case KindScalar:
		r.writeQuoted(buf, name, v.String())

	case KindList, KindMap:
		switch {
		case v.Kind() == KindMap && r.data[name]:
			r.writeData(buf, name, v.Map())
		case name == "class":
			if v.Len() == 0 {
				return
			}
			r.writeQuoted(buf, name, strings.Join(v.Strings(), " "))
		case name == "style" && v.Kind() == KindMap:
			if v.Len() == 0 {
				return
			}
			r.writeQuoted(buf, name, StyleToString(v.Map()))
		default:
			r.writeJSON(buf, name, v)
		}
	}
}

// writeData expands a data map into name-key attributes.
func (r *Renderer) writeData(buf *strings.Builder, name string, m *Map) {
	for key, inner := range m.All() {
		attr := name + "-" + key
		switch inner.Kind() {
		case KindOmit:
		case KindBool:
			if inner.Bool() {
				buf.WriteByte(' ')
				buf.WriteString(attr)
			}
		case KindList, KindMap:
			r.writeJSON(buf, attr, inner)
		default:
			r.writeQuoted(buf, attr, inner.String())
		}
	}
}

func (r *Renderer) writeQuoted(buf *strings.Builder, name, value string) {
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`="`)
	buf.WriteString(r.enc.Encode(value))
	buf.WriteByte('"')
}

// writeJSON writes name='<json>'. The payload is not entity encoded;
// escape.JSON guarantees it contains no single quote, <, > or &.
func (r *Renderer) writeJSON(buf *strings.Builder, name string, v Value) {
	payload, err := escape.JSON(v)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("skipping attribute with unencodable value", "attr", name, "error", err)
		}
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(name)
	buf.WriteString(`='`)
	buf.WriteString(payload)
	buf.WriteByte('\'')
}
