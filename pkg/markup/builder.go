package markup

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/vango-dev/htmlkit/pkg/attrs"
	"github.com/vango-dev/htmlkit/pkg/escape"
)

// defaultVoidElements are elements that never get content or a closing tag.
var defaultVoidElements = []string{
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
}

// DefaultVoidElements returns a copy of the default void element list.
func DefaultVoidElements() []string {
	return append([]string(nil), defaultVoidElements...)
}

// Config configures a Builder.
type Config struct {
	// Attrs configures attribute rendering.
	Attrs attrs.Config

	// VoidElements lists elements rendered without content or closing tag.
	// Nil selects DefaultVoidElements.
	VoidElements []string

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// Builder produces markup strings. A Builder is immutable after
// construction and safe for concurrent use; the attribute maps passed to it
// are owned by the caller and are not.
type Builder struct {
	attrs  *attrs.Renderer
	enc    *escape.Encoder
	void   map[string]bool
	logger *slog.Logger
}

// NewBuilder creates a Builder from cfg, filling in defaults.
func NewBuilder(cfg Config) *Builder {
	if cfg.VoidElements == nil {
		cfg.VoidElements = defaultVoidElements
	}
	if cfg.Attrs.Logger == nil {
		cfg.Attrs.Logger = cfg.Logger
	}
	r := attrs.NewRenderer(cfg.Attrs)

	b := &Builder{
		attrs:  r,
		enc:    r.Encoder(),
		void:   make(map[string]bool, len(cfg.VoidElements)),
		logger: cfg.Logger,
	}
	for _, name := range cfg.VoidElements {
		b.void[strings.ToLower(name)] = true
	}
	return b
}

var std = NewBuilder(Config{})

// Default returns the shared Builder built from the default configuration.
func Default() *Builder { return std }

// Attrs returns the attribute renderer.
func (b *Builder) Attrs() *attrs.Renderer { return b.attrs }

// Encode entity-encodes s with the builder's encoder.
func (b *Builder) Encode(s string) string { return b.enc.Encode(s) }

// IsVoid reports whether name is a void element.
func (b *Builder) IsVoid(name string) bool {
	return b.void[strings.ToLower(name)]
}

// Tag renders a complete element. content is inserted as is; callers encode
// text content first. Void elements ignore content and get no closing tag.
// An empty name returns content alone.
func (b *Builder) Tag(name, content string, options *attrs.Map) string {
	if name == "" {
		return content
	}
	open := "<" + name + b.attrs.Render(options) + ">"
	if b.IsVoid(name) {
		if content != "" && b.logger != nil {
			b.logger.Debug("dropping content of void element", "tag", name)
		}
		return open
	}
	return open + content + "</" + name + ">"
}

// BeginTag renders an opening tag.
func (b *Builder) BeginTag(name string, options *attrs.Map) string {
	if name == "" {
		return ""
	}
	return "<" + name + b.attrs.Render(options) + ">"
}

// EndTag renders a closing tag.
func (b *Builder) EndTag(name string) string {
	if name == "" {
		return ""
	}
	return "</" + name + ">"
}

// Tag renders an element with the default Builder.
func Tag(name, content string, options *attrs.Map) string {
	return std.Tag(name, content, options)
}

// BeginTag renders an opening tag with the default Builder.
func BeginTag(name string, options *attrs.Map) string { return std.BeginTag(name, options) }

// EndTag renders a closing tag with the default Builder.
func EndTag(name string) string { return std.EndTag(name) }

// IsKnownName reports whether name is an element or attribute name defined
// by HTML.
func IsKnownName(name string) bool {
	return atom.Lookup([]byte(strings.ToLower(name))) != 0
}
