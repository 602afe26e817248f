package document

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/htmlkit/pkg/markup"
)

const tracerName = "github.com/vango-dev/htmlkit/pkg/document"

// Renderer turns documents into markup. The zero value renders with the
// default markup builder, without minification, tracing through the global
// OpenTelemetry provider.
type Renderer struct {
	// Builder renders tags and attributes. Nil selects markup.Default().
	Builder *markup.Builder

	// Minify minifies the rendered markup.
	Minify bool

	// Tracer records a span per Render call. Nil selects the global
	// tracer provider.
	Tracer trace.Tracer

	// Logger receives debug output about unknown elements. Nil disables
	// logging.
	Logger *slog.Logger
}

// Render renders the tree rooted at n.
func (r *Renderer) Render(ctx context.Context, n *Node) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tracer := r.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	_, span := tracer.Start(ctx, "document.Render")
	defer span.End()

	b := r.Builder
	if b == nil {
		b = markup.Default()
	}

	var buf strings.Builder
	r.render(b, &buf, n)
	out := buf.String()

	if r.Minify {
		minified, err := Minify(out)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "minify failed")
			return "", err
		}
		out = minified
	}

	span.SetAttributes(
		attribute.Int("htmlkit.nodes", n.Count()),
		attribute.Int("htmlkit.bytes", len(out)),
		attribute.Bool("htmlkit.minified", r.Minify),
	)
	return out, nil
}

func (r *Renderer) render(b *markup.Builder, buf *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.IsText() {
		buf.WriteString(b.Encode(n.Text))
		buf.WriteString(n.HTML)
		return
	}

	if r.Logger != nil && !markup.IsKnownName(n.Tag) && !strings.Contains(n.Tag, "-") {
		r.Logger.Debug("unknown element", "tag", n.Tag, "line", n.Line)
	}

	if n.Tag == "select" {
		r.renderSelect(b, buf, n)
		return
	}

	var content strings.Builder
	content.WriteString(b.Encode(n.Text))
	content.WriteString(n.HTML)
	for _, c := range n.Children {
		r.render(b, &content, c)
	}
	buf.WriteString(b.Tag(n.Tag, content.String(), n.Attrs))
}

// renderSelect renders a select node. Its prompt and option directives
// never become attributes, with or without items. Named selects without
// children go through DropDownList so "multiple" gets list box handling.
// Child nodes follow the generated options.
func (r *Renderer) renderSelect(b *markup.Builder, buf *strings.Builder, n *Node) {
	if len(n.Children) == 0 {
		if name, ok := n.Attrs.Get("name"); ok && !name.IsOmit() {
			buf.WriteString(b.DropDownList(name.String(), n.Selection, n.Items, n.Attrs))
			return
		}
	}

	opts := n.Attrs.Clone()
	var lines []string
	if options := b.RenderSelectOptions(n.Selection, n.Items, opts); options != "" {
		lines = append(lines, options)
	}
	if text := b.Encode(n.Text) + n.HTML; text != "" {
		lines = append(lines, text)
	}
	for _, c := range n.Children {
		var child strings.Builder
		r.render(b, &child, c)
		lines = append(lines, child.String())
	}

	content := ""
	if len(lines) > 0 {
		content = "\n" + strings.Join(lines, "\n") + "\n"
	}
	buf.WriteString(b.Tag("select", content, opts))
}
