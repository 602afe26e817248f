package markup

import (
	"github.com/vango-dev/htmlkit/pkg/attrs"
)

// A renders a hyperlink. text is inserted as is. An empty href leaves the
// attribute out.
func (b *Builder) A(text, href string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	if href != "" {
		opts.Set("href", attrs.Text(href))
	}
	return b.Tag("a", text, opts)
}

// Mailto renders a mailto link. An empty text shows the address.
func (b *Builder) Mailto(text, email string, options *attrs.Map) string {
	if text == "" {
		text = b.enc.Encode(email)
	}
	return b.A(text, "mailto:"+email, options)
}

// Img renders an image. alt is always present, empty by default.
func (b *Builder) Img(src string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	opts.Set("src", attrs.Text(src))
	if !opts.Has("alt") {
		opts.Set("alt", attrs.Text(""))
	}
	return b.Tag("img", "", opts)
}

// Label renders a label. An empty forID leaves out the for attribute.
func (b *Builder) Label(content, forID string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	if forID != "" {
		opts.Set("for", attrs.Text(forID))
	}
	return b.Tag("label", content, opts)
}

// Button renders a <button>, of type "button" unless options say otherwise.
func (b *Builder) Button(content string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	if !opts.Has("type") {
		opts.Set("type", attrs.Text("button"))
	}
	return b.Tag("button", content, opts)
}

// SubmitButton renders a submit button.
func (b *Builder) SubmitButton(content string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	opts.Set("type", attrs.Text("submit"))
	return b.Button(content, opts)
}

// ResetButton renders a reset button.
func (b *Builder) ResetButton(content string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	opts.Set("type", attrs.Text("reset"))
	return b.Button(content, opts)
}

// CSSFile renders a stylesheet link. A "noscript" option wraps it in a
// <noscript> element.
func (b *Builder) CSSFile(href string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	if !opts.Has("rel") {
		opts.Set("rel", attrs.Text("stylesheet"))
	}
	opts.Set("href", attrs.Text(href))

	noscript := false
	if v, ok := opts.Take("noscript"); ok {
		noscript = truthy(v)
	}
	link := b.Tag("link", "", opts)
	if noscript {
		return "<noscript>" + link + "</noscript>"
	}
	return link
}

// JSFile renders an external script element.
func (b *Builder) JSFile(src string, options *attrs.Map) string {
	opts := cloneOrNew(options)
	opts.Set("src", attrs.Text(src))
	return b.Tag("script", "", opts)
}

// Style renders an inline <style> element. content is not encoded.
func (b *Builder) Style(content string, options *attrs.Map) string {
	return b.Tag("style", content, options)
}

// Script renders an inline <script> element. content is not encoded.
func (b *Builder) Script(content string, options *attrs.Map) string {
	return b.Tag("script", content, options)
}
