// Package markup builds HTML fragments as strings: generic tags, links,
// images, form inputs, select boxes with options and option groups,
// checkbox and radio lists, and plain lists.
//
// A Builder combines an attribute renderer, an entity encoder and the set of
// void elements. The package-level functions use a shared Builder with the
// default configuration; create one with NewBuilder to change the attribute
// order, data prefixes, void elements or charset.
//
//	b := markup.NewBuilder(markup.Config{})
//	b.Tag("p", b.Encode("a < b"), attrs.Of("class", "note"))
//	// <p class="note">a &lt; b</p>
//
// # Select options
//
// Items is a tree of Leaf and Group entries. RenderSelectOptions matches
// each leaf against a Selection and consumes the select directives
// ("prompt", "options", "groups", "encodeSpaces", "encode") from the tag
// options it is given, so the remaining map holds only <select> attributes.
//
//	items := markup.Items{
//	    markup.Leaf(1, "One"),
//	    markup.Group("More", markup.Leaf(2, "Two")),
//	}
//	b.DropDownList("n", markup.Selected(2), items, nil)
//
// Helpers that take an options map copy it before use; only
// RenderSelectOptions and TakeSelectConfig edit the map they are given.
package markup
