// Package attrs renders HTML attribute maps and merges CSS classes and
// inline styles.
//
// An attribute map is an ordered *Map from name to Value. Value is a tagged
// union whose kind decides how the attribute is written:
//
//   - Omit: nothing is written
//   - Bool: the bare name when true, nothing when false
//   - Scalar: name="escaped value"
//   - List: space-joined for class, JSON for anything else
//   - Map: expanded per key for data prefixes, serialized as CSS for
//     style, JSON for anything else
//
// # Rendering
//
//	m := attrs.New().
//	    Set("value", attrs.Text("v")).
//	    Set("type", attrs.Text("text")).
//	    Set("data", attrs.Nested(attrs.Of("id", 1, "name", "kit")))
//
//	attrs.Render(m)
//	// ` type="text" value="v" data-id="1" data-name="kit"`
//
// Attributes named in the renderer's order table come first. The table and
// the data prefixes are part of Config, so a custom Renderer never affects
// the shared default.
//
// # Classes and styles
//
// AddClass, RemoveClass, AddStyle and RemoveStyle edit the "class" and
// "style" entries of a map in place, producing values the renderer knows
// how to write. StyleToMap and StyleToString convert between the inline
// style text form and a property map.
package attrs
