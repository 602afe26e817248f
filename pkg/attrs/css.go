package attrs

import "strings"

// AddClass merges class into m's "class" attribute.
//
// If m has no class yet, class is stored as given. A list class keeps list
// shape; a text class is split on whitespace, merged and joined again.
// Unkeyed entries are appended unless the same class is already present;
// keyed entries are appended only when their key is not already taken.
// The result never contains the same class twice.
func AddClass(m *Map, class Value) {
	if class.IsOmit() {
		return
	}
	existing, ok := m.Get("class")
	if !ok || existing.IsOmit() {
		m.Set("class", class)
		return
	}

	if existing.Kind() == KindScalar {
		merged := mergeClasses(splitClasses(existing.String()), classEntries(class))
		if class.Kind() == KindScalar {
			m.Set("class", Text(joinEntries(merged)))
		} else {
			m.Set("class", Entries(merged...))
		}
		return
	}

	m.Set("class", Entries(mergeClasses(existing.Entries(), classEntries(class))...))
}

// AddClasses is AddClass for plain class names.
func AddClasses(m *Map, classes ...string) {
	if len(classes) == 0 {
		return
	}
	AddClass(m, List(classes...))
}

// RemoveClass removes every class in class from m's "class" attribute.
// When nothing remains the attribute is deleted.
func RemoveClass(m *Map, class Value) {
	existing, ok := m.Get("class")
	if !ok || existing.IsOmit() {
		return
	}

	remove := make(map[string]bool)
	for _, e := range classEntries(class) {
		remove[e.Value] = true
	}

	var current []Entry
	if existing.Kind() == KindScalar {
		current = splitClasses(existing.String())
	} else {
		current = existing.Entries()
	}

	kept := current[:0]
	for _, e := range current {
		if !remove[e.Value] {
			kept = append(kept, e)
		}
	}

	switch {
	case len(kept) == 0:
		m.Delete("class")
	case existing.Kind() == KindScalar:
		m.Set("class", Text(joinEntries(kept)))
	default:
		m.Set("class", Entries(kept...))
	}
}

// RemoveClasses is RemoveClass for plain class names.
func RemoveClasses(m *Map, classes ...string) {
	RemoveClass(m, List(classes...))
}

// mergeClasses appends additions to existing and drops duplicate values,
// keeping the first occurrence.
func mergeClasses(existing, additions []Entry) []Entry {
	keys := make(map[string]bool)
	values := make(map[string]bool)
	for _, e := range existing {
		if e.Key != "" {
			keys[e.Key] = true
		}
		values[e.Value] = true
	}

	out := append([]Entry(nil), existing...)
	for _, e := range additions {
		if e.Key == "" {
			if !values[e.Value] {
				out = append(out, e)
				values[e.Value] = true
			}
			continue
		}
		if !keys[e.Key] {
			out = append(out, e)
			keys[e.Key] = true
		}
	}

	seen := make(map[string]bool, len(out))
	unique := out[:0]
	for _, e := range out {
		if seen[e.Value] {
			continue
		}
		seen[e.Value] = true
		unique = append(unique, e)
	}
	return unique
}

// classEntries normalizes a class value into entries. Text is split on
// whitespace.
func classEntries(v Value) []Entry {
	if v.Kind() == KindScalar {
		return splitClasses(v.String())
	}
	return v.Entries()
}

func splitClasses(s string) []Entry {
	fields := strings.Fields(s)
	out := make([]Entry, len(fields))
	for i, f := range fields {
		out[i] = Entry{Value: f}
	}
	return out
}

func joinEntries(entries []Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Value
	}
	return strings.Join(parts, " ")
}

// AddStyle merges style into m's "style" attribute. style may be text in
// "prop: value;" form or a map of properties. With overwrite, incoming
// properties replace existing ones; without it, existing properties win.
//
// When m already has a style the merged result is stored as text. Otherwise
// a map style is serialized and a text style is stored as given.
func AddStyle(m *Map, style Value, overwrite bool) {
	existing, ok := m.Get("style")
	if !ok || existing.IsOmit() || existing.Len() == 0 && existing.String() == "" {
		if style.Kind() == KindMap {
			setStyle(m, style.Map())
			return
		}
		m.Set("style", style)
		return
	}

	merged := styleMap(existing).Clone()
	for prop, val := range styleMap(style).All() {
		if !overwrite && merged.Has(prop) {
			continue
		}
		merged.Set(prop, val)
	}
	setStyle(m, merged)
}

// RemoveStyle deletes the given properties from m's "style" attribute.
func RemoveStyle(m *Map, properties ...string) {
	existing, ok := m.Get("style")
	if !ok || existing.IsOmit() {
		return
	}
	style := styleMap(existing).Clone()
	for _, p := range properties {
		style.Delete(p)
	}
	setStyle(m, style)
}

// setStyle stores style as text, deleting the attribute when it is empty.
func setStyle(m *Map, style *Map) {
	if s := StyleToString(style); s != "" {
		m.Set("style", Text(s))
		return
	}
	m.Delete("style")
}

func styleMap(v Value) *Map {
	if v.Kind() == KindMap {
		return v.Map()
	}
	return StyleToMap(v.String())
}

// StyleToMap parses "prop: value; prop2: value2" into an ordered map.
// Segments without a colon or with an empty property name are dropped.
func StyleToMap(style string) *Map {
	m := New()
	for _, segment := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		m.Set(prop, Text(strings.TrimSpace(value)))
	}
	return m
}

// StyleToString serializes a property map as "prop: value; prop2: value2;".
// An empty map yields "", which callers treat as "omit the attribute".
func StyleToString(style *Map) string {
	var buf strings.Builder
	for prop, value := range style.All() {
		buf.WriteString(prop)
		buf.WriteString(": ")
		buf.WriteString(value.String())
		buf.WriteString("; ")
	}
	return strings.TrimRight(buf.String(), " \t\n\r")
}
