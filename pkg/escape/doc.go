// Package escape provides the text encoding primitives used by the markup
// builders: HTML entity encoding and decoding, HTML-safe JSON for
// single-quoted attribute values, and transcoding of finished markup into a
// non-UTF-8 output charset.
//
// Encoding follows the HTML5 rules for quoted attribute values: the five
// characters &, <, >, " and ' are replaced by entities and invalid byte
// sequences are substituted with U+FFFD instead of failing.
//
//	escape.Encode(`<a href="x">`) // &lt;a href=&quot;x&quot;&gt;
//
// Encoders for other input charsets are created with NewEncoder, using the
// WHATWG encoding labels understood by golang.org/x/text/encoding/htmlindex.
package escape
