package escape

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset is the charset assumed when an Encoder has none configured.
const DefaultCharset = "utf-8"

// Encoder entity-encodes text for safe inclusion in HTML content and
// double-quoted attribute values.
//
// The zero value treats input as UTF-8. Input in another charset is decoded
// to UTF-8 first; invalid byte sequences are substituted with U+FFFD rather
// than rejected.
type Encoder struct {
	charset string
	enc     encoding.Encoding
}

// NewEncoder returns an Encoder that interprets input in the given charset.
// An empty charset selects UTF-8.
func NewEncoder(charset string) (*Encoder, error) {
	name, enc, err := lookup(charset)
	if err != nil {
		return nil, err
	}
	e := &Encoder{charset: name}
	if name != DefaultCharset {
		e.enc = enc
	}
	return e, nil
}

// Charset returns the canonical name of the input charset.
func (e *Encoder) Charset() string {
	if e == nil || e.charset == "" {
		return DefaultCharset
	}
	return e.charset
}

// Encode converts &, <, >, " and ' into HTML entities. Existing entities are
// encoded again.
func (e *Encoder) Encode(s string) string {
	return e.encode(s, true)
}

// EncodeOnce is like Encode but leaves well-formed entities untouched.
func (e *Encoder) EncodeOnce(s string) string {
	return e.encode(s, false)
}

// Decode reverses Encode for the five special characters. Other entities
// are left as they are.
func (e *Encoder) Decode(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return decoder.Replace(s)
}

func (e *Encoder) encode(s string, double bool) string {
	if e != nil && e.enc != nil {
		// Decoders carry state, so each call gets its own.
		if utf, err := e.enc.NewDecoder().String(s); err == nil {
			s = utf
		}
	}

	var buf strings.Builder
	buf.Grow(len(s))

	for i, r := range s {
		switch r {
		case '&':
			if !double && entityAt(s[i:]) {
				buf.WriteByte('&')
				continue
			}
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			// Invalid UTF-8 arrives here as utf8.RuneError and is written as U+FFFD.
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

var decoder = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#039;", "'",
	"&#39;", "'",
	"&#x27;", "'",
)

// entityAt reports whether s starts with a named or numeric character reference.
func entityAt(s string) bool {
	if len(s) < 3 || s[0] != '&' {
		return false
	}
	i := 1
	switch {
	case s[i] == '#':
		i++
		hex := i < len(s) && (s[i] == 'x' || s[i] == 'X')
		if hex {
			i++
		}
		start := i
		for i < len(s) && (isDigit(s[i]) || hex && isHex(s[i])) {
			i++
		}
		if i == start {
			return false
		}
	case isAlpha(s[i]):
		for i < len(s) && (isAlpha(s[i]) || isDigit(s[i])) {
			i++
		}
	default:
		return false
	}
	return i < len(s) && s[i] == ';'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isHex(c byte) bool   { return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' }

// Transcode converts UTF-8 markup into the given output charset. Runes the
// charset cannot represent become numeric character references.
func Transcode(html, charset string) ([]byte, error) {
	name, enc, err := lookup(charset)
	if err != nil {
		return nil, err
	}
	if name == DefaultCharset {
		return []byte(html), nil
	}
	out, err := encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes([]byte(html))
	if err != nil {
		return nil, fmt.Errorf("transcode to %s: %w", name, err)
	}
	return out, nil
}

func lookup(charset string) (string, encoding.Encoding, error) {
	if charset == "" {
		charset = DefaultCharset
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "", nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	return name, enc, nil
}

var defaultEncoder = &Encoder{}

// Encode encodes s as UTF-8 input using the default Encoder.
func Encode(s string) string { return defaultEncoder.Encode(s) }

// Decode decodes the five special entities in s.
func Decode(s string) string { return defaultEncoder.Decode(s) }
