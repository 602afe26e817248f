package escape

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSON serializes v for embedding in a single-quoted HTML attribute.
//
// <, > and & are emitted as \u003c, \u003e and \u0026 and single quotes as
// \u0027, so the payload can neither close the attribute nor open markup.
// Double quotes are left alone; they cannot terminate a single-quoted value.
func JSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(out, "'", `\u0027`), nil
}
