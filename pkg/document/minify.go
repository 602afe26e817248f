package document

import (
	"regexp"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"

	"github.com/vango-dev/htmlkit/internal/errors"
)

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

// getMinifier returns the shared minifier. End tags, document tags and
// default attribute values are kept so the output stays structurally equal
// to the input.
func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		m := minify.New()
		m.Add("text/html", &html.Minifier{
			KeepDocumentTags:        true,
			KeepConditionalComments: true,
			KeepEndTags:             true,
			KeepDefaultAttrVals:     true,
		})
		m.Add("text/css", &css.Minifier{KeepCSS2: true})
		m.AddRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), &js.Minifier{})
		m.AddRegexp(regexp.MustCompile(`^(application|text)/(x-|(ld|manifest)\+)?json$`), &json.Minifier{})
		minifier = m
	})
	return minifier
}

// Minify minifies rendered markup, including inline styles, scripts and
// JSON script blocks.
func Minify(markup string) (string, error) {
	out, err := getMinifier().String("text/html", markup)
	if err != nil {
		return "", errors.New("H023").Wrap(err)
	}
	return out, nil
}
