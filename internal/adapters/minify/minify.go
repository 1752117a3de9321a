package minify

import (
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

// HTMLMinifier compacts generated pages with a fixed option set: whitespace is
// collapsed, comments and optional tags are dropped, default and empty
// attribute values are removed and inline CSS, JS and SVG are minified.
// Attribute quotes are kept.
type HTMLMinifier struct {
	m *minify.M
}

func New() *HTMLMinifier {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepQuotes:          true,
		KeepDefaultAttrVals: false,
		KeepDocumentTags:    false,
		KeepEndTags:         false,
		KeepWhitespace:      false,
	})
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	m.AddFuncRegexp(regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`), js.Minify)

	return &HTMLMinifier{m: m}
}

func (h *HTMLMinifier) Minify(page string) (string, error) {
	return h.m.String("text/html", page)
}
