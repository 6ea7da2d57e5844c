package html

import (
	"bytes"

	"github.com/pagesift/pagesift"
	"golang.org/x/net/html"
)

// Render serializes a document tree to canonical HTML: lowercase tag
// names, attributes in captured order with double-quote style, void
// elements without end tags, text re-escaped only as far as structural
// validity requires. Whitespace text nodes come back verbatim, so
// parsing a canonical document and rendering it reproduces the input.
//
// The output never contains a NUL byte: the HTML5 tokenizer replaces
// U+0000 during parsing. The FFI boundary relies on this but still
// carries an explicit length.
func Render(doc *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, pagesift.Errorf(pagesift.EINTERNAL, "render: %v", err)
	}
	return buf.Bytes(), nil
}
