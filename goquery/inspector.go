// Package goquery provides read-only structural inspection of HTML
// documents using CSS selectors. It never modifies a document; pruning
// policy lives in the html package.
package goquery

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagesift/pagesift"
)

// Ensure Inspector implements pagesift.Inspector at compile time.
var _ pagesift.Inspector = (*Inspector)(nil)

// Inspector reports structural information about HTML documents.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect parses markup and summarizes its structural regions: title,
// main presence, region counts and how many regions wrap a main element
// (and are therefore protected from pruning).
func (i *Inspector) Inspect(markup []byte) (*pagesift.PageInfo, error) {
	if len(markup) == 0 {
		return nil, pagesift.Errorf(pagesift.EINVALID, "empty markup input")
	}
	if !utf8.Valid(markup) {
		return nil, pagesift.Errorf(pagesift.EENCODING, "input is not valid UTF-8")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "failed to parse HTML: %v", err)
	}

	info := &pagesift.PageInfo{
		Title:   strings.TrimSpace(doc.Find("title").First().Text()),
		HasMain: doc.Find("main").Length() > 0,
		Headers: doc.Find("header").Length(),
		Footers: doc.Find("footer").Length(),
		Navs:    doc.Find("nav").Length(),
	}

	doc.Find("header, footer, nav").Each(func(_ int, sel *goquery.Selection) {
		if sel.Find("main").Length() > 0 {
			info.Protected++
		}
	})

	return info, nil
}
