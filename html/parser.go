// Package html implements the pagesift filtering pipeline on top of the
// HTML5 parser from golang.org/x/net/html: parse, prune, serialize.
package html

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/pagesift/pagesift"
	"golang.org/x/net/html"
)

// Default ceilings used when a Limits field is zero.
const (
	DefaultMaxBytes = 8 << 20 // 8 MiB
	DefaultMaxNodes = 250000
)

// Parser parses raw bytes into a document tree.
//
// Input must be valid UTF-8; anything else is rejected with EENCODING
// before parsing starts. Bytes are never silently substituted or
// dropped.
type Parser struct {
	limits pagesift.Limits
}

// Option configures a Parser.
type Option func(*Parser)

// WithLimits overrides the default input ceilings. Zero fields keep
// their defaults.
func WithLimits(l pagesift.Limits) Option {
	return func(p *Parser) {
		p.limits = l
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) maxBytes() int {
	if p.limits.MaxBytes > 0 {
		return p.limits.MaxBytes
	}
	return DefaultMaxBytes
}

func (p *Parser) maxNodes() int {
	if p.limits.MaxNodes > 0 {
		return p.limits.MaxNodes
	}
	return DefaultMaxNodes
}

// Parse parses markup into a document tree. Malformed markup never fails:
// the HTML5 tree construction algorithm implicitly closes unclosed
// elements, treats unknown tags as generic elements and drops invalid
// attributes. Recovery actions worth reporting are returned as notices.
//
// Returns EINVALID for empty input, EOVERSIZE when markup exceeds the
// configured ceilings and EENCODING when it is not valid UTF-8.
func (p *Parser) Parse(markup []byte) (*html.Node, []pagesift.Notice, error) {
	if len(markup) == 0 {
		return nil, nil, pagesift.Errorf(pagesift.EINVALID, "empty markup input")
	}
	if len(markup) > p.maxBytes() {
		return nil, nil, pagesift.Errorf(pagesift.EOVERSIZE,
			"input is %d bytes, ceiling is %d", len(markup), p.maxBytes())
	}
	if !utf8.Valid(markup) {
		return nil, nil, pagesift.Errorf(pagesift.EENCODING, "input is not valid UTF-8")
	}

	notices, err := p.scan(markup)
	if err != nil {
		return nil, nil, err
	}

	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		// html.Parse only fails on reader errors, which bytes.Reader
		// cannot produce.
		return nil, nil, pagesift.Errorf(pagesift.EINTERNAL, "parse: %v", err)
	}
	return doc, notices, nil
}

// scan tokenizes markup once before tree construction to enforce the node
// ceiling and to collect recovery notices. Tags whose end tag the HTML
// grammar makes optional (p, li, td, ...) are not tracked; omitting them
// is valid markup, not a recovery.
func (p *Parser) scan(markup []byte) ([]pagesift.Notice, error) {
	z := html.NewTokenizer(bytes.NewReader(markup))

	var notices []pagesift.Notice
	var open []string
	tokens := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				break
			}
			return nil, pagesift.Errorf(pagesift.EINTERNAL, "tokenize: %v", z.Err())
		}

		tokens++
		if tokens > p.maxNodes() {
			return nil, pagesift.Errorf(pagesift.EOVERSIZE,
				"input has more than %d markup tokens", p.maxNodes())
		}

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !voidElements[tag] && !optionalEndTags[tag] {
				open = append(open, tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[tag] || optionalEndTags[tag] {
				break
			}
			at := -1
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] == tag {
					at = i
					break
				}
			}
			if at == -1 {
				notices = append(notices, pagesift.Notice{
					Code:    pagesift.NoticeUnmatchedEndTag,
					Message: "end tag </" + tag + "> has no matching open element",
				})
				break
			}
			for i := len(open) - 1; i > at; i-- {
				notices = append(notices, pagesift.Notice{
					Code:    pagesift.NoticeImplicitClose,
					Message: "element <" + open[i] + "> implicitly closed by </" + tag + ">",
				})
			}
			open = open[:at]
		}
	}

	for i := len(open) - 1; i >= 0; i-- {
		notices = append(notices, pagesift.Notice{
			Code:    pagesift.NoticeImplicitClose,
			Message: "element <" + open[i] + "> implicitly closed at end of input",
		})
	}
	return notices, nil
}

// voidElements lists elements that never have children or end tags.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// optionalEndTags lists elements whose end tag may be legally omitted.
var optionalEndTags = map[string]bool{
	"html": true, "head": true, "body": true,
	"p": true, "li": true, "dt": true, "dd": true,
	"caption": true, "colgroup": true, "thead": true, "tbody": true,
	"tfoot": true, "tr": true, "td": true, "th": true,
	"option": true, "optgroup": true, "rt": true, "rp": true,
}
