package html

import (
	"github.com/pagesift/pagesift"
)

// Ensure Filter implements pagesift.Filterer at compile time.
var _ pagesift.Filterer = (*Filter)(nil)

// Filter composes the pipeline: parse, prune, render. Each call builds
// its own tree and the tree never outlives the call, so a single Filter
// is safe for concurrent use.
type Filter struct {
	parser *Parser
}

// NewFilter creates a new Filter.
func NewFilter(opts ...Option) *Filter {
	return &Filter{parser: NewParser(opts...)}
}

// Filter parses markup, removes the structural regions selected by opts
// and returns the serialized document. The subtree of any main element
// is preserved byte-for-byte regardless of opts.
func (f *Filter) Filter(markup []byte, opts pagesift.FilterOptions) (*pagesift.FilterResult, error) {
	doc, notices, err := f.parser.Parse(markup)
	if err != nil {
		return nil, err
	}

	Prune(doc, opts)

	out, err := Render(doc)
	if err != nil {
		return nil, err
	}
	return &pagesift.FilterResult{HTML: out, Notices: notices}, nil
}
