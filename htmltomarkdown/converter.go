// Package htmltomarkdown converts HTML documents to Markdown using the
// html-to-markdown library. Documents are cleaned first: structural
// regions pruned, data-llm annotations applied, boilerplate removed.
package htmltomarkdown

import (
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/pagesift/pagesift"
	pshtml "github.com/pagesift/pagesift/html"
)

// Ensure Converter implements pagesift.Converter at compile time.
var _ pagesift.Converter = (*Converter)(nil)

// Converter cleans an HTML document and converts it to Markdown.
type Converter struct {
	conv              *converter.Converter
	parser            *pshtml.Parser
	filterOpts        pagesift.FilterOptions
	removeImagesNoAlt bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithFilterOptions selects which structural regions are pruned before
// conversion. Defaults to removing all of them.
func WithFilterOptions(opts pagesift.FilterOptions) Option {
	return func(c *Converter) {
		c.filterOpts = opts
	}
}

// WithRemoveImagesNoAlt removes images lacking alt text entirely instead
// of emitting a placeholder.
func WithRemoveImagesNoAlt(remove bool) Option {
	return func(c *Converter) {
		c.removeImagesNoAlt = remove
	}
}

// WithLimits overrides the parser's input ceilings.
func WithLimits(l pagesift.Limits) Option {
	return func(c *Converter) {
		c.parser = pshtml.NewParser(pshtml.WithLimits(l))
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	c := &Converter{
		conv:       conv,
		parser:     pshtml.NewParser(),
		filterOpts: pagesift.RemoveAll(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms an HTML document into condensed Markdown.
func (c *Converter) Convert(markup []byte) (string, error) {
	doc, _, err := c.parser.Parse(markup)
	if err != nil {
		return "", err
	}

	pshtml.StripAnnotations(doc, c.removeImagesNoAlt)
	pshtml.Prune(doc, c.filterOpts)

	cleaned, err := pshtml.Render(doc)
	if err != nil {
		return "", err
	}

	md, err := c.conv.ConvertString(string(cleaned))
	if err != nil {
		return "", err
	}

	return Condense(md), nil
}
