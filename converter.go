package pagesift

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML document into Markdown. The document is
	// cleaned first (structural regions pruned, annotations applied), so
	// raw page HTML is acceptable input.
	Convert(markup []byte) (string, error)
}
