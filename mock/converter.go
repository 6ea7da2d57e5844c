package mock

import "github.com/pagesift/pagesift"

var _ pagesift.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagesift.Converter.
type Converter struct {
	ConvertFn func(markup []byte) (string, error)
}

func (c *Converter) Convert(markup []byte) (string, error) {
	return c.ConvertFn(markup)
}
