// Package mock provides function-field mock implementations of pagesift
// interfaces for testing.
package mock

import "github.com/pagesift/pagesift"

var _ pagesift.Filterer = (*Filterer)(nil)

// Filterer is a mock implementation of pagesift.Filterer.
type Filterer struct {
	FilterFn func(markup []byte, opts pagesift.FilterOptions) (*pagesift.FilterResult, error)
}

func (f *Filterer) Filter(markup []byte, opts pagesift.FilterOptions) (*pagesift.FilterResult, error) {
	return f.FilterFn(markup, opts)
}
