package mock

import "github.com/pagesift/pagesift"

var _ pagesift.Inspector = (*Inspector)(nil)

// Inspector is a mock implementation of pagesift.Inspector.
type Inspector struct {
	InspectFn func(markup []byte) (*pagesift.PageInfo, error)
}

func (i *Inspector) Inspect(markup []byte) (*pagesift.PageInfo, error) {
	return i.InspectFn(markup)
}
