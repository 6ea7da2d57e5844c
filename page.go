package pagesift

// PageInfo summarizes the structural makeup of an HTML document without
// modifying it.
type PageInfo struct {
	// Title is the content of the title element, if any.
	Title string

	// HasMain reports whether the document contains a main element.
	HasMain bool

	// Headers, Footers and Navs count the structural regions present.
	Headers int
	Footers int
	Navs    int

	// Protected counts structural regions that wrap a main element and
	// are therefore never removed as a whole.
	Protected int
}

// Inspector reports structural information about HTML documents.
type Inspector interface {
	Inspect(markup []byte) (*PageInfo, error)
}
