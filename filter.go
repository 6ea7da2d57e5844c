package pagesift

// FilterOptions selects which structural regions are removed from a
// document. Each field maps to exactly one region tag and the fields are
// independent of each other.
type FilterOptions struct {
	RemoveHeader bool
	RemoveFooter bool
	RemoveNav    bool
}

// RemoveAll returns options with every structural region enabled for
// removal. This matches the default behavior of the FFI and HTTP callers.
func RemoveAll() FilterOptions {
	return FilterOptions{RemoveHeader: true, RemoveFooter: true, RemoveNav: true}
}

// Any reports whether at least one region is enabled for removal.
func (o FilterOptions) Any() bool {
	return o.RemoveHeader || o.RemoveFooter || o.RemoveNav
}

// Limits bounds the work a single filter call may perform. Inputs that
// exceed a ceiling are rejected with EOVERSIZE rather than processed.
// Zero values select the implementation defaults.
type Limits struct {
	// MaxBytes is the maximum accepted input size in bytes.
	MaxBytes int

	// MaxNodes is the maximum number of markup tokens (elements, text
	// runs, comments) accepted in a single document.
	MaxNodes int
}

// Notice codes recorded during parse recovery.
const (
	NoticeImplicitClose   = "implicit_close"
	NoticeUnmatchedEndTag = "unmatched_end_tag"
)

// Notice describes a recovery action taken while parsing malformed markup.
// Notices are informational only; they never fail a call.
type Notice struct {
	Code    string
	Message string
}

// FilterResult holds the output of a single filter call.
type FilterResult struct {
	// HTML is the serialized document after pruning.
	HTML []byte

	// Notices lists parse recovery actions, in document order.
	Notices []Notice
}

// Filterer transforms a raw HTML document into a cleaned one.
//
// Each call is self-contained: implementations hold no mutable state
// across calls and are safe for concurrent use.
type Filterer interface {
	// Filter parses markup, removes the structural regions selected by
	// opts, and returns the serialized result. The subtree of any main
	// element is preserved byte-for-byte regardless of opts.
	//
	// Returns EENCODING if markup is not valid UTF-8 and EOVERSIZE if it
	// exceeds the configured limits. Malformed markup is never an error.
	Filter(markup []byte, opts FilterOptions) (*FilterResult, error)
}
