package main

import (
	pshtml "github.com/pagesift/pagesift/html"
)

// acceptableLen reports whether a declared input length may be copied
// into Go memory. The parser enforces the same byte ceiling, but the
// check must happen before the copy: a length beyond the ceiling would
// otherwise overflow the C.int conversion and fault instead of
// returning an error code.
func acceptableLen(n uint64) bool {
	return n <= pshtml.DefaultMaxBytes
}
