// Command libpagesift builds as a C shared library exposing the HTML
// filter to foreign callers:
//
//	go build -buildmode=c-shared -o libpagesift.so ./cmd/libpagesift
//
// Callers own every buffer returned by Convert and must release it with
// Free. Output buffers are NUL-terminated and the exact length is also
// written through outLen, so embedders that cannot rely on NUL
// termination can use the length instead.
package main

/*
#include <stdlib.h>
#include <stdbool.h>
*/
import "C"
import (
	"unsafe"

	"github.com/pagesift/pagesift"
	pshtml "github.com/pagesift/pagesift/html"
)

// Error codes written through errCode when Convert returns NULL.
const (
	errNone     = 0
	errInvalid  = 1
	errEncoding = 2
	errOversize = 3
	errInternal = 4
)

// Convert filters structural furniture from markup and returns the
// cleaned document as a malloc'd, NUL-terminated buffer.
//
// The input is passed as a pointer and an explicit byte length rather
// than a NUL-terminated string so that documents containing NUL bytes
// survive the crossing intact. On failure Convert returns NULL, writes
// zero through outLen, and writes one of the error codes above through
// errCode.
//
//export Convert
func Convert(markup *C.char, markupLen C.size_t, removeHeader, removeFooter, removeNav C.bool, outLen *C.size_t, errCode *C.int) *C.char {
	if outLen != nil {
		*outLen = 0
	}
	if errCode != nil {
		*errCode = errNone
	}
	if markup == nil {
		fail(errCode, errInvalid)
		return nil
	}
	if !acceptableLen(uint64(markupLen)) {
		fail(errCode, errOversize)
		return nil
	}

	// No panic may cross the boundary; a runtime fault in the filter
	// surfaces to the caller as an internal error instead.
	out, code := filter(C.GoBytes(unsafe.Pointer(markup), C.int(markupLen)), pagesift.FilterOptions{
		RemoveHeader: bool(removeHeader),
		RemoveFooter: bool(removeFooter),
		RemoveNav:    bool(removeNav),
	})
	if code != errNone {
		fail(errCode, code)
		return nil
	}

	buf := C.malloc(C.size_t(len(out)) + 1)
	if buf == nil {
		fail(errCode, errInternal)
		return nil
	}
	dst := unsafe.Slice((*byte)(buf), len(out)+1)
	copy(dst, out)
	dst[len(out)] = 0
	if outLen != nil {
		*outLen = C.size_t(len(out))
	}
	return (*C.char)(buf)
}

func filter(markup []byte, opts pagesift.FilterOptions) (out []byte, code C.int) {
	defer func() {
		if recover() != nil {
			out, code = nil, errInternal
		}
	}()

	result, err := pshtml.NewFilter().Filter(markup, opts)
	if err != nil {
		switch pagesift.ErrorCode(err) {
		case pagesift.EINVALID:
			return nil, errInvalid
		case pagesift.EENCODING:
			return nil, errEncoding
		case pagesift.EOVERSIZE:
			return nil, errOversize
		default:
			return nil, errInternal
		}
	}
	return result.HTML, errNone
}

func fail(errCode *C.int, code C.int) {
	if errCode != nil {
		*errCode = code
	}
}

// Free releases a buffer previously returned by Convert. Passing NULL
// is a no-op.
//
//export Free
func Free(p *C.char) {
	C.free(unsafe.Pointer(p))
}

func main() {}
