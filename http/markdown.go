package http

import (
	"bytes"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/yuin/goldmark"
)

// MarkdownHandler serves files from root, rendering .md files to HTML
// with goldmark and delegating everything else to a file server.
func MarkdownHandler(root http.FileSystem) http.Handler {
	files := http.FileServer(root)
	md := goldmark.New()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ".md") {
			files.ServeHTTP(w, r)
			return
		}

		f, err := root.Open(path.Clean(r.URL.Path))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		src, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, "failed to read file", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
		buf.WriteString(path.Base(r.URL.Path))
		buf.WriteString("</title></head><body><main>\n")
		if err := md.Convert(src, &buf); err != nil {
			http.Error(w, "failed to render markdown", http.StatusInternalServerError)
			return
		}
		buf.WriteString("</main></body></html>\n")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	})
}
