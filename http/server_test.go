package http_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pshtml "github.com/pagesift/pagesift/html"
	pshttp "github.com/pagesift/pagesift/http"
	"github.com/pagesift/pagesift/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a full server over a temp directory of files.
func newTestServer(t *testing.T, files map[string]string) *pshttp.Server {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mw := pshttp.NewMiddleware(pshtml.NewFilter(), htmltomarkdown.NewConverter(),
		pshttp.WithLogger(logger))
	return pshttp.NewServer(http.Dir(dir), mw, logger)
}

func TestServer(t *testing.T) {
	t.Parallel()

	t.Run("health", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("serves html files untouched by default", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, map[string]string{
			"index.html": `<html><head></head><body><nav>menu</nav><main>m</main></body></html>`,
		})

		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<nav>menu</nav>")
	})

	t.Run("sifts html files on request", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, map[string]string{
			"index.html": `<html><head></head><body><nav>menu</nav><main>m</main></body></html>`,
		})

		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html?sift", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<main>m</main>")
		assert.NotContains(t, rec.Body.String(), "<nav>")
	})

	t.Run("renders markdown files as html", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, map[string]string{
			"notes.md": "# Hello\n\nsome text\n",
		})

		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notes.md", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "<h1>Hello</h1>")
		assert.Contains(t, rec.Body.String(), "<main>")
	})

	t.Run("sifted markdown file round trips through the filter", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, map[string]string{
			"notes.md": "# Hello\n",
		})

		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notes.md?sift=markdown", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "# Hello")
	})

	t.Run("missing file is a 404", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope.html", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("sets a request id", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})
}
