package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/bloom"
	"golang.org/x/time/rate"
)

// DefaultCacheTTL is how long converted responses stay fresh.
const DefaultCacheTTL = 5 * time.Minute

// Middleware rewrites HTML responses on demand. When a request carries
// the sift query parameter, the downstream response is captured, the
// structural regions named by the drop parameter (default: all) are
// removed, and the cleaned document is returned. sift=markdown converts
// the cleaned document to Markdown instead.
//
// Non-200 and non-HTML responses pass through unchanged.
type Middleware struct {
	filterer   pagesift.Filterer
	converter  pagesift.Converter
	cache      pagesift.CacheService
	doorkeeper *bloom.Doorkeeper
	limiter    *rate.Limiter
	logger     *slog.Logger
	ttl        time.Duration
}

// MiddlewareOption configures a Middleware.
type MiddlewareOption func(*Middleware)

// WithCache stores conversion results in cache, serving fresh entries
// without reconverting. A non-positive ttl selects DefaultCacheTTL.
func WithCache(cache pagesift.CacheService, ttl time.Duration) MiddlewareOption {
	return func(m *Middleware) {
		m.cache = cache
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithDoorkeeper gates cache admission: a response body is cached only
// once it has been seen before, keeping one-off pages out of the cache.
func WithDoorkeeper(d *bloom.Doorkeeper) MiddlewareOption {
	return func(m *Middleware) {
		m.doorkeeper = d
	}
}

// WithRateLimit bounds how many conversions may run per second. Cache
// hits are not limited. Requests over the limit get 429.
func WithRateLimit(rps float64, burst int) MiddlewareOption {
	return func(m *Middleware) {
		m.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) MiddlewareOption {
	return func(m *Middleware) {
		m.logger = logger
	}
}

// NewMiddleware creates a new Middleware.
func NewMiddleware(filterer pagesift.Filterer, converter pagesift.Converter, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		filterer:  filterer,
		converter: converter,
		logger:    slog.Default(),
		ttl:       DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Wrap returns a handler that applies the middleware around next.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if _, active := query["sift"]; !active {
			next.ServeHTTP(w, r)
			return
		}

		format, err := parseFormat(query.Get("sift"))
		if err != nil {
			http.Error(w, pagesift.ErrorMessage(err), http.StatusBadRequest)
			return
		}
		opts, err := parseDrop(query.Get("drop"), query.Has("drop"))
		if err != nil {
			http.Error(w, pagesift.ErrorMessage(err), http.StatusBadRequest)
			return
		}

		rec := newRecorder()
		next.ServeHTTP(rec, r)

		if rec.status != http.StatusOK || !isHTML(rec.headers.Get("Content-Type")) {
			rec.replay(w)
			return
		}

		body := rec.body.Bytes()
		key := cacheKey(body, opts)

		if m.cache != nil {
			if entry, err := m.cache.GetEntry(r.Context(), key, format, m.ttl); err == nil {
				m.serve(w, format, entry.Output)
				return
			}
		}

		if m.limiter != nil && !m.limiter.Allow() {
			http.Error(w, "conversion rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		out, err := m.convert(body, format, opts)
		if err != nil {
			m.logger.Error("conversion failed",
				"path", r.URL.Path,
				"code", pagesift.ErrorCode(err),
			)
			http.Error(w, "conversion failed", http.StatusInternalServerError)
			return
		}

		m.store(r.Context(), key, format, out)
		m.serve(w, format, out)
	})
}

func (m *Middleware) convert(body []byte, format string, opts pagesift.FilterOptions) ([]byte, error) {
	if format == pagesift.FormatMarkdown {
		md, err := m.converter.Convert(body)
		if err != nil {
			return nil, err
		}
		return []byte(md), nil
	}

	res, err := m.filterer.Filter(body, opts)
	if err != nil {
		return nil, err
	}
	return res.HTML, nil
}

func (m *Middleware) store(ctx context.Context, key, format string, out []byte) {
	if m.cache == nil {
		return
	}
	if m.doorkeeper != nil && !m.doorkeeper.Admit(key) {
		return
	}
	err := m.cache.PutEntry(ctx, &pagesift.CacheEntry{Key: key, Format: format, Output: out})
	if err != nil {
		m.logger.Warn("cache put failed", "code", pagesift.ErrorCode(err))
	}
}

func (m *Middleware) serve(w http.ResponseWriter, format string, out []byte) {
	contentType := "text/html; charset=utf-8"
	if format == pagesift.FormatMarkdown {
		contentType = "text/markdown; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// cacheKey derives the cache key from the response body and the pruning
// options. Same body with different options must not collide.
func cacheKey(body []byte, opts pagesift.FilterOptions) string {
	d := xxhash.New()
	d.Write(body)
	d.WriteString(optionsTag(opts))
	return strconv.FormatUint(d.Sum64(), 16)
}

func optionsTag(opts pagesift.FilterOptions) string {
	var b strings.Builder
	if opts.RemoveHeader {
		b.WriteByte('h')
	}
	if opts.RemoveFooter {
		b.WriteByte('f')
	}
	if opts.RemoveNav {
		b.WriteByte('n')
	}
	return b.String()
}

// parseFormat maps the sift query value to an output format. An empty
// value means cleaned HTML.
func parseFormat(v string) (string, error) {
	switch v {
	case "", pagesift.FormatHTML:
		return pagesift.FormatHTML, nil
	case pagesift.FormatMarkdown, "md":
		return pagesift.FormatMarkdown, nil
	default:
		return "", pagesift.Errorf(pagesift.EINVALID, "unknown sift format %q", v)
	}
}

// parseDrop maps the drop query value to filter options. An absent
// parameter removes all structural regions.
func parseDrop(v string, present bool) (pagesift.FilterOptions, error) {
	if !present {
		return pagesift.RemoveAll(), nil
	}

	var opts pagesift.FilterOptions
	for _, part := range strings.Split(v, ",") {
		switch strings.TrimSpace(part) {
		case "header":
			opts.RemoveHeader = true
		case "footer":
			opts.RemoveFooter = true
		case "nav":
			opts.RemoveNav = true
		case "":
		default:
			return pagesift.FilterOptions{}, pagesift.Errorf(pagesift.EINVALID,
				"unknown drop region %q", strings.TrimSpace(part))
		}
	}
	return opts, nil
}

func isHTML(contentType string) bool {
	return strings.HasPrefix(contentType, "text/html")
}

// recorder captures a downstream response so it can be rewritten or
// replayed.
type recorder struct {
	body    *bytes.Buffer
	status  int
	headers http.Header
}

func newRecorder() *recorder {
	return &recorder{
		body:    &bytes.Buffer{},
		status:  http.StatusOK,
		headers: make(http.Header),
	}
}

func (rec *recorder) Header() http.Header {
	return rec.headers
}

func (rec *recorder) Write(b []byte) (int, error) {
	return rec.body.Write(b)
}

func (rec *recorder) WriteHeader(status int) {
	rec.status = status
}

// replay writes the captured response through unchanged.
func (rec *recorder) replay(w http.ResponseWriter) {
	for k, v := range rec.headers {
		w.Header()[k] = v
	}
	w.WriteHeader(rec.status)
	w.Write(rec.body.Bytes())
}
