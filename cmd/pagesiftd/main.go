// Command pagesiftd serves a directory of documents over HTTP. Markdown
// files are rendered to HTML, and any HTML response can be cleaned or
// converted to Markdown on demand with the sift query parameter:
//
//	GET /index.html?sift                 cleaned HTML
//	GET /index.html?sift&drop=nav        only nav regions removed
//	GET /index.html?sift=markdown        condensed Markdown
package main

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/bloom"
	pshtml "github.com/pagesift/pagesift/html"
	"github.com/pagesift/pagesift/htmltomarkdown"
	pshttp "github.com/pagesift/pagesift/http"
	psslog "github.com/pagesift/pagesift/slog"
	"github.com/pagesift/pagesift/sqlite"
)

// CLI defines the server flags for Kong.
type CLI struct {
	Addr       string  `default:":8080" help:"Listen address"`
	Dir        string  `default:"." help:"Directory to serve"`
	DB         string  `help:"SQLite cache path (in-memory cache when unset)"`
	CacheSize  int     `default:"1000" help:"Maximum in-memory cache entries"`
	RPS        float64 `default:"0" help:"Conversions per second (0 disables limiting)"`
	Doorkeeper bool    `default:"true" negatable:"" help:"Require a repeat sighting before caching"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("pagesiftd"))
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cache, cleanup, err := newCache(cli)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := []pshttp.MiddlewareOption{
		pshttp.WithLogger(logger),
		pshttp.WithCache(cache, pshttp.DefaultCacheTTL),
	}
	if cli.Doorkeeper {
		opts = append(opts, pshttp.WithDoorkeeper(bloom.NewDoorkeeper(10000, 0.01)))
	}
	if cli.RPS > 0 {
		opts = append(opts, pshttp.WithRateLimit(cli.RPS, 1))
	}

	filterer := psslog.NewLoggingFilterer(pshtml.NewFilter(), logger)
	mw := pshttp.NewMiddleware(filterer, htmltomarkdown.NewConverter(), opts...)
	srv := pshttp.NewServer(nethttp.Dir(cli.Dir), mw, logger)

	logger.Info("server starting", "addr", cli.Addr, "dir", cli.Dir)
	return nethttp.ListenAndServe(cli.Addr, srv)
}

// newCache selects the persistent SQLite cache when a path is given and
// the in-memory cache otherwise.
func newCache(cli *CLI) (pagesift.CacheService, func(), error) {
	if cli.DB == "" {
		return pshttp.NewMemoryCache(cli.CacheSize), func() {}, nil
	}

	db := sqlite.NewDB(cli.DB)
	if err := db.Open(); err != nil {
		return nil, nil, fmt.Errorf("failed to open cache database at %q: %w", cli.DB, err)
	}
	return sqlite.NewCacheService(db), func() { db.Close() }, nil
}
