// Package slog provides logging decorators for pagesift services.
package slog

import (
	"log/slog"
	"time"

	"github.com/pagesift/pagesift"
)

// Ensure LoggingFilterer implements pagesift.Filterer.
var _ pagesift.Filterer = (*LoggingFilterer)(nil)

// LoggingFilterer wraps a Filterer with structured logging. Parse
// recovery notices are recorded here and nowhere else; they never fail
// a call.
type LoggingFilterer struct {
	next   pagesift.Filterer
	logger *slog.Logger
}

// NewLoggingFilterer creates a new LoggingFilterer.
func NewLoggingFilterer(next pagesift.Filterer, logger *slog.Logger) *LoggingFilterer {
	return &LoggingFilterer{next: next, logger: logger}
}

// Filter delegates to the wrapped Filterer and logs the outcome.
func (f *LoggingFilterer) Filter(markup []byte, opts pagesift.FilterOptions) (*pagesift.FilterResult, error) {
	begin := time.Now()
	res, err := f.next.Filter(markup, opts)
	if err != nil {
		f.logger.Error("filter failed",
			"code", pagesift.ErrorCode(err),
			"input_bytes", len(markup),
			"duration", time.Since(begin),
		)
		return nil, err
	}

	f.logger.Info("filter",
		"input_bytes", len(markup),
		"output_bytes", len(res.HTML),
		"notices", len(res.Notices),
		"duration", time.Since(begin),
	)
	for _, n := range res.Notices {
		f.logger.Debug("parse recovery", "code", n.Code, "message", n.Message)
	}
	return res, nil
}
