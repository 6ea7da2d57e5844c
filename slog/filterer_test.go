package slog_test

import (
	"bytes"
	stdslog "log/slog"
	"testing"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/mock"
	"github.com/pagesift/pagesift/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFilterer_Filter(t *testing.T) {
	t.Parallel()

	t.Run("logs successful calls", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

		next := &mock.Filterer{
			FilterFn: func(markup []byte, opts pagesift.FilterOptions) (*pagesift.FilterResult, error) {
				return &pagesift.FilterResult{
					HTML:    []byte("<main>m</main>"),
					Notices: []pagesift.Notice{{Code: pagesift.NoticeImplicitClose, Message: "x"}},
				}, nil
			},
		}

		f := slog.NewLoggingFilterer(next, logger)
		res, err := f.Filter([]byte("<main>m"), pagesift.RemoveAll())

		require.NoError(t, err)
		assert.Equal(t, "<main>m</main>", string(res.HTML))
		assert.Contains(t, buf.String(), "msg=filter")
		assert.Contains(t, buf.String(), "notices=1")
	})

	t.Run("logs failures with error code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

		next := &mock.Filterer{
			FilterFn: func(markup []byte, opts pagesift.FilterOptions) (*pagesift.FilterResult, error) {
				return nil, pagesift.Errorf(pagesift.EENCODING, "input is not valid UTF-8")
			},
		}

		f := slog.NewLoggingFilterer(next, logger)
		_, err := f.Filter([]byte{0xff}, pagesift.RemoveAll())

		require.Error(t, err)
		assert.Equal(t, pagesift.EENCODING, pagesift.ErrorCode(err))
		assert.Contains(t, buf.String(), "code=encoding")
	})
}
