package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pagesift/pagesift"
	"golang.org/x/sync/errgroup"
)

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	Files       []string `arg:"" optional:"" help:"Input files (stdin when omitted)"`
	Out         string   `short:"o" help:"Output directory (required for multiple files)"`
	Concurrency int      `short:"c" default:"8" help:"Concurrent file limit"`
	RegionFlags
}

// Run executes the clean command.
func (c *CleanCmd) Run(deps *Dependencies) error {
	opts := c.Options()

	if len(c.Files) == 0 {
		markup, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return cleanTo(deps.Stdout, deps.Filterer, markup, opts)
	}

	if len(c.Files) == 1 && c.Out == "" {
		markup, err := os.ReadFile(c.Files[0])
		if err != nil {
			return err
		}
		return cleanTo(deps.Stdout, deps.Filterer, markup, opts)
	}

	if c.Out == "" {
		return pagesift.Errorf(pagesift.EINVALID,
			"--out is required when cleaning multiple files")
	}
	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(c.Concurrency)
	for _, file := range c.Files {
		g.Go(func() error {
			markup, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			res, err := deps.Filterer.Filter(markup, opts)
			if err != nil {
				return fmt.Errorf("%s: %s", file, pagesift.ErrorMessage(err))
			}
			return os.WriteFile(filepath.Join(c.Out, filepath.Base(file)), res.HTML, 0o644)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "cleaned %d files into %s\n", len(c.Files), c.Out)
	return nil
}

// cleanTo filters markup and writes the result to w.
func cleanTo(w io.Writer, filterer pagesift.Filterer, markup []byte, opts pagesift.FilterOptions) error {
	res, err := filterer.Filter(markup, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(res.HTML)
	return err
}
