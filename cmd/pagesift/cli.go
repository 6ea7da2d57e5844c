package main

import (
	"io"

	"github.com/pagesift/pagesift"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Filterer  pagesift.Filterer
	Converter func(opts pagesift.FilterOptions) pagesift.Converter
	Inspector pagesift.Inspector
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Clean    CleanCmd    `cmd:"" help:"Remove structural regions from HTML documents"`
	Markdown MarkdownCmd `cmd:"" help:"Convert HTML documents to condensed Markdown"`
	Inspect  InspectCmd  `cmd:"" help:"Summarize the structural regions of an HTML document"`
}

// RegionFlags selects which structural regions to keep. Removal is the
// default; each flag opts a region back in.
type RegionFlags struct {
	KeepHeader bool `help:"Keep header regions"`
	KeepFooter bool `help:"Keep footer regions"`
	KeepNav    bool `help:"Keep nav regions"`
}

// Options maps the flags to filter options.
func (f RegionFlags) Options() pagesift.FilterOptions {
	return pagesift.FilterOptions{
		RemoveHeader: !f.KeepHeader,
		RemoveFooter: !f.KeepFooter,
		RemoveNav:    !f.KeepNav,
	}
}
