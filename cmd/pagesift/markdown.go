package main

import (
	"fmt"
	"io"
	"os"
)

// MarkdownCmd is the "markdown" subcommand.
type MarkdownCmd struct {
	File string `arg:"" optional:"" help:"Input file (stdin when omitted)"`
	RegionFlags
}

// Run executes the markdown command.
func (c *MarkdownCmd) Run(deps *Dependencies) error {
	var markup []byte
	var err error
	if c.File == "" {
		markup, err = io.ReadAll(deps.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	} else {
		markup, err = os.ReadFile(c.File)
		if err != nil {
			return err
		}
	}

	md, err := deps.Converter(c.Options()).Convert(markup)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, md)
	return nil
}
