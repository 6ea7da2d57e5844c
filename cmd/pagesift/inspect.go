package main

import (
	"fmt"
	"io"
	"os"
)

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	File string `arg:"" optional:"" help:"Input file (stdin when omitted)"`
}

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
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

	info, err := deps.Inspector.Inspect(markup)
	if err != nil {
		return err
	}

	title := info.Title
	if title == "" {
		title = "(none)"
	}
	fmt.Fprintf(deps.Stdout, "title:     %s\n", title)
	fmt.Fprintf(deps.Stdout, "main:      %t\n", info.HasMain)
	fmt.Fprintf(deps.Stdout, "headers:   %d\n", info.Headers)
	fmt.Fprintf(deps.Stdout, "footers:   %d\n", info.Footers)
	fmt.Fprintf(deps.Stdout, "navs:      %d\n", info.Navs)
	fmt.Fprintf(deps.Stdout, "protected: %d\n", info.Protected)
	return nil
}
