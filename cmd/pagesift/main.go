// Command pagesift cleans HTML documents from the command line: it
// removes structural page furniture (header, footer, nav) while
// preserving main content, and can convert the result to Markdown.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pagesift/pagesift"
	psquery "github.com/pagesift/pagesift/goquery"
	pshtml "github.com/pagesift/pagesift/html"
	"github.com/pagesift/pagesift/htmltomarkdown"
)

func main() {
	m := NewMain()

	if err := m.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Stdin:    stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		Filterer: pshtml.NewFilter(),
		Converter: func(opts pagesift.FilterOptions) pagesift.Converter {
			return htmltomarkdown.NewConverter(htmltomarkdown.WithFilterOptions(opts))
		},
		Inspector: psquery.NewInspector(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagesift"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagesift --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kongCtx.Run(deps)
}
