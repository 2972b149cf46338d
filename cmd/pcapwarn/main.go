package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pcapkit/internal/config"
	"pcapkit/internal/version"
)

// newRootCmd assembles the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pcapwarn",
		Short:         "Inspect and exercise pcapkit warning categories and filters",
		Long:          `pcapwarn prints the warning taxonomy and emits warnings through a configured filter, so filter files can be checked before they ship with a capture pipeline.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCategoriesCmd())
	root.AddCommand(newEmitCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())

	pf := root.PersistentFlags()
	pf.String("config", "", "filter configuration file (default: search for "+config.FileName+")")
	pf.String("color", "", "colorize category names (auto|on|off)")
	pf.Bool("show-location", false, "prefix warnings with their call site")
	pf.Int("width", 0, "truncate messages to this many columns (0 = unlimited)")
	pf.String("trace", "", "record emission decisions to file ('-' for stderr)")
	pf.String("trace-level", "off", "decision trace level (off|suppressed|all)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 1024, "ring buffer size for ring/both modes")

	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("pcapwarn:", err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
