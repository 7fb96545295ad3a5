package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rsink-io/rsink/internal/config"
	"github.com/rsink-io/rsink/internal/sink"
)

// runValidate performs a dry registry build: every pattern set is
// compiled and all failures are reported together, but no output file
// is created. Never enters the routing loop.
func runValidate(doc *config.Document, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	reg, err := sink.Build(doc, sink.BuildOptions{DryRun: true})
	if err != nil {
		var buildErr *sink.BuildError
		if errors.As(err, &buildErr) {
			fmt.Fprintln(out, "✗ Configuration invalid")
			fmt.Fprintln(out)
			for _, ve := range buildErr.Errors {
				fmt.Fprintf(out, "  %s\n", ve.Error())
			}
			return WrapExitError(ExitFailure,
				fmt.Sprintf("validation failed with %d error(s)", len(buildErr.Errors)), err)
		}
		return WrapExitError(ExitFailure, "validation failed", err)
	}

	fmt.Fprintln(out, "✓ Configuration valid")
	fmt.Fprintln(out)
	printSummary(out, reg)
	return nil
}

// printSummary lists each sink in declaration order with its
// destination, pattern count and invert flag.
func printSummary(out io.Writer, reg *sink.Registry) {
	fmt.Fprintf(out, "%d sink(s):\n", len(reg.Sinks))
	for i, s := range reg.Sinks {
		dest := s.FileName
		if dest == config.DiscardSentinel {
			dest = "(discard)"
		}
		fmt.Fprintf(out, "  %d. %s -> %s  patterns=%d invert=%t\n",
			i+1, s.Name, dest, len(s.Matcher.Patterns()), s.Invert)
	}
}
