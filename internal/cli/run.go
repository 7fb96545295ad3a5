package cli

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rsink-io/rsink/internal/config"
	"github.com/rsink-io/rsink/internal/router"
	"github.com/rsink-io/rsink/internal/sink"
)

// runRoute builds the registry, then streams stdin through the line
// router until the input is exhausted or a fatal error occurs. A
// downstream consumer closing the default output is expected pipeline
// behavior and maps to a successful exit.
func runRoute(opts *Options, doc *config.Document, cmd *cobra.Command) error {
	reg, err := sink.Build(doc, sink.BuildOptions{})
	if err != nil {
		var buildErr *sink.BuildError
		if errors.As(err, &buildErr) {
			for _, ve := range buildErr.Errors {
				slog.Error("invalid sink configuration", "error", ve.Error())
			}
		}
		return WrapExitError(ExitFailure, "building sink registry", err)
	}
	defer func() {
		if closeErr := reg.Close(); closeErr != nil {
			slog.Error("closing sink outputs", "error", closeErr)
		}
	}()

	var defaultOut *router.OutputManager
	if opts.NoStdout {
		defaultOut = router.NewOutputManager(reg, nil)
	} else {
		defaultOut = router.NewOutputManager(reg, cmd.OutOrStdout())
	}
	rt := router.New(reg, defaultOut, !opts.NoStdout)

	runID := uuid.NewString()
	slog.Info("starting data processing", "run_id", runID, "sinks", len(reg.Sinks))
	start := time.Now()

	stats, err := rt.Run(cmd.InOrStdin())

	elapsed := time.Since(start)
	slog.Info("ending data processing",
		"run_id", runID,
		"elapsed", elapsed,
		"lines", stats.Lines,
		"matched", stats.Matched,
		"passed", stats.Passed,
	)

	if err != nil {
		if errors.Is(err, router.ErrDownstreamClosed) {
			slog.Info("default output closed by consumer, stopping", "run_id", runID)
			return nil
		}
		return WrapExitError(ExitFailure, "data processing failed", err)
	}
	return nil
}
