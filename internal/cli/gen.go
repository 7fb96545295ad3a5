package cli

import (
	"log/slog"

	"github.com/rsink-io/rsink/internal/config"
)

// runGenTemplate writes the sample configuration document and exits
// without touching the core. An existing target is never overwritten.
func runGenTemplate(path string) error {
	if err := config.WriteTemplate(path); err != nil {
		return WrapExitError(ExitFailure, "generating template", err)
	}
	slog.Info("template written", "path", path)
	return nil
}
