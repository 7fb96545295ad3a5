package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rsink-io/rsink/internal/config"
)

// Version is the release version reported in the startup banner.
const Version = "0.4.0"

// Options holds the resolved flag values consumed by the core.
type Options struct {
	ConfigPath   string // -c/--config
	TemplatePath string // -g/--gen-template
	ValidateOnly bool   // -v/--validate-only
	NoStdout     bool   // -n/--no-stdout
	Quiet        bool   // -q/--quiet
}

// NewRootCommand creates the rsink command. The tool is
// single-purpose, so the entire surface is flags on the root command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "rsink",
		Short: "Route lines from stdin to files by regular-expression sinks",
		Long: `rsink reads text lines on stdin and routes each line to the first
sink whose pattern set matches it, as declared in a YAML configuration
file. Lines no sink claims pass through to stdout unless suppressed.

Example:
  rsink --gen-template sinks.yaml
  journalctl -f | rsink -c sinks.yaml > rest.log`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML sink configuration file")
	cmd.Flags().StringVarP(&opts.TemplatePath, "gen-template", "g", "", "write a sample configuration file and exit")
	cmd.Flags().BoolVarP(&opts.ValidateOnly, "validate-only", "v", false, "validate the configuration without creating files or routing")
	cmd.Flags().BoolVarP(&opts.NoStdout, "no-stdout", "n", false, "drop unmatched lines instead of passing them to stdout")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress informational logging on stderr")

	return cmd
}

// run dispatches the flag surface: template generation bypasses the
// core entirely; otherwise a configuration file is mandatory and leads
// either to dry validation or to the routing loop.
func run(opts *Options, cmd *cobra.Command) error {
	initLogging(opts, cmd)
	slog.Info("rsink", "version", Version)

	if opts.TemplatePath != "" {
		return runGenTemplate(opts.TemplatePath)
	}

	if opts.ConfigPath == "" {
		return NewExitError(ExitFailure, "no configuration file specified (use -c)")
	}

	slog.Info("loading configuration file", "path", opts.ConfigPath)
	doc, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid configuration", err)
	}

	if opts.ValidateOnly {
		return runValidate(doc, cmd)
	}
	return runRoute(opts, doc, cmd)
}

// initLogging installs the default slog handler on stderr. Quiet mode
// keeps warnings and errors but drops the informational events.
func initLogging(opts *Options, cmd *cobra.Command) {
	level := slog.LevelInfo
	if opts.Quiet {
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
