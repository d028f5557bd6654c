package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for ethogram
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ethogram",
		Short: "Aggregate behavioral observation sheets into result tables",
		Long: `Ethogram reads behavioral observation sheets (one per recording session
or treatment condition), merges behavior label aliases, attributes
Trophallaxis time to the preceding Social interaction and writes two tables:

  - a cumulative table of per-observation behavior durations
  - an average table of per-treatment totals and means

Configuration is loaded from .ethogram/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewProcessCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
