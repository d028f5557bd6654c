package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/ethogram/internal/display"
	"github.com/harrison/ethogram/internal/models"
	"github.com/harrison/ethogram/internal/pipeline"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [sheet-file...]",
		Short: "Check the configuration and optionally dry-run sheets",
		Long: `Validate loads the configuration and reports invalid settings such as an
alias claimed by two behavior labels.

When sheet files are given, each one is read and integrated into a throwaway
dataset so missing columns, bad durations and unattributable Trophallaxis
events are reported without writing any output. Use --all to check every
sheet in the input directory.`,
		RunE: runValidate,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .ethogram/config.yaml)")
	cmd.Flags().Bool("all", false, "Validate every sheet in the input directory")
	cmd.Flags().String("input", "", "Input directory used by --all")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.MergeWithFlags(stringFlag(cmd, "input"), nil, nil, nil, nil)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	green.Fprintf(out, "✓ Configuration valid\n")
	fmt.Fprintf(out, "  Targets: %d, aliases: %d canonical labels\n", len(cfg.Behaviors.Targets), len(cfg.Behaviors.Aliases))

	runner := pipeline.NewRunner(cfg, nil, nil)
	runner.Warnings = out

	all, _ := cmd.Flags().GetBool("all")
	var files []models.SheetFile
	switch {
	case all:
		files, err = runner.ScanInput()
		if err != nil {
			return err
		}
	case len(args) > 0:
		paths := make([]string, 0, len(args))
		for _, arg := range args {
			abs, err := filepath.Abs(arg)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", arg, err)
			}
			paths = append(paths, abs)
		}
		files, err = pipeline.PlanFiles(paths, cfg.TreatmentMode)
		if err != nil {
			return err
		}
	default:
		return nil
	}

	fmt.Fprintln(out)
	failed, err := runner.ValidateFiles(cmd.Context(), files, display.NewProgressIndicator(out, len(files)))
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d sheet(s) failed validation", failed)
	}
	return nil
}
