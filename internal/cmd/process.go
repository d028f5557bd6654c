package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/ethogram/internal/logger"
	"github.com/harrison/ethogram/internal/pipeline"
	"github.com/harrison/ethogram/internal/store"
)

// NewProcessCommand creates the process command
func NewProcessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Aggregate every sheet in the input directory",
		Long: `Process reads every .xlsx and .csv sheet in the input directory in name
order, integrates each one as a treatment condition and writes the
cumulative and average tables to the output directory.

The run stops at the first sheet that cannot be integrated and writes
no output in that case.

Examples:
  ethogram process
  ethogram process --input ./InputSheets --output ./OutputSheets
  ethogram process --format csv --log-level debug
  ethogram process --history              # Record the run in the history database`,
		Args: cobra.NoArgs,
		RunE: runProcess,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .ethogram/config.yaml)")
	cmd.Flags().String("input", "", "Directory containing the observation sheets")
	cmd.Flags().String("output", "", "Directory receiving the result tables")
	cmd.Flags().String("format", "", "Output format: xlsx, csv, json, markdown, html")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for run log files (empty disables file logging)")
	cmd.Flags().Bool("history", false, "Record the run in the history database")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var historyPtr *bool
	if cmd.Flags().Changed("history") {
		history, _ := cmd.Flags().GetBool("history")
		historyPtr = &history
	}
	cfg.MergeWithFlags(stringFlag(cmd, "input"), stringFlag(cmd, "output"), stringFlag(cmd, "format"), stringFlag(cmd, "log-level"), historyPtr)
	if logDir := stringFlag(cmd, "log-dir"); logDir != nil {
		cfg.LogDir = *logDir
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	loggers := []logger.RunLogger{logger.NewConsoleLogger(out, cfg.LogLevel)}
	if cfg.LogDir != "" {
		fileLogger, err := logger.NewFileLoggerWithLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLogger.Close()
		loggers = append(loggers, fileLogger)
	}
	runLogger := logger.NewMultiLogger(loggers...)

	runner := pipeline.NewRunner(cfg, runLogger, nil)
	runner.Warnings = out

	if cfg.History.Enabled {
		st, err := store.NewStore(cfg.History.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer st.Close()
		runner.Store = st
	}

	if _, err := runner.Run(cmd.Context()); err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}
	return nil
}
