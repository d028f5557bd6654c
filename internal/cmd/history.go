package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/ethogram/internal/store"
)

// NewHistoryCommand creates the history command group
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded processing runs",
		Long: `History lists runs recorded in the history database, newest first.
Runs are recorded when history is enabled in the configuration or
process is run with --history.`,
		Args: cobra.NoArgs,
		RunE: runHistoryList,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .ethogram/config.yaml)")
	cmd.PersistentFlags().String("db", "", "Path to the history database (overrides config)")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")

	cmd.AddCommand(newHistoryShowCommand())
	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the sheets and treatment averages of one run",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
}

// openHistory opens the configured database. Returns nil without error when
// no database exists yet.
func openHistory(cmd *cobra.Command) (*store.Store, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	dbPath := cfg.History.DBPath
	if override := stringFlag(cmd, "db"); override != nil {
		dbPath = *override
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, dbPath, nil
	}
	st, err := store.NewStore(dbPath)
	if err != nil {
		return nil, dbPath, fmt.Errorf("open history database: %w", err)
	}
	return st, dbPath, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st, dbPath, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if st == nil {
		fmt.Fprintf(out, "No run history found at %s\n", dbPath)
		return nil
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := st.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs recorded in %s\n", dbPath)
		return nil
	}

	printRuns(out, runs)
	return nil
}

func printRuns(w io.Writer, runs []*store.RunInfo) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(w, "%-36s  %-19s  %5s  %12s  %8s  %s\n", "RUN ID", "STARTED", "FILES", "OBSERVATIONS", "DURATION", "INPUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%-36s  %-19s  %5d  %12d  %8s  %s\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.FileCount,
			run.Observations,
			run.Duration.Round(time.Millisecond),
			run.InputDir)
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st, dbPath, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("no run history found at %s", dbPath)
	}
	defer st.Close()

	return printRun(cmd.Context(), out, st, args[0])
}

func printRun(ctx context.Context, w io.Writer, st *store.Store, id string) error {
	run, err := st.GetRun(ctx, id)
	if err != nil {
		return err
	}
	files, err := st.GetRunFiles(ctx, id)
	if err != nil {
		return err
	}
	averages, err := st.GetRunAverages(ctx, id)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(w, "\n=== Run %s ===\n\n", run.ID)
	fmt.Fprintf(w, "Started: %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Input: %s\n", run.InputDir)
	if run.OutputDir != "" {
		fmt.Fprintf(w, "Output: %s (%s)\n", run.OutputDir, run.Format)
	}
	fmt.Fprintf(w, "Observations: %d\n", run.Observations)
	fmt.Fprintf(w, "Duration: %s\n\n", run.Duration.Round(time.Millisecond))

	cyan.Fprintf(w, "Sheets:\n")
	for _, f := range files {
		fmt.Fprintf(w, "  [%s] %s: %d rows, %d observations, %.1f s\n",
			f.Treatment, f.Path, f.Rows, f.Observations, f.TotalDuration)
	}

	cyan.Fprintf(w, "\nAverages:\n")
	fmt.Fprintf(w, "  %-10s  %-24s  %10s  %10s  %6s  %6s\n", "TREATMENT", "CATEGORY", "TOTAL (s)", "MEAN (s)", "COUNT", "MEAN")
	for _, r := range averages {
		fmt.Fprintf(w, "  %-10s  %-24s  %10.2f  %10.2f  %6d  %6.2f\n",
			r.Treatment, r.Category, r.TotalDuration, r.MeanDuration, r.TotalCount, r.MeanCount)
	}
	return nil
}
