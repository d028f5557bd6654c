package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/harrison/ethogram/internal/cmd"
)

// Version is the current version of the ethogram application
const Version = "1.0.0"

func main() {
	if cmd.Version == "dev" {
		cmd.Version = Version
	}
	rootCmd := cmd.NewRootCommand()

	// Interrupts stop the run between sheets
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
