//go:build ignore
// +build ignore

// Demo script that integrates two small sessions and prints both tables
// Run with: go run scripts/demo-dataset.go
package main

import (
	"fmt"
	"os"

	"github.com/harrison/ethogram/internal/behavior"
	"github.com/harrison/ethogram/internal/export"
)

func main() {
	dataset, err := behavior.NewDataset(behavior.DefaultAliases(), behavior.DefaultTargets())
	if err != nil {
		fmt.Fprintf(os.Stderr, "dataset: %v\n", err)
		os.Exit(1)
	}

	sessions := map[string][]behavior.Event{
		"1": {
			{ObservationID: "A1", Behavior: "Social contact", Duration: 10},
			{ObservationID: "A1", Behavior: behavior.Trophallaxis, Duration: 0},
			{ObservationID: "A2", Behavior: "Upside Down", Duration: 5},
		},
		"2": {
			{ObservationID: "B1", Behavior: "Stationary", Duration: 30},
			{ObservationID: "B2", Behavior: "Grooming-O", Duration: 4},
		},
	}

	for _, treatment := range []string{"1", "2"} {
		if err := dataset.IntegrateNewData(sessions[treatment], treatment); err != nil {
			fmt.Fprintf(os.Stderr, "treatment %s: %v\n", treatment, err)
			os.Exit(1)
		}
	}

	md := &export.MarkdownExporter{}
	for _, tab := range []export.Tabular{
		export.CumulativeSheet(dataset.Cumulative()),
		export.AverageSheet(dataset.Average()),
	} {
		out, err := md.Export(tab)
		if err != nil {
			fmt.Fprintf(os.Stderr, "export: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	}
}
