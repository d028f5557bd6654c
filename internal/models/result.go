package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/ethogram/internal/behavior"
)

// Run status constants
const (
	StatusSuccess = "SUCCESS" // Every file integrated and both tables exported
	StatusFailed  = "FAILED"  // Run stopped at a failing file
)

// SheetFile is one input sheet scheduled for integration
type SheetFile struct {
	Path      string // Absolute path of the sheet
	Treatment string // Treatment condition assigned to every row of the sheet
}

// Name returns the sheet's base file name
func (s SheetFile) Name() string {
	return filepath.Base(s.Path)
}

// Stem returns the sheet's file name without its extension
func (s SheetFile) Stem() string {
	name := s.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// FileResult represents the result of integrating a single sheet
type FileResult struct {
	File    SheetFile            // The sheet that was integrated
	Summary behavior.FileSummary // Aggregation summary from the dataset
	Elapsed time.Duration        // Time taken to read and integrate
}

// RunResult represents the aggregate result of processing an input directory
type RunResult struct {
	RunID          string        // Identifier recorded in the history database (empty when disabled)
	Status         string        // SUCCESS or FAILED
	StartedAt      time.Time     // When the run began
	Duration       time.Duration // Total run time
	Files          []FileResult  // Integrated sheets in processing order
	Observations   int           // Distinct canonical observation ids assigned
	Categories     int           // Rows written to the average table
	CumulativePath string        // Written per-observation table
	AveragePath    string        // Written per-treatment summary table
	Error          error         // Error that stopped the run
}

// TotalRows returns the number of event rows integrated across all files
func (r *RunResult) TotalRows() int {
	total := 0
	for _, f := range r.Files {
		total += f.Summary.Rows
	}
	return total
}

// TotalDuration returns the seconds of behavior integrated across all files
func (r *RunResult) TotalDuration() float64 {
	var total float64
	for _, f := range r.Files {
		total += f.Summary.TotalDuration
	}
	return total
}

// Succeeded reports whether the run completed
func (r *RunResult) Succeeded() bool {
	return r.Status == StatusSuccess
}
