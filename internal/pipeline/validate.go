package pipeline

import (
	"context"
	"fmt"

	"github.com/harrison/ethogram/internal/display"
	"github.com/harrison/ethogram/internal/models"
	"github.com/harrison/ethogram/internal/sheet"
)

// ValidateFiles dry-runs files through a throwaway dataset and reports each
// on progress. A failing file is rolled back, so later files are still
// checked. Returns the number of files that failed.
func (r *Runner) ValidateFiles(ctx context.Context, files []models.SheetFile, progress *display.ProgressIndicator) (int, error) {
	dataset, err := r.NewDataset()
	if err != nil {
		return 0, fmt.Errorf("invalid behavior configuration: %w", err)
	}

	failed := 0
	progress.Start()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return failed, err
		}

		progress.Step(file.Path)
		events, err := sheet.ReadFile(file.Path)
		if err == nil {
			err = dataset.IntegrateNewData(events, file.Treatment)
		}
		if err != nil {
			failed++
			progress.Fail(err)
		}
	}
	progress.Complete()
	return failed, nil
}
