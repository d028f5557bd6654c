package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/harrison/ethogram/internal/behavior"
	"github.com/harrison/ethogram/internal/config"
	"github.com/harrison/ethogram/internal/display"
	"github.com/harrison/ethogram/internal/export"
	"github.com/harrison/ethogram/internal/filelock"
	"github.com/harrison/ethogram/internal/logger"
	"github.com/harrison/ethogram/internal/models"
	"github.com/harrison/ethogram/internal/sheet"
	"github.com/harrison/ethogram/internal/store"
)

// HistoryRecorder persists completed runs
type HistoryRecorder interface {
	RecordRun(ctx context.Context, rec store.RunRecord) (string, error)
}

// Runner processes the input directory described by Config
type Runner struct {
	Config *config.Config
	Logger logger.RunLogger
	Store  HistoryRecorder

	// Warnings receives user-facing warnings; nil discards them
	Warnings io.Writer
}

// NewRunner creates a Runner. A nil logger discards log output and a nil
// store disables history.
func NewRunner(cfg *config.Config, log logger.RunLogger, st HistoryRecorder) *Runner {
	return &Runner{Config: cfg, Logger: log, Store: st}
}

func (r *Runner) log() logger.RunLogger {
	if r.Logger == nil {
		return logger.NewNoOpLogger()
	}
	return r.Logger
}

func (r *Runner) warn(w display.Warning) {
	if r.Warnings != nil {
		w.Display(r.Warnings)
	}
}

// ScanInput lists the input sheets, warning about skipped files
func (r *Runner) ScanInput() ([]models.SheetFile, error) {
	scan, err := sheet.ScanInputDir(r.Config.InputDir)
	if err != nil {
		return nil, err
	}
	if len(scan.Skipped) > 0 {
		r.log().LogWarn(fmt.Sprintf("skipped %d non-sheet file(s) in %s", len(scan.Skipped), r.Config.InputDir))
		r.warn(display.WarnSkippedFiles(scan.Skipped))
	}
	if len(scan.Files) == 0 {
		return nil, fmt.Errorf("no .xlsx or .csv sheets found in %s", r.Config.InputDir)
	}
	return PlanFiles(scan.Files, r.Config.TreatmentMode)
}

// NewDataset builds an empty dataset from the configured vocabulary
func (r *Runner) NewDataset() (*behavior.Dataset, error) {
	return behavior.NewDataset(
		r.Config.Behaviors.AliasTable(),
		r.Config.Behaviors.Targets,
		behavior.WithLogger(r.log()),
		behavior.WithLargeFileRows(r.Config.LargeFileRows),
	)
}

// Run integrates every sheet, exports both tables and records the run.
// It stops at the first file that fails; no output is written in that case.
func (r *Runner) Run(ctx context.Context) (*models.RunResult, error) {
	log := r.log()
	result := &models.RunResult{StartedAt: time.Now(), Status: models.StatusFailed}

	fail := func(err error) (*models.RunResult, error) {
		result.Error = err
		result.Duration = time.Since(result.StartedAt)
		log.LogRunSummary(*result)
		return result, err
	}

	files, err := r.ScanInput()
	if err != nil {
		return fail(err)
	}

	dataset, err := r.NewDataset()
	if err != nil {
		return fail(fmt.Errorf("invalid behavior configuration: %w", err))
	}

	log.LogInfo(fmt.Sprintf("Processing %d sheet(s) from %s", len(files), r.Config.InputDir))
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return fail(fmt.Errorf("run cancelled before %s: %w", file.Name(), err))
		}

		fileResult, err := r.integrate(dataset, file)
		if err != nil {
			return fail(err)
		}
		result.Files = append(result.Files, *fileResult)
		log.LogFileResult(*fileResult, i+1, len(files))
	}

	result.Observations = dataset.Registry().Len()
	result.Categories = len(dataset.Average().Rows)

	if err := r.writeOutputs(dataset, result); err != nil {
		return fail(err)
	}

	result.Status = models.StatusSuccess
	result.Duration = time.Since(result.StartedAt)

	if r.Store != nil {
		id, err := r.Store.RecordRun(ctx, r.runRecord(dataset, result))
		if err != nil {
			// Outputs are already written, so history failure does not fail the run
			log.LogWarn(fmt.Sprintf("failed to record run history: %v", err))
		} else {
			result.RunID = id
		}
	}

	log.LogRunSummary(*result)
	return result, nil
}

// integrate reads one sheet and adds it to the dataset
func (r *Runner) integrate(dataset *behavior.Dataset, file models.SheetFile) (*models.FileResult, error) {
	start := time.Now()
	r.log().LogFileStart(file)

	events, err := sheet.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name(), err)
	}
	if err := dataset.IntegrateNewData(events, file.Treatment); err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name(), err)
	}

	summaries := dataset.Files()
	summary := summaries[len(summaries)-1]
	if len(summary.ReusedRawIDs) > 0 {
		r.log().LogWarn(fmt.Sprintf("%s reuses %d observation id(s) from earlier sheets", file.Name(), len(summary.ReusedRawIDs)))
		r.warn(display.WarnReusedIDs(file.Name(), summary.ReusedRawIDs))
	}

	return &models.FileResult{File: file, Summary: summary, Elapsed: time.Since(start)}, nil
}

// writeOutputs exports both tables while holding the output directory lock
func (r *Runner) writeOutputs(dataset *behavior.Dataset, result *models.RunResult) error {
	lock, err := filelock.AcquireOutputLock(r.Config.OutputDir)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	format := export.NormalizeFormat(r.Config.Format)
	cumulativePath := export.OutputPath(r.Config.OutputDir, r.Config.CumulativeFile, format)
	averagePath := export.OutputPath(r.Config.OutputDir, r.Config.AverageFile, format)

	if err := export.ExportToFile(export.CumulativeSheet(dataset.Cumulative()), cumulativePath, format); err != nil {
		return fmt.Errorf("failed to write cumulative table: %w", err)
	}
	if err := export.ExportToFile(export.AverageSheet(dataset.Average()), averagePath, format); err != nil {
		return fmt.Errorf("failed to write average table: %w", err)
	}

	result.CumulativePath = cumulativePath
	result.AveragePath = averagePath
	r.log().LogDebug(fmt.Sprintf("wrote %s and %s", cumulativePath, averagePath))
	return nil
}

func (r *Runner) runRecord(dataset *behavior.Dataset, result *models.RunResult) store.RunRecord {
	rec := store.RunRecord{
		StartedAt: result.StartedAt,
		InputDir:  r.Config.InputDir,
		OutputDir: r.Config.OutputDir,
		Format:    export.NormalizeFormat(r.Config.Format),
		Duration:  result.Duration,
		IDs:       dataset.Registry().Mappings(),
		Averages:  append([]behavior.AverageRow(nil), dataset.Average().Rows...),
	}
	for _, f := range result.Files {
		rec.Files = append(rec.Files, store.FileRecord{
			Path:          f.File.Path,
			Treatment:     f.File.Treatment,
			Rows:          f.Summary.Rows,
			Observations:  f.Summary.Observations,
			NewIDs:        f.Summary.NewIDs,
			TotalDuration: f.Summary.TotalDuration,
		})
	}
	return rec
}
