// Package store keeps a history of processing runs in SQLite: which sheets
// were ingested, the observation ids they were given and the resulting
// treatment averages.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/ethogram/internal/behavior"
)

// ErrRunNotFound is returned when no run matches the requested id
var ErrRunNotFound = errors.New("run not found")

// FileRecord is one ingested sheet of a run
type FileRecord struct {
	Path          string
	Treatment     string
	Rows          int
	Observations  int
	NewIDs        int
	TotalDuration float64
}

// RunRecord is everything persisted for a successful run
type RunRecord struct {
	// ID is generated when empty
	ID        string
	StartedAt time.Time
	InputDir  string
	OutputDir string
	Format    string
	Duration  time.Duration
	Files     []FileRecord
	IDs       []behavior.IDMapping
	Averages  []behavior.AverageRow
}

// RunInfo is the summary line of a stored run
type RunInfo struct {
	ID           string
	StartedAt    time.Time
	InputDir     string
	OutputDir    string
	Format       string
	FileCount    int
	Observations int
	Duration     time.Duration
}

// Store manages the run history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens or creates the database at dbPath and applies migrations.
// ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	// busy_timeout must come first so later statements wait on locks
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database path
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a run and returns its id
func (s *Store) RecordRun(ctx context.Context, rec RunRecord) (string, error) {
	id := rec.ID
	if id == "" {
		id = uuid.New().String()
	}
	startedAt := rec.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	var observations int
	for _, f := range rec.Files {
		observations += f.Observations
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op if committed

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, started_at, input_dir, output_dir, format, file_count, observation_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, startedAt.UTC(), rec.InputDir, rec.OutputDir, rec.Format,
		len(rec.Files), observations, rec.Duration.Milliseconds())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, f := range rec.Files {
		_, err := tx.ExecContext(ctx, `INSERT INTO ingested_files
			(run_id, position, path, treatment, row_count, observation_count, new_id_count, total_duration)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, f.Path, f.Treatment, f.Rows, f.Observations, f.NewIDs, f.TotalDuration)
		if err != nil {
			return "", fmt.Errorf("insert ingested file %s: %w", f.Path, err)
		}
	}

	for _, m := range rec.IDs {
		_, err := tx.ExecContext(ctx, `INSERT INTO observation_ids (run_id, raw_id, canonical_id) VALUES (?, ?, ?)`,
			id, m.Raw, m.Canonical)
		if err != nil {
			return "", fmt.Errorf("insert observation id %s: %w", m.Raw, err)
		}
	}

	for i, r := range rec.Averages {
		_, err := tx.ExecContext(ctx, `INSERT INTO average_rows
			(run_id, position, treatment, category, total_duration, mean_duration, total_count, mean_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, r.Treatment, r.Category, r.TotalDuration, r.MeanDuration, r.TotalCount, r.MeanCount)
		if err != nil {
			return "", fmt.Errorf("insert average row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

const runColumns = `id, started_at, input_dir, COALESCE(output_dir, ''), COALESCE(format, ''), file_count, observation_count, duration_ms`

func scanRun(scan func(dest ...interface{}) error) (*RunInfo, error) {
	info := &RunInfo{}
	var durationMs int64
	if err := scan(&info.ID, &info.StartedAt, &info.InputDir, &info.OutputDir, &info.Format,
		&info.FileCount, &info.Observations, &durationMs); err != nil {
		return nil, err
	}
	info.Duration = time.Duration(durationMs) * time.Millisecond
	return info, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*RunInfo, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunInfo
	for rows.Next() {
		info, err := scanRun(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run by id
func (s *Store) GetRun(ctx context.Context, id string) (*RunInfo, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	info, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	return info, nil
}

// GetRunFiles returns the sheets of a run in processing order
func (s *Store) GetRunFiles(ctx context.Context, id string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, treatment, row_count, observation_count, new_id_count, total_duration
		FROM ingested_files WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query ingested files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.Path, &f.Treatment, &f.Rows, &f.Observations, &f.NewIDs, &f.TotalDuration); err != nil {
			return nil, fmt.Errorf("scan ingested file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// GetRunIDs returns the raw to canonical observation id mappings of a run,
// ordered by canonical id
func (s *Store) GetRunIDs(ctx context.Context, id string) ([]behavior.IDMapping, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT raw_id, canonical_id FROM observation_ids
		WHERE run_id = ? ORDER BY length(canonical_id), canonical_id`, id)
	if err != nil {
		return nil, fmt.Errorf("query observation ids: %w", err)
	}
	defer rows.Close()

	var ids []behavior.IDMapping
	for rows.Next() {
		var m behavior.IDMapping
		if err := rows.Scan(&m.Raw, &m.Canonical); err != nil {
			return nil, fmt.Errorf("scan observation id: %w", err)
		}
		ids = append(ids, m)
	}
	return ids, rows.Err()
}

// GetRunAverages returns the average table stored for a run
func (s *Store) GetRunAverages(ctx context.Context, id string) ([]behavior.AverageRow, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT treatment, category, total_duration, mean_duration, total_count, mean_count
		FROM average_rows WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query average rows: %w", err)
	}
	defer rows.Close()

	var averages []behavior.AverageRow
	for rows.Next() {
		var r behavior.AverageRow
		if err := rows.Scan(&r.Treatment, &r.Category, &r.TotalDuration, &r.MeanDuration, &r.TotalCount, &r.MeanCount); err != nil {
			return nil, fmt.Errorf("scan average row: %w", err)
		}
		averages = append(averages, r)
	}
	return averages, rows.Err()
}
