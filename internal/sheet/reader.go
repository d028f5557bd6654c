package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/harrison/ethogram/internal/behavior"
)

// Header names of the required columns
const (
	ColumnObservationID = "Observation id"
	ColumnBehavior      = "Behavior"
	ColumnDuration      = "Duration (s)"
)

// ReadFile reads the events of one sheet, dispatching on the file extension
func ReadFile(path string) ([]behavior.Event, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sheet: %w", err)
		}
		defer f.Close()
		return ReadCSV(f, filepath.Base(path))
	default:
		return nil, fmt.Errorf("unsupported sheet type %q (supported: %s)", filepath.Ext(path), strings.Join(SupportedExtensions, ", "))
	}
}

// ReadXLSX reads events from the first worksheet of an .xlsx workbook
func ReadXLSX(path string) ([]behavior.Event, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no worksheets", filepath.Base(path))
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	return parseRows(filepath.Base(path), rows)
}

// ReadCSV reads events from CSV data; name is used in error messages
func ReadCSV(r io.Reader, name string) ([]behavior.Event, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return parseRows(name, rows)
}

// normalizeHeader lowercases and collapses internal whitespace
func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRows locates the header row and converts the remaining rows to events.
// Row numbers in errors are 1-based sheet rows.
func parseRows(name string, rows [][]string) ([]behavior.Event, error) {
	headerIdx := -1
	for i, row := range rows {
		if !isBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, &behavior.SchemaError{File: name, Field: "header", Reason: "is missing, sheet is empty"}
	}

	columns := map[string]int{
		ColumnObservationID: -1,
		ColumnBehavior:      -1,
		ColumnDuration:      -1,
	}
	for i, cell := range rows[headerIdx] {
		for col := range columns {
			if columns[col] < 0 && normalizeHeader(cell) == normalizeHeader(col) {
				columns[col] = i
			}
		}
	}
	for _, col := range []string{ColumnObservationID, ColumnBehavior, ColumnDuration} {
		if columns[col] < 0 {
			return nil, &behavior.SchemaError{File: name, Row: headerIdx + 1, Field: col, Reason: "column is missing"}
		}
	}

	cell := func(row []string, col string) string {
		idx := columns[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	events := make([]behavior.Event, 0, len(rows)-headerIdx-1)
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		raw := cell(row, ColumnDuration)
		if raw == "" {
			return nil, &behavior.SchemaError{File: name, Row: i + 1, Field: ColumnDuration, Reason: "is empty"}
		}
		duration, err := parseDuration(raw)
		if err != nil {
			return nil, &behavior.SchemaError{File: name, Row: i + 1, Field: ColumnDuration, Reason: fmt.Sprintf("%q is not a number", raw)}
		}

		event := behavior.Event{
			ObservationID: cell(row, ColumnObservationID),
			Behavior:      cell(row, ColumnBehavior),
			Duration:      duration,
		}
		if err := event.Validate(); err != nil {
			var se *behavior.SchemaError
			if errors.As(err, &se) {
				se.File = name
				se.Row = i + 1
			}
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// parseDuration parses a seconds value, accepting a decimal comma
func parseDuration(s string) (float64, error) {
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}
