// Package export renders the result tables in the supported output formats.
package export

import (
	"fmt"
	"strconv"

	"github.com/harrison/ethogram/internal/behavior"
)

// Column headers of the cumulative table
const (
	HeaderObservationID = "Observation id"
	HeaderTreatment     = "Treatment Condition"
)

// Column headers of the average table
const (
	HeaderCategory      = "Behavior category"
	HeaderTotalDuration = "Total duration (s)"
	HeaderMeanDuration  = "Mean duration (s)"
	HeaderTotalCount    = "Total state count"
	HeaderMeanCount     = "Mean state count"
)

// Tabular is a titled grid of cells. Cells hold string, int or float64 values.
type Tabular interface {
	Title() string
	Header() []string
	Rows() [][]interface{}
}

type cumulativeSheet struct {
	table *behavior.CumulativeTable
}

// CumulativeSheet presents the per-observation table: one row per
// observation and treatment, one column per behavior
func CumulativeSheet(t *behavior.CumulativeTable) Tabular {
	return cumulativeSheet{table: t}
}

func (s cumulativeSheet) Title() string { return "Cumulative durations" }

func (s cumulativeSheet) Header() []string {
	header := []string{HeaderObservationID, HeaderTreatment}
	return append(header, s.table.Columns...)
}

func (s cumulativeSheet) Rows() [][]interface{} {
	rows := make([][]interface{}, 0, len(s.table.Rows))
	for _, r := range s.table.Rows {
		cells := make([]interface{}, 0, len(s.table.Columns)+2)
		cells = append(cells, r.ObservationID, r.Treatment)
		for _, col := range s.table.Columns {
			cells = append(cells, s.table.Value(r, col))
		}
		rows = append(rows, cells)
	}
	return rows
}

type averageSheet struct {
	table *behavior.AverageTable
}

// AverageSheet presents the per-treatment summary table
func AverageSheet(t *behavior.AverageTable) Tabular {
	return averageSheet{table: t}
}

func (s averageSheet) Title() string { return "Treatment averages" }

func (s averageSheet) Header() []string {
	return []string{HeaderTreatment, HeaderCategory, HeaderTotalDuration, HeaderMeanDuration, HeaderTotalCount, HeaderMeanCount}
}

func (s averageSheet) Rows() [][]interface{} {
	rows := make([][]interface{}, 0, len(s.table.Rows))
	for _, r := range s.table.Rows {
		rows = append(rows, []interface{}{r.Treatment, r.Category, r.TotalDuration, r.MeanDuration, r.TotalCount, r.MeanCount})
	}
	return rows
}

// formatCell renders a cell for the text formats
func formatCell(v interface{}) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(c)
	}
}
