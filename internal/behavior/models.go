package behavior

import (
	"math"
)

// Labels with special meaning during aggregation
const (
	SocialInteraction = "Social interaction"
	Trophallaxis      = "Trophallaxis"
)

// Event is one scored behavior occurrence. Its position within the slice
// passed to IntegrateNewData is its sequence index.
type Event struct {
	ObservationID string  `json:"observation_id"`
	Behavior      string  `json:"behavior"`
	Duration      float64 `json:"duration_seconds"`
}

// Validate checks that the event carries all required fields
func (e *Event) Validate() error {
	if e.ObservationID == "" {
		return &SchemaError{Field: "observation_id", Reason: "is required"}
	}
	if e.Behavior == "" {
		return &SchemaError{Field: "behavior", Reason: "is required"}
	}
	if math.IsNaN(e.Duration) || math.IsInf(e.Duration, 0) {
		return &SchemaError{Field: "duration_seconds", Reason: "must be a finite number"}
	}
	if e.Duration < 0 {
		return &SchemaError{Field: "duration_seconds", Reason: "cannot be negative"}
	}
	return nil
}

// AliasTable maps a canonical label to the alias spellings rewritten to it
type AliasTable map[string][]string

// DefaultAliases returns the alias table used by the honeybee scoring sheets
func DefaultAliases() AliasTable {
	return AliasTable{
		SocialInteraction:    {"Social contact"},
		"Upside down":        {"Upside Down"},
		"Stationary":         {"Stationary locomotion"},
		"Wings and scenting": {"Scenting"},
		"Grooming other":     {"Grooming-O", "Grooming- O"},
	}
}

// DefaultTargets returns the behavior categories always reported per treatment
func DefaultTargets() []string {
	return []string{
		SocialInteraction,
		"Active locomotion",
		"Stationary",
		"Wings and scenting",
		"Upside down",
		Trophallaxis,
		"Grooming other",
	}
}

// CumulativeRow holds one observation's per-behavior duration totals
type CumulativeRow struct {
	ObservationID string             `json:"observation_id"`
	Treatment     string             `json:"treatment_condition"`
	Durations     map[string]float64 `json:"durations"`
}

// CumulativeTable is the running per-observation table. Columns is the union
// of behavior labels in order of first introduction.
type CumulativeTable struct {
	Columns []string        `json:"columns"`
	Rows    []CumulativeRow `json:"rows"`
}

// Value returns the total duration for behavior in row, 0 when absent
func (t *CumulativeTable) Value(row CumulativeRow, behavior string) float64 {
	return row.Durations[behavior]
}

// HasColumn reports whether behavior is one of the table's columns
func (t *CumulativeTable) HasColumn(behavior string) bool {
	for _, c := range t.Columns {
		if c == behavior {
			return true
		}
	}
	return false
}

// TotalDuration sums every cell of the given rows
func (t *CumulativeTable) TotalDuration(rows []CumulativeRow) float64 {
	var total float64
	for _, row := range rows {
		for _, v := range row.Durations {
			total += v
		}
	}
	return total
}

// append adds rows, introducing new columns in the order given
func (t *CumulativeTable) append(columns []string, rows []CumulativeRow) {
	for _, c := range columns {
		if !t.HasColumn(c) {
			t.Columns = append(t.Columns, c)
		}
	}
	t.Rows = append(t.Rows, rows...)
}

// AverageRow is the summary of one behavior category under one treatment
type AverageRow struct {
	Treatment     string  `json:"treatment_condition"`
	Category      string  `json:"behavior_category"`
	TotalDuration float64 `json:"total_duration_seconds"`
	MeanDuration  float64 `json:"mean_duration_seconds"`
	TotalCount    int     `json:"total_state_count"`
	MeanCount     float64 `json:"mean_state_count"`
}

// AverageTable is the running per-treatment summary table
type AverageTable struct {
	Rows []AverageRow `json:"rows"`
}

// ForTreatment returns the rows recorded for one treatment condition
func (t *AverageTable) ForTreatment(treatment string) []AverageRow {
	var rows []AverageRow
	for _, r := range t.Rows {
		if r.Treatment == treatment {
			rows = append(rows, r)
		}
	}
	return rows
}

// Find returns the row for (treatment, category)
func (t *AverageTable) Find(treatment, category string) (AverageRow, bool) {
	for _, r := range t.Rows {
		if r.Treatment == treatment && r.Category == category {
			return r, true
		}
	}
	return AverageRow{}, false
}
