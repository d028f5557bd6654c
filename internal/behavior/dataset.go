package behavior

import (
	"fmt"
)

// DefaultLargeFileRows is the row count above which a file is flagged, since
// attribution scans backward from every Trophallaxis event
const DefaultLargeFileRows = 5000

// Logger receives diagnostics from a Dataset
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// FileSummary describes one successfully integrated file
type FileSummary struct {
	Treatment     string   `json:"treatment_condition"`
	Rows          int      `json:"rows"`
	Observations  int      `json:"observations"`
	NewIDs        int      `json:"new_ids"`
	ReusedRawIDs  []string `json:"reused_raw_ids,omitempty"`
	TotalDuration float64  `json:"total_duration_seconds"`
}

// Option configures a Dataset
type Option func(*Dataset)

// WithLogger routes dataset diagnostics to l
func WithLogger(l Logger) Option {
	return func(d *Dataset) { d.logger = l }
}

// WithLargeFileRows sets the row count above which a file is flagged.
// Zero disables the check.
func WithLargeFileRows(n int) Option {
	return func(d *Dataset) { d.largeFileRows = n }
}

// Dataset owns the identity registry and the two running result tables
type Dataset struct {
	normalizer    *Normalizer
	targets       []string
	registry      *Registry
	cumulative    *CumulativeTable
	average       *AverageTable
	files         []FileSummary
	logger        Logger
	largeFileRows int
}

// NewDataset creates a Dataset for the given alias table and target categories
func NewDataset(aliases AliasTable, targets []string, opts ...Option) (*Dataset, error) {
	normalizer, err := NewNormalizer(aliases)
	if err != nil {
		return nil, err
	}
	for _, t := range targets {
		if t == "" {
			return nil, &ConfigurationError{Reason: "target behavior category cannot be empty"}
		}
	}

	// Targets are reported under their canonical spelling
	canonTargets := make([]string, len(targets))
	for i, t := range targets {
		canonTargets[i] = normalizer.Canonical(t)
	}

	d := &Dataset{
		normalizer:    normalizer,
		targets:       canonTargets,
		registry:      NewRegistry(),
		cumulative:    &CumulativeTable{},
		average:       &AverageTable{},
		largeFileRows: DefaultLargeFileRows,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// IntegrateNewData aggregates one file's rows under treatment and appends the
// results to both tables. It must be called once per file, in the order
// canonical ids should be assigned. On error neither table nor the registry
// is changed.
func (d *Dataset) IntegrateNewData(rows []Event, treatment string) error {
	for i := range rows {
		if err := rows[i].Validate(); err != nil {
			se := err.(*SchemaError)
			se.Row = i + 1
			return se
		}
	}

	if d.largeFileRows > 0 && len(rows) > d.largeFileRows {
		d.logWarn(fmt.Sprintf("treatment %s: %d rows exceeds %d, trophallaxis attribution is quadratic in the worst case",
			treatment, len(rows), d.largeFileRows))
	}

	events := make([]Event, len(rows))
	copy(events, rows)
	d.normalizer.Normalize(events)

	mark := d.registry.mark()
	var reused []string
	seen := make(map[string]bool)
	for i := range events {
		raw := events[i].ObservationID
		if !seen[raw] {
			seen[raw] = true
			if _, ok := d.registry.Lookup(raw); ok {
				reused = append(reused, raw)
			}
		}
		events[i].ObservationID = d.registry.Resolve(raw)
	}

	columns, cumRows, err := aggregateCumulative(events, treatment)
	if err != nil {
		d.registry.rollback(mark)
		return err
	}
	avgRows, err := aggregateAverage(events, treatment, d.targets)
	if err != nil {
		d.registry.rollback(mark)
		return err
	}

	d.cumulative.append(columns, cumRows)
	d.average.Rows = append(d.average.Rows, avgRows...)

	summary := FileSummary{
		Treatment:     treatment,
		Rows:          len(events),
		Observations:  len(cumRows),
		NewIDs:        d.registry.Len() - mark,
		ReusedRawIDs:  reused,
		TotalDuration: d.cumulative.TotalDuration(cumRows),
	}
	d.files = append(d.files, summary)
	d.logDebug(fmt.Sprintf("treatment %s: integrated %d rows, %d observations, %d new ids",
		treatment, summary.Rows, summary.Observations, summary.NewIDs))

	return nil
}

// Cumulative returns the running per-observation table
func (d *Dataset) Cumulative() *CumulativeTable {
	return d.cumulative
}

// Average returns the running per-treatment summary table
func (d *Dataset) Average() *AverageTable {
	return d.average
}

// Registry returns the observation identity registry
func (d *Dataset) Registry() *Registry {
	return d.registry
}

// Targets returns the canonical target categories
func (d *Dataset) Targets() []string {
	out := make([]string, len(d.targets))
	copy(out, d.targets)
	return out
}

// Files returns summaries of the integrated files in integration order
func (d *Dataset) Files() []FileSummary {
	out := make([]FileSummary, len(d.files))
	copy(out, d.files)
	for i := range out {
		out[i].ReusedRawIDs = append([]string(nil), d.files[i].ReusedRawIDs...)
	}
	return out
}

// FilesIntegrated returns the number of successfully integrated files
func (d *Dataset) FilesIntegrated() int {
	return len(d.files)
}

func (d *Dataset) logWarn(msg string) {
	if d.logger != nil {
		d.logger.LogWarn(msg)
	}
}

func (d *Dataset) logDebug(msg string) {
	if d.logger != nil {
		d.logger.LogDebug(msg)
	}
}
