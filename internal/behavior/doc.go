// Package behavior aggregates scored behavior events from observation sheets
// into per-observation duration totals and per-treatment summaries.
//
// The package contains:
//   - label normalization against a configured alias table
//   - a registry assigning sequential canonical observation ids across files
//   - Trophallaxis attribution to the enclosing Social interaction event
//   - the cumulative (wide, per observation) and average (per treatment) tables
//
// All state lives in a Dataset. Callers feed it one file's rows at a time, in
// the order canonical ids should be assigned:
//
//	ds, err := behavior.NewDataset(behavior.DefaultAliases(), behavior.DefaultTargets())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ds.IntegrateNewData(rows, "1"); err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range ds.Cumulative().Rows {
//	    fmt.Println(row.ObservationID, ds.Cumulative().Value(row, behavior.SocialInteraction))
//	}
//
// The package never touches the filesystem; see internal/sheet and
// internal/export for input and output.
package behavior
