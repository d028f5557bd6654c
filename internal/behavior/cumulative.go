package behavior

import "sort"

// aggregateCumulative sums attributed durations per (observation, behavior)
// and pivots them to one row per observation. Returned columns are the file's
// behavior labels in sorted order; rows are sorted by canonical id.
func aggregateCumulative(events []Event, treatment string) ([]string, []CumulativeRow, error) {
	durations, err := AttributedDurations(events)
	if err != nil {
		return nil, nil, err
	}

	sums := make(map[string]map[string]float64)
	labels := make(map[string]bool)
	for i, e := range events {
		row, ok := sums[e.ObservationID]
		if !ok {
			row = make(map[string]float64)
			sums[e.ObservationID] = row
		}
		row[e.Behavior] += durations[i]
		labels[e.Behavior] = true
	}

	columns := make([]string, 0, len(labels))
	for label := range labels {
		columns = append(columns, label)
	}
	sort.Strings(columns)

	ids := make([]string, 0, len(sums))
	for id := range sums {
		ids = append(ids, id)
	}
	// Canonical ids outgrow their zero padding past 999
	sort.Slice(ids, func(a, b int) bool {
		if len(ids[a]) != len(ids[b]) {
			return len(ids[a]) < len(ids[b])
		}
		return ids[a] < ids[b]
	})

	rows := make([]CumulativeRow, 0, len(ids))
	for _, id := range ids {
		// Fill every column of this file so no cell is left missing
		filled := make(map[string]float64, len(columns))
		for _, c := range columns {
			filled[c] = sums[id][c]
		}
		rows = append(rows, CumulativeRow{
			ObservationID: id,
			Treatment:     treatment,
			Durations:     filled,
		})
	}

	return columns, rows, nil
}
