package behavior

// labelTotals holds per-label sums in first-encounter order
type labelTotals struct {
	order  []string
	values map[string]float64
}

func newLabelTotals() *labelTotals {
	return &labelTotals{values: make(map[string]float64)}
}

func (lt *labelTotals) add(label string, v float64) {
	if _, ok := lt.values[label]; !ok {
		lt.order = append(lt.order, label)
	}
	lt.values[label] += v
}

// set overwrites label's value, registering the label if new
func (lt *labelTotals) set(label string, v float64) {
	if _, ok := lt.values[label]; !ok {
		lt.order = append(lt.order, label)
	}
	lt.values[label] = v
}

// meanOfMap divides every value by observations
func meanOfMap(totals map[string]float64, observations int) map[string]float64 {
	means := make(map[string]float64, len(totals))
	for k, v := range totals {
		means[k] = v / float64(observations)
	}
	return means
}

// meanOfScalar divides total by observations
func meanOfScalar(total float64, observations int) float64 {
	return total / float64(observations)
}

// distinctObservations counts distinct observation ids in events
func distinctObservations(events []Event) int {
	seen := make(map[string]bool)
	for _, e := range events {
		seen[e.ObservationID] = true
	}
	return len(seen)
}

// aggregateAverage computes one summary row per behavior category for a file.
// Targets come first in the order given, followed by any other label in the
// file in first-encounter order. Targets absent from the file report zeros.
func aggregateAverage(events []Event, treatment string, targets []string) ([]AverageRow, error) {
	observations := distinctObservations(events)
	if observations == 0 {
		return nil, &DivisionError{Treatment: treatment}
	}

	durations := newLabelTotals()
	counts := newLabelTotals()
	for _, e := range events {
		durations.add(e.Behavior, e.Duration)
		counts.add(e.Behavior, 1)
	}

	trophTotal, err := TrophallaxisTotal(events)
	if err != nil {
		return nil, err
	}
	// The attributed total replaces the plain sum of Trophallaxis rows
	durations.set(Trophallaxis, trophTotal)

	meanDurations := meanOfMap(durations.values, observations)
	meanDurations[Trophallaxis] = meanOfScalar(trophTotal, observations)
	meanCounts := meanOfMap(counts.values, observations)

	categories := make([]string, 0, len(targets)+len(durations.order))
	listed := make(map[string]bool)
	for _, c := range targets {
		if !listed[c] {
			listed[c] = true
			categories = append(categories, c)
		}
	}
	for _, c := range durations.order {
		if !listed[c] {
			listed[c] = true
			categories = append(categories, c)
		}
	}

	rows := make([]AverageRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, AverageRow{
			Treatment:     treatment,
			Category:      c,
			TotalDuration: durations.values[c],
			MeanDuration:  meanDurations[c],
			TotalCount:    int(counts.values[c]),
			MeanCount:     meanCounts[c],
		})
	}
	return rows, nil
}
