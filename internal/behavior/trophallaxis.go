package behavior

// precedingSocial scans backward from i-1 to 0 for the nearest
// Social interaction event. The scan stops at index 0 and never wraps.
func precedingSocial(events []Event, i int) (int, bool) {
	for j := i - 1; j >= 0; j-- {
		if events[j].Behavior == SocialInteraction {
			return j, true
		}
	}
	return -1, false
}

// AttributedDurations returns per-row durations where every Trophallaxis
// event takes the duration of its nearest preceding Social interaction event.
// The input is not modified.
func AttributedDurations(events []Event) ([]float64, error) {
	durations := make([]float64, len(events))
	for i, e := range events {
		durations[i] = e.Duration
		if e.Behavior != Trophallaxis {
			continue
		}
		j, ok := precedingSocial(events, i)
		if !ok {
			return nil, &AttributionError{Index: i, ObservationID: e.ObservationID}
		}
		durations[i] = events[j].Duration
	}
	return durations, nil
}

// TrophallaxisTotal sums the attributed Social interaction duration of every
// Trophallaxis event in events
func TrophallaxisTotal(events []Event) (float64, error) {
	var total float64
	for i, e := range events {
		if e.Behavior != Trophallaxis {
			continue
		}
		j, ok := precedingSocial(events, i)
		if !ok {
			return 0, &AttributionError{Index: i, ObservationID: e.ObservationID}
		}
		total += events[j].Duration
	}
	return total, nil
}
