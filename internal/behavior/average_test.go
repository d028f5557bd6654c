package behavior

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRow(t *testing.T, rows []AverageRow, category string) AverageRow {
	t.Helper()
	for _, r := range rows {
		if r.Category == category {
			return r
		}
	}
	t.Fatalf("category %q not found", category)
	return AverageRow{}
}

func TestAggregateAverage(t *testing.T) {
	events := []Event{
		ev("001", SocialInteraction, 10),
		ev("001", Trophallaxis, 2),
		ev("002", SocialInteraction, 20),
		ev("002", Trophallaxis, 3),
		ev("002", Trophallaxis, 4),
		ev("003", "Stationary", 30),
		ev("003", "Dancing", 6),
	}
	targets := []string{SocialInteraction, "Stationary", Trophallaxis, "Upside down"}

	rows, err := aggregateAverage(events, "2", targets)
	require.NoError(t, err)

	var order []string
	for _, r := range rows {
		order = append(order, r.Category)
		assert.Equal(t, "2", r.Treatment)
	}
	assert.Equal(t, []string{SocialInteraction, "Stationary", Trophallaxis, "Upside down", "Dancing"}, order)

	social := findRow(t, rows, SocialInteraction)
	assert.Equal(t, 30.0, social.TotalDuration)
	assert.Equal(t, 10.0, social.MeanDuration)
	assert.Equal(t, 2, social.TotalCount)
	assert.InDelta(t, 2.0/3.0, social.MeanCount, 1e-12)

	// Attributed total 10 + 20 + 20 replaces the recorded 2 + 3 + 4
	troph := findRow(t, rows, Trophallaxis)
	assert.Equal(t, 50.0, troph.TotalDuration)
	assert.InDelta(t, 50.0/3.0, troph.MeanDuration, 1e-12)
	assert.Equal(t, 3, troph.TotalCount, "counts are plain row counts")
	assert.Equal(t, 1.0, troph.MeanCount)

	stationary := findRow(t, rows, "Stationary")
	assert.Equal(t, 10.0, stationary.MeanDuration)

	missing := findRow(t, rows, "Upside down")
	assert.Equal(t, AverageRow{Treatment: "2", Category: "Upside down"}, missing)

	dancing := findRow(t, rows, "Dancing")
	assert.Equal(t, 6.0, dancing.TotalDuration)
	assert.Equal(t, 1, dancing.TotalCount)
}

func TestAggregateAverage_TrophallaxisAlwaysPresent(t *testing.T) {
	rows, err := aggregateAverage([]Event{ev("001", "Stationary", 5)}, "1", nil)
	require.NoError(t, err)

	troph := findRow(t, rows, Trophallaxis)
	assert.Equal(t, 0.0, troph.TotalDuration)
	assert.Equal(t, 0, troph.TotalCount)
}

func TestAggregateAverage_Errors(t *testing.T) {
	_, err := aggregateAverage(nil, "1", DefaultTargets())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDivision))

	_, err = aggregateAverage([]Event{ev("001", Trophallaxis, 1)}, "1", DefaultTargets())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAttribution))
}

func TestMeanHelpers(t *testing.T) {
	assert.Equal(t, 10.0, meanOfScalar(30, 3))
	assert.Equal(t, map[string]float64{"a": 10, "b": 0.5}, meanOfMap(map[string]float64{"a": 30, "b": 1.5}, 3))
}
