package behavior

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(id, behavior string, d float64) Event {
	return Event{ObservationID: id, Behavior: behavior, Duration: d}
}

func TestPrecedingSocial(t *testing.T) {
	events := []Event{
		ev("1", SocialInteraction, 4),
		ev("1", "Active locomotion", 1),
		ev("1", SocialInteraction, 7),
		ev("1", "Stationary", 2),
		ev("1", Trophallaxis, 0),
	}

	j, ok := precedingSocial(events, 4)
	assert.True(t, ok)
	assert.Equal(t, 2, j, "nearest preceding match wins")

	j, ok = precedingSocial(events, 2)
	assert.True(t, ok)
	assert.Equal(t, 0, j)

	_, ok = precedingSocial(events, 0)
	assert.False(t, ok)
}

func TestAttributedDurations(t *testing.T) {
	tests := []struct {
		name    string
		events  []Event
		want    []float64
		wantErr bool
	}{
		{
			name:   "single pair",
			events: []Event{ev("1", SocialInteraction, 10), ev("1", Trophallaxis, 0)},
			want:   []float64{10, 10},
		},
		{
			name: "two trophallaxis share one interaction",
			events: []Event{
				ev("1", SocialInteraction, 6),
				ev("1", Trophallaxis, 1),
				ev("1", "Stationary", 3),
				ev("1", Trophallaxis, 2),
			},
			want: []float64{6, 6, 3, 6},
		},
		{
			name:   "no trophallaxis",
			events: []Event{ev("1", "Stationary", 3), ev("2", "Upside down", 1.5)},
			want:   []float64{3, 1.5},
		},
		{
			name:    "trophallaxis first",
			events:  []Event{ev("1", Trophallaxis, 2), ev("1", SocialInteraction, 5)},
			wantErr: true,
		},
		{
			name:    "no interaction before trophallaxis",
			events:  []Event{ev("1", "Stationary", 2), ev("1", Trophallaxis, 1), ev("1", SocialInteraction, 5)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AttributedDurations(tt.events)
			total, totalErr := TrophallaxisTotal(tt.events)
			if tt.wantErr {
				require.Error(t, err)
				require.Error(t, totalErr)
				assert.True(t, errors.Is(err, ErrAttribution))
				var ae *AttributionError
				require.True(t, errors.As(err, &ae))
				assert.Equal(t, "1", ae.ObservationID)
				return
			}
			require.NoError(t, err)
			require.NoError(t, totalErr)
			assert.Equal(t, tt.want, got)

			// Both paths must agree on the attributed trophallaxis total
			var fromRows float64
			for i, e := range tt.events {
				if e.Behavior == Trophallaxis {
					fromRows += got[i]
				}
			}
			assert.Equal(t, fromRows, total)
		})
	}
}

func TestAttributedDurations_DoesNotMutateInput(t *testing.T) {
	events := []Event{ev("1", SocialInteraction, 10), ev("1", Trophallaxis, 0)}
	_, err := AttributedDurations(events)
	require.NoError(t, err)
	assert.Equal(t, 0.0, events[1].Duration)
}
