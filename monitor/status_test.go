package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/history"
	"github.com/itohio/trainspeed/pkg/sensor"
)

func TestFormatLast(t *testing.T) {
	tests := []struct {
		name  string
		stats history.Stats
		want  string
	}{
		{
			name: "no readings",
			want: "--",
		},
		{
			name: "moving right",
			stats: history.Stats{
				Count: 1,
				Last:  history.Entry{Reading: detector.Reading{KMH: 26, Direction: sensor.DirectionRight, Valid: true}},
			},
			want: "→ 26 km/h",
		},
		{
			name: "moving left",
			stats: history.Stats{
				Count: 3,
				Last:  history.Entry{Reading: detector.Reading{KMH: 134, Direction: sensor.DirectionLeft, Valid: true}},
			},
			want: "← 134 km/h",
		},
		{
			name: "discarded",
			stats: history.Stats{
				Count: 1,
				Last:  history.Entry{Reading: detector.Reading{KMH: 412}},
			},
			want: "---",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatLast(tt.stats))
		})
	}
}

func TestLastColor(t *testing.T) {
	assert.Equal(t, validColor, lastColor(history.Stats{Count: 1, Last: history.Entry{Reading: detector.Reading{Valid: true}}}))
	assert.Equal(t, discardedColor, lastColor(history.Stats{Count: 1}))
}

func TestFormatStats(t *testing.T) {
	empty := formatStats(history.Stats{})
	assert.Contains(t, empty, "Passes:     0")
	assert.Contains(t, empty, "Mean:       --")

	s := formatStats(history.Stats{Count: 4, Valid: 3, Discarded: 1, Left: 1, Right: 2, MinKMH: 40, MaxKMH: 80, MeanKMH: 60})
	assert.Contains(t, s, "Left/Right: 1/2")
	assert.Contains(t, s, "Min/Max:    40/80 km/h")
	assert.Contains(t, s, "Mean:       60.0 km/h")
}
