package chart

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/history"
	"github.com/itohio/trainspeed/pkg/sensor"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func entry(sec, kmh int, dir sensor.Direction, valid bool) history.Entry {
	return history.Entry{
		Timestamp: epoch.Add(time.Duration(sec) * time.Second),
		Reading:   detector.Reading{KMH: kmh, Direction: dir, Valid: valid},
	}
}

func TestChart_AutoScale(t *testing.T) {
	test.NewTempApp(t)

	c := New(time.Minute)
	yMax, xMin, xMax := c.Range()
	assert.InDelta(t, defaultMaxKMH*1.1, yMax, 1e-9)
	assert.Equal(t, time.Minute, xMax.Sub(xMin))

	entries := []history.Entry{
		entry(0, 40, sensor.DirectionRight, true),
		entry(10, 500, sensor.DirectionLeft, false),
		entry(20, 80, sensor.DirectionLeft, true),
	}
	c.UpdateData(entries, history.Stats{Count: 3, Valid: 2, MeanKMH: 60})

	yMax, xMin, xMax = c.Range()
	assert.InDelta(t, 88, yMax, 1e-9)
	assert.Equal(t, epoch.Add(20*time.Second), xMax)
	assert.Equal(t, xMax.Add(-time.Minute), xMin)

	// Longer than the window: the axis covers all entries.
	entries = append(entries, entry(200, 60, sensor.DirectionRight, true))
	c.UpdateData(entries, history.Stats{Count: 4, Valid: 3, MeanKMH: 60})
	_, xMin, xMax = c.Range()
	assert.Equal(t, epoch, xMin)
	assert.Equal(t, epoch.Add(200*time.Second), xMax)
}

func TestChart_Render(t *testing.T) {
	test.NewTempApp(t)

	c := New(time.Minute)
	c.Resize(fyne.NewSize(400, 250))
	r := test.TempWidgetRenderer(t, c)

	r.Refresh()
	empty := len(r.Objects())

	c.UpdateData([]history.Entry{
		entry(0, 40, sensor.DirectionRight, true),
		entry(5, 0, sensor.DirectionUnknown, false),
		entry(10, 60, sensor.DirectionLeft, true),
	}, history.Stats{Count: 3, Valid: 2, MeanKMH: 50})
	r.Refresh()

	// Three points, the mean line with its label and the last value label.
	assert.Equal(t, empty+6, len(r.Objects()))
}

func TestFormatAgo(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "now"},
		{10 * time.Second, "-10s"},
		{90 * time.Second, "-1.5m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAgo(tt.d))
		})
	}
}
