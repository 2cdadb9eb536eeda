// Package chart provides a Fyne widget plotting speed readings over time.
package chart

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/trainspeed/pkg/history"
)

const (
	defaultMaxKMH    = 100 // Y range when there is nothing to plot
	maxDisplayPoints = 500
)

// Chart is a custom Fyne widget that plots readings as points, valid
// readings coloured by direction and discarded ones along the bottom edge.
type Chart struct {
	widget.BaseWidget

	window time.Duration

	// Data (protected by mu)
	mu      sync.RWMutex
	entries []history.Entry
	stats   history.Stats

	// Auto-scaling
	yMax       float64
	xMin, xMax time.Time
}

// New creates a chart showing at least window of history on the X axis.
func New(window time.Duration) *Chart {
	c := &Chart{
		window:  window,
		entries: make([]history.Entry, 0, maxDisplayPoints),
	}
	c.updateAutoScale(time.Now())
	c.ExtendBaseWidget(c)
	c.Refresh()
	return c
}

// UpdateData replaces the plotted entries.
// This should be called from the history callback using fyne.Do().
func (c *Chart) UpdateData(entries []history.Entry, stats history.Stats) {
	c.mu.Lock()
	c.entries = history.Downsample(c.entries, entries, maxDisplayPoints)
	c.stats = stats
	c.updateAutoScale(time.Now())
	c.mu.Unlock()

	c.Refresh()
}

// Range returns the current axes: top speed and time span.
func (c *Chart) Range() (yMax float64, xMin, xMax time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.yMax, c.xMin, c.xMax
}

// updateAutoScale fits the axes to the valid readings with a 10% margin.
// The Y axis always starts at zero.
func (c *Chart) updateAutoScale(now time.Time) {
	c.yMax = 0
	for _, e := range c.entries {
		if e.Valid && float64(e.KMH) > c.yMax {
			c.yMax = float64(e.KMH)
		}
	}
	if c.yMax == 0 {
		c.yMax = defaultMaxKMH
	}
	c.yMax *= 1.1

	if len(c.entries) == 0 {
		c.xMax = now
		c.xMin = now.Add(-c.window)
		return
	}
	c.xMin = c.entries[0].Timestamp
	c.xMax = c.entries[len(c.entries)-1].Timestamp
	if c.xMax.Sub(c.xMin) < c.window {
		c.xMin = c.xMax.Add(-c.window)
	}
}

// CreateRenderer creates the widget renderer.
func (c *Chart) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255})
	return &chartRenderer{
		chart:      c,
		background: background,
		objects:    []fyne.CanvasObject{background},
	}
}
