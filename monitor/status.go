package main

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2/theme"

	"github.com/itohio/trainspeed/pkg/history"
	"github.com/itohio/trainspeed/pkg/sensor"
)

var (
	validColor     = color.RGBA{R: 0, G: 204, B: 51, A: 255}
	discardedColor = color.RGBA{R: 255, G: 170, B: 0, A: 255}
)

// formatLast formats the latest reading for the big speed label.
func formatLast(s history.Stats) string {
	if s.Count == 0 {
		return "--"
	}
	if !s.Last.Valid {
		return "---"
	}
	arrow := "→"
	if s.Last.Direction == sensor.DirectionLeft {
		arrow = "←"
	}
	return fmt.Sprintf("%s %d km/h", arrow, s.Last.KMH)
}

// lastColor returns the colour of the big speed label.
func lastColor(s history.Stats) color.Color {
	switch {
	case s.Count == 0:
		return theme.Color(theme.ColorNameForeground)
	case s.Last.Valid:
		return validColor
	default:
		return discardedColor
	}
}

// formatStats formats the statistics panel.
func formatStats(s history.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Passes:     %d\n", s.Count)
	fmt.Fprintf(&sb, "Valid:      %d\n", s.Valid)
	fmt.Fprintf(&sb, "Discarded:  %d\n", s.Discarded)
	fmt.Fprintf(&sb, "Left/Right: %d/%d\n", s.Left, s.Right)
	if s.Valid == 0 {
		sb.WriteString("Min/Max:    --\n")
		sb.WriteString("Mean:       --")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Min/Max:    %d/%d km/h\n", s.MinKMH, s.MaxKMH)
	fmt.Fprintf(&sb, "Mean:       %.1f km/h", s.MeanKMH)
	return sb.String()
}
