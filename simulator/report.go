package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/itohio/trainspeed/pkg/config"
	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/history"
)

var (
	colorValid     = lipgloss.Color("#00CC33")
	colorDiscarded = lipgloss.Color("#FFAA00")
	colorDim       = lipgloss.Color("#8a8a8a")

	styleValid = lipgloss.NewStyle().
			Foreground(colorValid).
			Bold(true)

	styleDiscarded = lipgloss.NewStyle().
			Foreground(colorDiscarded)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(12)

	styleSummary = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorValid).
			Padding(0, 1)
)

// renderReading formats a reading as the report line followed by a readable
// description.
func renderReading(r detector.Reading) string {
	if r.Valid {
		return fmt.Sprintf("%s  %s", r.String(), styleValid.Render(fmt.Sprintf("%d km/h %s", r.KMH, r.Direction)))
	}
	return fmt.Sprintf("%s  %s", r.String(), styleDiscarded.Render(fmt.Sprintf("discarded (%d km/h)", r.KMH)))
}

// renderSummary formats statistics over a simulation run.
func renderSummary(cfg *config.Config, s history.Stats) string {
	rows := [][2]string{
		{"passes", fmt.Sprint(s.Count)},
		{"valid", fmt.Sprint(s.Valid)},
		{"discarded", fmt.Sprint(s.Discarded)},
		{"left/right", fmt.Sprintf("%d/%d", s.Left, s.Right)},
	}
	if s.Valid > 0 {
		rows = append(rows,
			[2]string{"min", fmt.Sprintf("%d km/h", s.MinKMH)},
			[2]string{"max", fmt.Sprintf("%d km/h", s.MaxKMH)},
			[2]string{"mean", fmt.Sprintf("%.1f km/h", s.MeanKMH)},
		)
	}
	rows = append(rows, [2]string{"simulated", fmt.Sprintf("%.0f km/h ±%.0f%%", cfg.Mock.SpeedKMH, cfg.Mock.Spread*100)})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, styleLabel.Render(row[0])+row[1])
	}
	return styleSummary.Render(strings.Join(lines, "\n"))
}
