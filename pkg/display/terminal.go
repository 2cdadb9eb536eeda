//go:build !tinygo

package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/itohio/trainspeed/pkg/hal"
)

var (
	pixelOff    = lipgloss.NewStyle().Foreground(lipgloss.Color("#303030"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a")).PaddingLeft(2)
	scrollStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f"))
)

// pixelStyle returns the colour of a lit pixel, dark red to bright red.
func pixelStyle(b uint8) lipgloss.Style {
	red := 80 + int(b)*19
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x2020", red)))
}

// Terminal renders the matrix as text. Pixel updates from Set are buffered
// and only drawn by Show, Clear and Render, so calibration does not flood
// the output. Scroll prints the text once and sleeps for as long as the
// real matrix would take to scroll it.
type Terminal struct {
	w     io.Writer
	clock hal.Clock
	frame Frame
}

var _ Display = (*Terminal)(nil)

// NewTerminal creates a terminal display writing to w.
func NewTerminal(w io.Writer, clock hal.Clock) *Terminal {
	return &Terminal{w: w, clock: clock}
}

// Show draws sym.
func (t *Terminal) Show(sym Symbol) {
	t.frame = sym.Frame()
	t.Render(sym.String())
}

// Scroll prints text and blocks for the scroll duration.
func (t *Terminal) Scroll(text string, delayMs uint32) {
	fmt.Fprintf(t.w, "[%8d ms] %s\n", t.clock.Now(), scrollStyle.Render(text))
	t.clock.Sleep(ScrollDuration(text, delayMs))
}

// Set buffers a pixel change.
func (t *Terminal) Set(col, row int, brightness uint8) {
	if col < 0 || col >= Width || row < 0 || row >= Height {
		return
	}
	t.frame[row][col] = min(brightness, MaxBrightness)
}

// Clear turns all pixels off and draws the empty matrix.
func (t *Terminal) Clear() {
	t.frame = Frame{}
	t.Render("clear")
}

// Render draws the current frame with a label beside it.
func (t *Terminal) Render(label string) {
	var sb strings.Builder
	for y := range Height {
		for x := range Width {
			b := t.frame[y][x]
			if b == 0 {
				sb.WriteString(pixelOff.Render("·"))
			} else {
				sb.WriteString(pixelStyle(b).Render("●"))
			}
			if x < Width-1 {
				sb.WriteByte(' ')
			}
		}
		if y < Height-1 {
			sb.WriteByte('\n')
		}
	}

	header := fmt.Sprintf("[%8d ms] %s", t.clock.Now(), label)
	fmt.Fprintln(t.w, lipgloss.JoinHorizontal(lipgloss.Top, sb.String(), labelStyle.Render(header)))
}

// Frame returns the buffered image.
func (t *Terminal) Frame() Frame {
	return t.frame
}
