package display

import "github.com/itohio/trainspeed/pkg/hal"

// Panel is a raw LED matrix: pixels are buffered by SetPixel and shown by
// Flush.
type Panel interface {
	SetPixel(x, y int, brightness uint8)
	Flush()
}

// Matrix implements Display on top of a Panel. Scrolling sleeps on clock
// between frames, so it blocks the caller for the whole animation.
type Matrix struct {
	panel Panel
	clock hal.Clock
	frame Frame
}

var _ Display = (*Matrix)(nil)

// NewMatrix creates a display over panel.
func NewMatrix(panel Panel, clock hal.Clock) *Matrix {
	return &Matrix{panel: panel, clock: clock}
}

// Show draws sym.
func (m *Matrix) Show(sym Symbol) {
	m.draw(sym.Frame())
}

// Scroll moves text right to left, one column every delayMs.
func (m *Matrix) Scroll(text string, delayMs uint32) {
	cols := Columns(text)
	for off := 0; off+Width <= len(cols); off++ {
		var f Frame
		for x := range Width {
			for y := range Height {
				f[y][x] = cols[off+x][y]
			}
		}
		m.draw(f)
		m.clock.Sleep(delayMs)
	}
}

// Set changes a single pixel.
func (m *Matrix) Set(col, row int, brightness uint8) {
	if col < 0 || col >= Width || row < 0 || row >= Height {
		return
	}
	if brightness > MaxBrightness {
		brightness = MaxBrightness
	}
	m.frame[row][col] = brightness
	m.panel.SetPixel(col, row, brightness)
	m.panel.Flush()
}

// Clear turns all pixels off.
func (m *Matrix) Clear() {
	m.draw(Frame{})
}

// Frame returns the image currently shown.
func (m *Matrix) Frame() Frame {
	return m.frame
}

func (m *Matrix) draw(f Frame) {
	m.frame = f
	for y := range Height {
		for x := range Width {
			m.panel.SetPixel(x, y, f[y][x])
		}
	}
	m.panel.Flush()
}
