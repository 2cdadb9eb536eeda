// Package display drives the 5x5 LED matrix that shows the detector state.
package display

const (
	Width         = 5
	Height        = 5
	MaxBrightness = 9
)

// Symbol is a full-screen glyph.
type Symbol int

const (
	Ready Symbol = iota
	Waiting
	ArrowLeft
	ArrowRight
)

func (s Symbol) String() string {
	switch s {
	case Ready:
		return "ready"
	case Waiting:
		return "waiting"
	case ArrowLeft:
		return "left"
	case ArrowRight:
		return "right"
	default:
		return "unknown"
	}
}

// Display is the sink the detector writes to.
//
// Scroll blocks for the whole animation. The detector relies on this: the
// time spent scrolling a result is the dead time between two measurements.
type Display interface {
	Show(sym Symbol)
	Scroll(text string, delayMs uint32)
	Set(col, row int, brightness uint8)
	Clear()
}

// Frame is one full matrix image, indexed [row][col].
type Frame [Height][Width]uint8
