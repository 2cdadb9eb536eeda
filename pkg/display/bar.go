package display

import "github.com/chewxy/math32"

// Bar converts a fraction of the analog range to a pixel brightness.
func Bar(level float32) uint8 {
	level = math32.Max(0, math32.Min(1, level))
	return uint8(math32.Round(level * MaxBrightness))
}

// DrawBar fills column col from the bottom in proportion to level. The top
// pixel of the bar is dimmed to show the fractional part.
func DrawBar(d Display, col int, level float32) {
	level = math32.Max(0, math32.Min(1, level))
	height := level * Height
	for i := range Height {
		row := Height - 1 - i
		d.Set(col, row, Bar(height-float32(i)))
	}
}
