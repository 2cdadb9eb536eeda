package display

import "strings"

// Images use the micro:bit notation: rows separated by ':' and one
// brightness digit per pixel.
var images = map[Symbol]string{
	Ready:      "00000:00009:00090:90900:09000",
	Waiting:    "09990:90009:00990:00000:00900",
	ArrowLeft:  "00900:09000:99999:09000:00900",
	ArrowRight: "00900:00090:99999:00090:00900",
}

// Frame returns the image of s.
func (s Symbol) Frame() Frame {
	return ParseImage(images[s])
}

// ParseImage decodes a micro:bit style image string. Missing pixels stay off.
func ParseImage(img string) Frame {
	var f Frame
	for row, line := range strings.SplitN(img, ":", Height) {
		for col := 0; col < len(line) && col < Width; col++ {
			if c := line[col]; c >= '0' && c <= '9' {
				f[row][col] = c - '0'
			}
		}
	}
	return f
}

// font holds the glyphs used for scrolling text. Widths vary; '#' is lit.
var font = map[rune][Height]string{
	'0': {".##.", "#..#", "#..#", "#..#", ".##."},
	'1': {".#.", "##.", ".#.", ".#.", "###"},
	'2': {"###.", "...#", ".##.", "#...", "####"},
	'3': {"###.", "...#", ".##.", "...#", "###."},
	'4': {"..#.", ".##.", "#.#.", "####", "..#."},
	'5': {"####", "#...", "###.", "...#", "###."},
	'6': {".##.", "#...", "###.", "#..#", ".##."},
	'7': {"####", "...#", "..#.", ".#..", ".#.."},
	'8': {".##.", "#..#", ".##.", "#..#", ".##."},
	'9': {".##.", "#..#", ".###", "...#", ".##."},
	'k': {"#...", "#..#", "###.", "#.#.", "#..#"},
	'm': {".....", "##.#.", "#.#.#", "#.#.#", "#...#"},
	'h': {"#...", "#...", "###.", "#..#", "#..#"},
	'/': {"....#", "...#.", "..#..", ".#...", "#...."},
	'F': {"####", "#...", "###.", "#...", "#..."},
	'J': {"####", "..#.", "..#.", "#.#.", ".#.."},
	'R': {"###.", "#..#", "###.", "#.#.", "#..#"},
	'?': {".##.", "#..#", "..#.", "....", "..#."},
	'-': {"...", "...", "###", "...", "..."},
	' ': {"..", "..", "..", "..", ".."},
}

// Columns lays text out as a strip of matrix columns, padded with a blank
// screen on both sides so it scrolls fully in and out. Unknown characters
// are drawn as '?'.
func Columns(text string) [][Height]uint8 {
	cols := make([][Height]uint8, Width, Width*2+len(text)*5)
	for _, r := range text {
		glyph, ok := font[r]
		if !ok {
			glyph = font['?']
		}
		for x := range len(glyph[0]) {
			var col [Height]uint8
			for y := range Height {
				if x < len(glyph[y]) && glyph[y][x] == '#' {
					col[y] = MaxBrightness
				}
			}
			cols = append(cols, col)
		}
		cols = append(cols, [Height]uint8{}) // spacing
	}
	return append(cols, make([][Height]uint8, Width)...)
}

// ScrollFrames returns how many frames it takes to scroll text.
func ScrollFrames(text string) int {
	return len(Columns(text)) - Width + 1
}

// ScrollDuration returns how long scrolling text takes at delayMs per frame.
func ScrollDuration(text string, delayMs uint32) uint32 {
	return uint32(ScrollFrames(text)) * delayMs
}
