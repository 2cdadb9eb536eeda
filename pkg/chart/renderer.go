package chart

import (
	"image/color"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/itohio/trainspeed/pkg/history"
	"github.com/itohio/trainspeed/pkg/sensor"
)

var (
	gridColor      = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor     = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	rightColor     = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	leftColor      = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	discardedColor = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	meanColor      = color.RGBA{R: 0, G: 160, B: 80, A: 255}
)

const pointRadius = 4

// chartRenderer renders the chart widget.
type chartRenderer struct {
	chart *Chart

	background *canvas.Rectangle
	objects    []fyne.CanvasObject
	lastSize   fyne.Size
}

// plot maps readings into widget coordinates.
type plot struct {
	x, y, width, height float32
	yMax                float64
	xMin, xMax          time.Time
}

func (p plot) posX(t time.Time) float32 {
	span := p.xMax.Sub(p.xMin).Seconds()
	if span <= 0 {
		return p.x + p.width
	}
	return p.x + float32(t.Sub(p.xMin).Seconds()/span)*p.width
}

func (p plot) posY(kmh float64) float32 {
	return p.y + p.height - float32(kmh/p.yMax)*p.height
}

// MinSize returns the minimum size of the widget.
func (r *chartRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 250)
}

// Layout arranges the widget components.
func (r *chartRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		r.chart.BaseWidget.Refresh()
	}
}

// Refresh rebuilds the canvas objects from the current data.
func (r *chartRenderer) Refresh() {
	r.chart.mu.RLock()
	entries := r.chart.entries
	stats := r.chart.stats
	p := plot{yMax: r.chart.yMax, xMin: r.chart.xMin, xMax: r.chart.xMax}
	r.chart.mu.RUnlock()

	r.objects = []fyne.CanvasObject{r.background}

	size := r.chart.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	marginLeft := float32(50.0)
	marginRight := float32(20.0)
	marginTop := float32(20.0)
	marginBottom := float32(30.0)
	p.x, p.y = marginLeft, marginTop
	p.width = size.Width - marginLeft - marginRight
	p.height = size.Height - marginTop - marginBottom

	r.drawGrid(p)
	if stats.Valid > 0 {
		r.drawMean(p, stats.MeanKMH)
	}
	r.drawPoints(p, entries)
}

// drawGrid draws horizontal speed lines and vertical time lines.
func (r *chartRenderer) drawGrid(p plot) {
	numHLines := 5
	for i := range numHLines + 1 {
		y := p.y + float32(i)*p.height/float32(numHLines)
		r.addLine(gridColor, 1, fyne.NewPos(p.x, y), fyne.NewPos(p.x+p.width, y))

		value := p.yMax - float64(i)*p.yMax/float64(numHLines)
		r.addText(formatSpeed(value), labelColor, 10, fyne.TextAlignTrailing, fyne.NewPos(p.x-5, y-6))
	}

	numVLines := 6
	span := p.xMax.Sub(p.xMin)
	for i := range numVLines + 1 {
		x := p.x + float32(i)*p.width/float32(numVLines)
		r.addLine(gridColor, 1, fyne.NewPos(x, p.y), fyne.NewPos(x, p.y+p.height))

		ago := span - span*time.Duration(i)/time.Duration(numVLines)
		r.addText(formatAgo(ago), labelColor, 10, fyne.TextAlignCenter, fyne.NewPos(x-20, p.y+p.height+5))
	}
}

// drawMean draws the mean speed as a horizontal line with its value.
func (r *chartRenderer) drawMean(p plot, mean float64) {
	y := p.posY(mean)
	r.addLine(meanColor, 1.5, fyne.NewPos(p.x, y), fyne.NewPos(p.x+p.width, y))
	r.addText("avg "+formatSpeed(mean), meanColor, 11, fyne.TextAlignLeading, fyne.NewPos(p.x+5, y-16))
}

// drawPoints draws a marker per reading and labels the latest valid one.
func (r *chartRenderer) drawPoints(p plot, entries []history.Entry) {
	for i, e := range entries {
		x := p.posX(e.Timestamp)
		y := p.y + p.height
		c := color.Color(discardedColor)
		if e.Valid {
			y = p.posY(float64(e.KMH))
			c = rightColor
			if e.Direction == sensor.DirectionLeft {
				c = leftColor
			}
		}

		dot := canvas.NewCircle(c)
		dot.Move(fyne.NewPos(x-pointRadius, y-pointRadius))
		dot.Resize(fyne.NewSize(2*pointRadius, 2*pointRadius))
		r.objects = append(r.objects, dot)

		if i == len(entries)-1 && e.Valid {
			r.addText(strconv.Itoa(e.KMH)+" km/h", c, 12, fyne.TextAlignTrailing, fyne.NewPos(x-8, y-20))
		}
	}
}

func (r *chartRenderer) addLine(c color.Color, width float32, from, to fyne.Position) {
	line := canvas.NewLine(c)
	line.Position1 = from
	line.Position2 = to
	line.StrokeWidth = width
	r.objects = append(r.objects, line)
}

func (r *chartRenderer) addText(s string, c color.Color, size float32, align fyne.TextAlign, pos fyne.Position) {
	text := canvas.NewText(s, c)
	text.TextSize = size
	text.Alignment = align
	text.Move(pos)
	r.objects = append(r.objects, text)
}

// Objects returns all canvas objects for rendering.
func (r *chartRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *chartRenderer) Destroy() {}

func formatSpeed(kmh float64) string {
	return strconv.FormatFloat(kmh, 'f', 0, 64)
}

// formatAgo formats a time offset into the past, "now" for zero.
func formatAgo(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	if d < time.Minute {
		return "-" + strconv.FormatFloat(d.Seconds(), 'f', 0, 64) + "s"
	}
	return "-" + strconv.FormatFloat(d.Minutes(), 'f', 1, 64) + "m"
}
