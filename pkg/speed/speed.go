// Package speed converts the time a train needs to cross the sensor gap into
// the equivalent real-world speed.
package speed

import "math"

const (
	// DefaultMinKMH and DefaultMaxKMH bound the accepted readings (exclusive).
	DefaultMinKMH = 0
	DefaultMaxKMH = 300

	msPerSecond = 1000
	kmhPerMps   = 3.6
)

// Model holds the layout constants. It is fixed after startup.
type Model struct {
	DistanceM float64 // Physical gap between the sensors (m)
	Scale     float64 // Model scale ratio, e.g. 87 for 1:87
	MinKMH    float64 // Readings at or below are noise
	MaxKMH    float64 // Readings at or above are noise
}

// New creates a model with the default validity band.
func New(distanceM, scale float64) Model {
	return Model{
		DistanceM: distanceM,
		Scale:     scale,
		MinKMH:    DefaultMinKMH,
		MaxKMH:    DefaultMaxKMH,
	}
}

// ModelSpeed returns the speed of the model in m/s, or 0 for a zero interval.
func (m Model) ModelSpeed(elapsedMs uint32) float64 {
	if elapsedMs == 0 {
		return 0
	}
	return m.DistanceM / (float64(elapsedMs) / msPerSecond)
}

// KMH returns the scaled real-world speed in km/h.
func (m Model) KMH(elapsedMs uint32) float64 {
	return m.ModelSpeed(elapsedMs) * m.Scale * kmhPerMps
}

// Truncate returns KMH truncated to whole km/h, as shown on the display.
func (m Model) Truncate(elapsedMs uint32) int {
	return int(m.KMH(elapsedMs))
}

// Valid reports whether v lies strictly inside the accepted band.
func (m Model) Valid(v int) bool {
	return float64(v) > m.MinKMH && float64(v) < m.MaxKMH
}

// Elapsed is the inverse of KMH: the crossing time in ms for a scaled speed.
// It returns 0 for non-positive speeds.
func (m Model) Elapsed(kmh float64) uint32 {
	if kmh <= 0 {
		return 0
	}
	return uint32(math.Round(m.DistanceM * m.Scale * kmhPerMps / kmh * msPerSecond))
}
