package hal

import (
	"sort"

	"github.com/chewxy/math32"
)

// Pass is one train crossing the sensor gap.
type Pass struct {
	StartMs  uint32  // Train front is LeadM before the first sensor it meets
	SpeedKMH float64 // Scaled real-world speed
	Reverse  bool    // Travels from the right sensor towards the left one
}

// TrackConfig describes the simulated layout.
type TrackConfig struct {
	DistanceM    float64 // Gap between the two sensors (m)
	Scale        float64 // Model scale ratio, e.g. 87 for H0
	TrainLengthM float64 // Length of the obstructing train (m)
	LeadM        float64 // Distance travelled before reaching the first sensor (m)
	Bright       uint16  // Reading of an illuminated sensor
	Dark         uint16  // Reading of a covered sensor
	Noise        uint16  // Peak noise amplitude in ADC counts
	ReadCostUs   uint32  // Virtual time consumed by one analog read
}

// DefaultTrackConfig returns an H0 layout with a short three-car train.
func DefaultTrackConfig() TrackConfig {
	return TrackConfig{
		DistanceM:    0.067,
		Scale:        87,
		TrainLengthM: 0.3,
		LeadM:        0.05,
		Bright:       820,
		Dark:         110,
		Noise:        12,
		ReadCostUs:   100,
	}
}

// Track simulates two light sensors over a stretch of track and the trains
// passing them. Its channels advance the virtual clock on every read.
type Track struct {
	cfg    TrackConfig
	clock  *VirtualClock
	passes []Pass
	cursor int
}

// NewTrack creates a track driven by clock.
func NewTrack(clock *VirtualClock, cfg TrackConfig) *Track {
	return &Track{cfg: cfg, clock: clock}
}

// Schedule adds passes to the track.
func (t *Track) Schedule(passes ...Pass) {
	t.passes = append(t.passes, passes...)
	sort.SliceStable(t.passes, func(i, j int) bool {
		return t.passes[i].StartMs < t.passes[j].StartMs
	})
	t.cursor = 0
}

// Passes returns the scheduled passes in start order.
func (t *Track) Passes() []Pass {
	result := make([]Pass, len(t.passes))
	copy(result, t.passes)
	return result
}

// Channel returns the analog input of sensor i (0 = left, 1 = right).
func (t *Track) Channel(i int) Analog {
	return AnalogFunc(func() uint16 {
		return t.read(i)
	})
}

// Duration returns how long p keeps at least one sensor busy, from its start
// until the tail clears the far sensor, in milliseconds.
func (t *Track) Duration(p Pass) uint32 {
	v := t.modelSpeed(p)
	if v <= 0 {
		return 0
	}
	travel := 2*t.cfg.LeadM + t.cfg.DistanceM + t.cfg.TrainLengthM
	return uint32(travel / v * 1000)
}

// Covered reports whether sensor i is obstructed at the current virtual time.
func (t *Track) Covered(i int) bool {
	return t.covered(i, t.clock.Micros())
}

func (t *Track) read(i int) uint16 {
	t.clock.Advance(t.cfg.ReadCostUs)
	now := t.clock.Micros()

	base := float32(t.cfg.Bright)
	if t.covered(i, now) {
		base = float32(t.cfg.Dark)
	}

	noise := math32.Sin(float32(now)*0.0007+float32(i)) * float32(t.cfg.Noise)
	value := math32.Round(base + noise)
	if value < 0 {
		value = 0
	} else if value > AnalogMax {
		value = AnalogMax
	}
	return uint16(value)
}

func (t *Track) modelSpeed(p Pass) float64 {
	if t.cfg.Scale <= 0 {
		return 0
	}
	return p.SpeedKMH / 3.6 / t.cfg.Scale
}

func (t *Track) covered(i int, nowUs uint64) bool {
	pos := 0.0
	if i == 1 {
		pos = t.cfg.DistanceM
	}

	// Passes that finished for good are skipped on later reads.
	for t.cursor < len(t.passes) {
		p := t.passes[t.cursor]
		end := uint64(p.StartMs)*1000 + uint64(t.Duration(p))*1000
		if end >= nowUs {
			break
		}
		t.cursor++
	}

	for _, p := range t.passes[t.cursor:] {
		start := uint64(p.StartMs) * 1000
		if start > nowUs {
			break
		}
		travel := t.modelSpeed(p) * float64(nowUs-start) / 1e6
		if p.Reverse {
			front := t.cfg.DistanceM + t.cfg.LeadM - travel
			if pos >= front && pos <= front+t.cfg.TrainLengthM {
				return true
			}
			continue
		}
		front := travel - t.cfg.LeadM
		if pos <= front && pos >= front-t.cfg.TrainLengthM {
			return true
		}
	}
	return false
}
