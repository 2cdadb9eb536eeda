// Package sensor implements a calibrated light sensor that latches the moment
// its beam is first obstructed, and the left/right pair used to time a train.
package sensor

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/itohio/trainspeed/pkg/hal"
)

var (
	// ErrNotCalibrated is returned by Validate when no sample was taken.
	ErrNotCalibrated = errors.New("sensor not calibrated")
	// ErrDegenerate is returned by Validate when the observed range is too
	// narrow to separate dark from bright.
	ErrDegenerate = errors.New("degenerate calibration range")
)

// Sensor wraps one analog channel.
//
// Check is a one-shot edge detector rather than a pure query: the first dark
// reading after a Restart latches the current clock time, and later dark
// readings leave it untouched until the next Restart.
type Sensor struct {
	channel   hal.Analog
	clock     hal.Clock
	analogMax uint16

	min       uint16
	max       uint16
	threshold uint16
	samples   int
	preset    bool

	darkTime uint32
	latched  bool
}

// New creates an uncalibrated sensor reading values in [0, analogMax].
func New(channel hal.Analog, clock hal.Clock, analogMax uint16) *Sensor {
	if analogMax == 0 {
		analogMax = hal.AnalogMax
	}
	return &Sensor{
		channel:   channel,
		clock:     clock,
		analogMax: analogMax,
		min:       analogMax,
		max:       0,
	}
}

// Calibrate takes one sample, widens the observed range if needed and
// recomputes the threshold as the rounded midpoint of the range.
func (s *Sensor) Calibrate() {
	v := s.channel.Read()
	if v > s.analogMax {
		v = s.analogMax
	}

	// Both bounds are checked so the very first sample narrows min and max
	// at once; afterwards at most one of them can move.
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
	s.samples++
	s.preset = false
	s.threshold = uint16((uint32(s.min) + uint32(s.max) + 1) / 2)
}

// Preset skips calibration and uses a fixed threshold.
func (s *Sensor) Preset(threshold uint16) {
	s.threshold = threshold
	s.preset = true
}

// Check reads the channel and reports whether it is below the threshold.
// The first dark reading since the last Restart latches DarkTime.
func (s *Sensor) Check() bool {
	if !s.IsDark() {
		return false
	}
	if !s.latched {
		s.latched = true
		s.darkTime = s.clock.Now()
	}
	return true
}

// IsDark reads the channel without latching.
func (s *Sensor) IsDark() bool {
	return s.channel.Read() < s.threshold
}

// Restart clears the latch. Calibration is kept.
func (s *Sensor) Restart() {
	s.darkTime = 0
	s.latched = false
}

// Latched reports whether a dark moment was captured since the last Restart.
func (s *Sensor) Latched() bool { return s.latched }

// DarkTime returns the latched timestamp, or 0 when nothing is latched.
func (s *Sensor) DarkTime() uint32 { return s.darkTime }

// Min returns the lowest calibration sample.
func (s *Sensor) Min() uint16 { return s.min }

// Max returns the highest calibration sample.
func (s *Sensor) Max() uint16 { return s.max }

// Threshold returns the current dark threshold.
func (s *Sensor) Threshold() uint16 { return s.threshold }

// Level reads the channel and returns it as a fraction of the analog range.
func (s *Sensor) Level() float32 {
	return math32.Min(1, float32(s.channel.Read())/float32(s.analogMax))
}

// Validate reports whether calibration produced a usable threshold. A range
// narrower than minContrast counts as degenerate.
func (s *Sensor) Validate(minContrast uint16) error {
	if s.preset {
		return nil
	}
	if s.samples == 0 {
		return ErrNotCalibrated
	}
	if s.max <= s.min || s.max-s.min < minContrast {
		return ErrDegenerate
	}
	return nil
}
