package sensor

import (
	"errors"
	"fmt"
)

// Direction is the travel direction derived from which sensor latched first.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionRight             // Left sensor first: moving left to right
	DirectionLeft              // Right sensor first: moving right to left
)

func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Pair is the ordered left (0) and right (1) sensor pair. A measurement is
// complete once both sensors are latched.
type Pair struct {
	sensors [2]*Sensor
}

// NewPair creates a pair from the left and right sensors.
func NewPair(left, right *Sensor) *Pair {
	return &Pair{sensors: [2]*Sensor{left, right}}
}

// Sensor returns sensor i (0 = left, 1 = right).
func (p *Pair) Sensor(i int) *Sensor { return p.sensors[i] }

// Left returns sensor 0.
func (p *Pair) Left() *Sensor { return p.sensors[0] }

// Right returns sensor 1.
func (p *Pair) Right() *Sensor { return p.sensors[1] }

// Both reports whether both sensors are latched.
func (p *Pair) Both() bool {
	return p.sensors[0].Latched() && p.sensors[1].Latched()
}

// Any reports whether at least one sensor is latched.
func (p *Pair) Any() bool {
	return p.sensors[0].Latched() || p.sensors[1].Latched()
}

// AnyDark reads both channels without latching.
func (p *Pair) AnyDark() bool {
	// Both channels are read on every call.
	left := p.sensors[0].IsDark()
	right := p.sensors[1].IsDark()
	return left || right
}

// Elapsed returns |t1 - t0| in milliseconds.
func (p *Pair) Elapsed() uint32 {
	t0, t1 := p.sensors[0].DarkTime(), p.sensors[1].DarkTime()
	if t1 >= t0 {
		return t1 - t0
	}
	return t0 - t1
}

// First returns the travel direction implied by the latch order.
func (p *Pair) First() Direction {
	left, right := p.sensors[0], p.sensors[1]
	switch {
	case left.Latched() && right.Latched():
		if left.DarkTime() <= right.DarkTime() {
			return DirectionRight
		}
		return DirectionLeft
	case left.Latched():
		return DirectionRight
	case right.Latched():
		return DirectionLeft
	default:
		return DirectionUnknown
	}
}

// Calibrate samples both sensors once.
func (p *Pair) Calibrate() {
	p.sensors[0].Calibrate()
	p.sensors[1].Calibrate()
}

// Restart clears both latches.
func (p *Pair) Restart() {
	p.sensors[0].Restart()
	p.sensors[1].Restart()
}

// Validate checks both sensors and joins their errors.
func (p *Pair) Validate(minContrast uint16) error {
	var errs []error
	for i, s := range p.sensors {
		if err := s.Validate(minContrast); err != nil {
			errs = append(errs, fmt.Errorf("sensor %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
