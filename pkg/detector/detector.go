// Package detector runs the dual-sensor speed measurement loop.
//
// The loop is single threaded and cooperative: the clock's Sleep and the
// display's Scroll are the only places where it blocks. Sleeping is skipped
// while a measurement is in progress so the second trigger is seen as soon
// as possible.
package detector

import (
	"context"
	"log"
	"strconv"

	"github.com/itohio/trainspeed/pkg/display"
	"github.com/itohio/trainspeed/pkg/hal"
	"github.com/itohio/trainspeed/pkg/sensor"
	"github.com/itohio/trainspeed/pkg/speed"
)

// State of the detection loop.
type State int

const (
	Armed         State = iota // Waiting for the first sensor
	OneTriggered               // One sensor latched, timing in progress
	BothTriggered              // Both latched, resolving the reading
	Cooldown                   // Discarded reading, waiting for the train to clear
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case OneTriggered:
		return "one-triggered"
	case BothTriggered:
		return "both-triggered"
	case Cooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Config holds the loop timings.
type Config struct {
	IdleMs        uint32 // Sleep per iteration when nothing is latched
	ReadyPollMs   uint32 // Poll interval of WaitUntilReady
	CooldownMs    uint32 // Extra wait after a discarded reading
	ScrollDelayMs uint32 // Per-column delay of the speed message
	Banner        string // Scrolled once by Start; empty to skip
}

// DefaultConfig returns the stock micro:bit timings.
func DefaultConfig() Config {
	return Config{
		IdleMs:        10,
		ReadyPollMs:   50,
		CooldownMs:    1000,
		ScrollDelayMs: 90,
		Banner:        "FJR",
	}
}

// Detector owns the sensor pair and drives the display.
type Detector struct {
	pair    *sensor.Pair
	model   speed.Model
	display display.Display
	clock   hal.Clock
	cfg     Config

	state     State
	callbacks []func(Reading)
}

// New creates a detector. The pair should be calibrated before Start.
func New(pair *sensor.Pair, model speed.Model, disp display.Display, clock hal.Clock, cfg Config) *Detector {
	return &Detector{
		pair:    pair,
		model:   model,
		display: disp,
		clock:   clock,
		cfg:     cfg,
		state:   Armed,
	}
}

// OnReading registers a callback invoked for every resolved pass, valid or
// not. Callbacks run on the detector loop and delay the next measurement.
func (d *Detector) OnReading(cb func(Reading)) {
	d.callbacks = append(d.callbacks, cb)
}

// State returns the state after the last Step.
func (d *Detector) State() State {
	return d.state
}

// Start scrolls the banner, waits until both beams are clear and shows the
// ready symbol.
func (d *Detector) Start() {
	if d.cfg.Banner != "" {
		d.display.Scroll(d.cfg.Banner, d.cfg.ScrollDelayMs)
	}
	d.WaitUntilReady()
	d.display.Show(display.Ready)
	d.state = Armed
}

// WaitUntilReady shows the waiting symbol and blocks until neither sensor is
// dark. Sensors are polled every ReadyPollMs without latching.
func (d *Detector) WaitUntilReady() {
	d.display.Show(display.Waiting)
	for d.pair.AnyDark() {
		d.clock.Sleep(d.cfg.ReadyPollMs)
	}
}

// Step runs one loop iteration and returns the resulting state.
func (d *Detector) Step() State {
	left, right := d.pair.Left(), d.pair.Right()

	if !left.Latched() && left.Check() && !right.Latched() {
		d.display.Show(display.ArrowRight)
	}
	if !right.Latched() && right.Check() && !left.Latched() {
		d.display.Show(display.ArrowLeft)
	}

	switch {
	case d.pair.Both():
		d.state = BothTriggered
		d.resolve()
	case d.pair.Any():
		// Measurement in progress: no idle sleep.
		d.state = OneTriggered
		return d.state
	default:
		d.state = Armed
	}

	d.clock.Sleep(d.cfg.IdleMs)
	return d.state
}

// Run steps the loop until ctx is done. The firmware passes a context that
// is never cancelled.
func (d *Detector) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		d.Step()
	}
}

// resolve turns the latched pair into a reading, shows or discards it and
// re-arms.
func (d *Detector) resolve() {
	elapsed := d.pair.Elapsed()
	v := d.model.Truncate(elapsed)
	r := Reading{
		At:        d.clock.Now(),
		ElapsedMs: elapsed,
		KMH:       v,
		Direction: d.pair.First(),
		Valid:     d.model.Valid(v),
	}

	if r.Valid {
		d.display.Scroll(strconv.Itoa(v)+"km/h", d.cfg.ScrollDelayMs)
	} else {
		log.Printf("Discarding reading: %d km/h after %d ms", v, elapsed)
		d.state = Cooldown
		d.WaitUntilReady()
		d.clock.Sleep(d.cfg.CooldownMs)
	}

	d.pair.Restart()
	d.display.Show(display.Ready)
	d.state = Armed

	for _, cb := range d.callbacks {
		if cb != nil {
			cb(r)
		}
	}
}
