package link

import (
	"log"

	"github.com/chewxy/math32"

	"github.com/itohio/trainspeed/pkg/config"
	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/display"
	"github.com/itohio/trainspeed/pkg/hal"
	"github.com/itohio/trainspeed/pkg/sensor"
)

const (
	calibrationLeadMs   = 200 // Delay before the calibration train
	calibrationSettleMs = 300 // Button press after the calibration train cleared
	firstPassMs         = 1000
)

// Simulation runs the detector against a simulated track on a virtual
// clock. Trains pass every Mock.Period, alternating direction.
type Simulation struct {
	cfg   *config.Config
	clock *hal.VirtualClock
	track *hal.Track
	pair  *sensor.Pair
	disp  display.Display
	det   *detector.Detector

	passes int
	limit  int
	next   uint32
}

// NewSimulation wires a detector to a simulated track. disp should block on
// clock while scrolling, like display.Recorder or display.Terminal.
func NewSimulation(cfg *config.Config, clock *hal.VirtualClock, disp display.Display) *Simulation {
	if cfg == nil {
		cfg = config.Default()
	}

	track := hal.NewTrack(clock, cfg.TrackConfig())
	newSensor := func(i int) *sensor.Sensor {
		ch := hal.NewAveraging(track.Channel(i), cfg.Sensors.Averaging)
		return sensor.New(ch, clock, cfg.Sensors.AnalogMax)
	}
	pair := sensor.NewPair(newSensor(0), newSensor(1))

	return &Simulation{
		cfg:   cfg,
		clock: clock,
		track: track,
		pair:  pair,
		disp:  disp,
		det:   detector.New(pair, cfg.SpeedModel(), disp, clock, cfg.DetectorConfig()),
	}
}

// Detector returns the simulated detector.
func (s *Simulation) Detector() *detector.Detector { return s.det }

// Pair returns the simulated sensor pair.
func (s *Simulation) Pair() *sensor.Pair { return s.pair }

// Clock returns the virtual clock driving the simulation.
func (s *Simulation) Clock() *hal.VirtualClock { return s.clock }

// Calibrate runs the calibration routine while one train passes and the
// operator presses the button afterwards. With a fixed threshold configured
// the routine is skipped and 0 is returned.
func (s *Simulation) Calibrate() int {
	if th := s.cfg.Sensors.FixedThreshold; th > 0 {
		s.pair.Left().Preset(th)
		s.pair.Right().Preset(th)
		return 0
	}

	pass := hal.Pass{
		StartMs:  s.clock.Now() + calibrationLeadMs,
		SpeedKMH: s.cfg.Mock.SpeedKMH,
	}
	s.track.Schedule(pass)
	stop := hal.PressAt(s.clock, pass.StartMs+s.track.Duration(pass)+calibrationSettleMs)

	n := detector.Calibrate(s.pair, stop, s.disp, s.clock, millis(s.cfg.Calibration.Interval))
	if err := s.pair.Validate(s.cfg.Sensors.MinContrast); err != nil {
		log.Printf("Calibration is degenerate: %v", err)
	}
	return n
}

// Start scrolls the banner and arms the detector. The first train is
// scheduled shortly after.
func (s *Simulation) Start() {
	s.det.Start()
	s.next = s.clock.Now() + firstPassMs
}

// Limit stops scheduling trains after n of them. Zero means no limit.
func (s *Simulation) Limit(n int) {
	s.limit = n
}

// Done reports whether the last train of a limited run had a full period to
// clear the sensors.
func (s *Simulation) Done() bool {
	return s.limit > 0 && s.passes >= s.limit && s.clock.Now() >= s.next
}

// Step schedules upcoming trains and runs one detector iteration.
func (s *Simulation) Step() detector.State {
	if (s.limit == 0 || s.passes < s.limit) && s.clock.Now()+millis(s.cfg.Mock.Period) >= s.next {
		s.track.Schedule(s.nextPass())
	}
	return s.det.Step()
}

// Passes returns the number of trains scheduled so far.
func (s *Simulation) Passes() int {
	return s.passes
}

func (s *Simulation) nextPass() hal.Pass {
	p := hal.Pass{
		StartMs:  s.next,
		SpeedKMH: float64(PassSpeed(float32(s.cfg.Mock.SpeedKMH), float32(s.cfg.Mock.Spread), s.passes)),
		Reverse:  s.passes%2 == 1,
	}
	s.passes++
	s.next += millis(s.cfg.Mock.Period)
	return p
}

// PassSpeed returns the speed of the i-th simulated train: mean varied by
// up to spread (relative) along a deterministic sequence.
func PassSpeed(mean, spread float32, i int) float32 {
	return mean * (1 + spread*math32.Sin(float32(i)*2.4))
}
