package link

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/itohio/trainspeed/pkg/config"
	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/display"
	"github.com/itohio/trainspeed/pkg/hal"
)

// minPacingSleep avoids sleeping for slivers of time between steps.
const minPacingSleep = 5 * time.Millisecond

// Mock runs a simulated detector and streams its readings, so the host
// tools can be used without a board.
type Mock struct {
	cfg *config.Config

	readings  chan detector.Reading
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	connected bool
}

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.Config) *Mock {
	if cfg == nil {
		cfg = config.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:       cfg,
		readings:  make(chan detector.Reading, DefaultBufferSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Connect starts the simulation.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true

	clock := hal.NewVirtualClock(0)
	rec := display.NewRecorder(clock)
	sim := NewSimulation(m.cfg, clock, rec)
	sim.Detector().OnReading(func(r detector.Reading) {
		m.publish(r)
		rec.Reset()
	})

	m.wg.Add(1)
	go m.simulate(sim)

	return nil
}

// Close stops the simulation and closes the readings channel.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.wg.Wait()
	m.connected = false
	close(m.readings)

	return nil
}

// Readings returns the channel of simulated readings.
func (m *Mock) Readings() <-chan detector.Reading {
	return m.readings
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

func (m *Mock) publish(r detector.Reading) {
	select {
	case m.readings <- r:
	case <-m.ctx.Done():
	default:
		// Channel full, skip
	}
}

// simulate steps the simulation, keeping virtual time at TimeScale times
// wall time. A zero TimeScale runs as fast as possible.
func (m *Mock) simulate(sim *Simulation) {
	defer m.wg.Done()

	sim.Calibrate()
	sim.Start()

	start := time.Now()
	origin := sim.Clock().Now()
	scale := m.cfg.Mock.TimeScale

	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		sim.Step()

		if scale <= 0 {
			continue
		}
		virtual := time.Duration(sim.Clock().Now()-origin) * time.Millisecond
		ahead := time.Duration(float64(virtual)/scale) - time.Since(start)
		if ahead < minPacingSleep {
			continue
		}
		select {
		case <-m.ctx.Done():
			return
		case <-time.After(ahead):
		}
	}
}

func millis(d time.Duration) uint32 {
	return uint32(d / time.Millisecond)
}
