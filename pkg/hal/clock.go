package hal

import "time"

// SystemClock is a Clock backed by the runtime monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns milliseconds since the clock was created.
func (c *SystemClock) Now() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// Sleep blocks for ms milliseconds.
func (c *SystemClock) Sleep(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// VirtualClock is a deterministic Clock for simulations and tests. Time only
// moves when Sleep or Advance is called. It keeps microseconds internally so
// that simulated peripherals can charge a sub-millisecond cost per access.
//
// VirtualClock is not safe for concurrent use; it belongs to the single loop
// that drives it.
type VirtualClock struct {
	us uint64
}

// NewVirtualClock creates a clock starting at startMs.
func NewVirtualClock(startMs uint32) *VirtualClock {
	return &VirtualClock{us: uint64(startMs) * 1000}
}

// Now returns the current virtual time in milliseconds.
func (c *VirtualClock) Now() uint32 {
	return uint32(c.us / 1000)
}

// Sleep advances virtual time by ms milliseconds.
func (c *VirtualClock) Sleep(ms uint32) {
	c.us += uint64(ms) * 1000
}

// Advance moves virtual time forward by us microseconds.
func (c *VirtualClock) Advance(us uint32) {
	c.us += uint64(us)
}

// Micros returns the current virtual time in microseconds.
func (c *VirtualClock) Micros() uint64 {
	return c.us
}
