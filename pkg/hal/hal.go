// Package hal defines the peripherals the speed detector depends on. Real
// boards, the host simulator and tests all provide their own implementations.
package hal

// AnalogMax is the top of the 10-bit range returned by micro:bit analog pins.
const AnalogMax = 1023

// Analog is a polled analog input returning a value in [0, AnalogMax].
type Analog interface {
	Read() uint16
}

// Button is an edge-latched push button. WasPressed reports whether the
// button was pressed since the previous call and clears the latch.
type Button interface {
	WasPressed() bool
}

// Clock is a monotonic millisecond clock paired with a blocking sleep.
// Sleep is the only suspension point of the detector loop.
type Clock interface {
	Now() uint32
	Sleep(ms uint32)
}

// AnalogFunc adapts a plain function to the Analog interface.
type AnalogFunc func() uint16

// Read calls f.
func (f AnalogFunc) Read() uint16 { return f() }

// ButtonFunc adapts a plain function to the Button interface.
type ButtonFunc func() bool

// WasPressed calls f.
func (f ButtonFunc) WasPressed() bool { return f() }
