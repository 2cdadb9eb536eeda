// Package link receives speed readings from a detector running elsewhere:
// a board on a serial port or a simulated track.
package link

import "github.com/itohio/trainspeed/pkg/detector"

// Device defines the interface for reading sources (real or mocked).
type Device interface {
	Connect() error
	Close() error
	Readings() <-chan detector.Reading
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
