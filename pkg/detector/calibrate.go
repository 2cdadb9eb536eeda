package detector

import (
	"github.com/itohio/trainspeed/pkg/display"
	"github.com/itohio/trainspeed/pkg/hal"
	"github.com/itohio/trainspeed/pkg/sensor"
)

// DefaultCalibrationIntervalMs bounds the calibration polling rate.
const DefaultCalibrationIntervalMs = 10

// Calibrate samples both sensors until stop is pressed. Each iteration draws
// the raw level of the left sensor in the first column and of the right
// sensor in the last one, widens both calibration ranges and sleeps
// intervalMs. It returns the number of iterations.
//
// A sensor that never saw a dark sample keeps a degenerate range; use
// Pair.Validate to detect it.
func Calibrate(pair *sensor.Pair, stop hal.Button, disp display.Display, clock hal.Clock, intervalMs uint32) int {
	n := 0
	for !stop.WasPressed() {
		display.DrawBar(disp, 0, pair.Left().Level())
		display.DrawBar(disp, display.Width-1, pair.Right().Level())
		pair.Calibrate()
		clock.Sleep(intervalMs)
		n++
	}
	disp.Clear()
	return n
}
