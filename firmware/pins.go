//go:build tinygo

package main

import "machine"

const (
	// Layout
	SENSOR_DISTANCE_M = 0.067 // Gap between the two light sensors in metres
	SCALE             = 87    // H0

	// Sensors
	PIN_LEFT        = machine.P0
	PIN_RIGHT       = machine.P1
	ADC_SHIFT       = 6   // machine.ADC.Get is 16 bit, the detector works on 10 bit
	AVERAGING       = 1   // Reads averaged per sample, 1 disables averaging
	FIXED_THRESHOLD = 0   // Non-zero skips calibration, 400 suits bare phototransistors
	MIN_CONTRAST    = 100 // Narrower calibration ranges are reported

	// Calibration is finished by pressing button A
	PIN_BUTTON_STOP = machine.BUTTONA

	// LED matrix
	MATRIX_REFRESH_MS = 2 // Pause between two multiplexing passes

	// Serial output of the readings
	// Format: "at_ms,elapsed_ms,kmh,dir,valid\n", ~25 bytes per pass.
	UART_BAUD_RATE = 115200
)
