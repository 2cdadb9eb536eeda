//go:build tinygo

//go:generate tinygo flash -target=microbit-v2

package main

import (
	"context"
	"machine"

	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/display"
	"github.com/itohio/trainspeed/pkg/hal"
	"github.com/itohio/trainspeed/pkg/sensor"
	"github.com/itohio/trainspeed/pkg/speed"
)

func main() {
	machine.InitADC()
	machine.Serial.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	clock := hal.NewSystemClock()
	newSensor := func(pin machine.Pin) *sensor.Sensor {
		return sensor.New(hal.NewAveraging(newADC(pin), AVERAGING), clock, hal.AnalogMax)
	}
	pair := sensor.NewPair(newSensor(PIN_LEFT), newSensor(PIN_RIGHT))
	disp := display.NewMatrix(newMatrixPanel(), clock)

	if FIXED_THRESHOLD > 0 {
		pair.Left().Preset(FIXED_THRESHOLD)
		pair.Right().Preset(FIXED_THRESHOLD)
	} else {
		println("calibrating: pass a train over both sensors, then press A")
		detector.Calibrate(pair, newButton(PIN_BUTTON_STOP), disp, clock, detector.DefaultCalibrationIntervalMs)
		if err := pair.Validate(MIN_CONTRAST); err != nil {
			println("calibration:", err.Error())
		}
	}

	det := detector.New(pair, speed.New(SENSOR_DISTANCE_M, SCALE), disp, clock, detector.DefaultConfig())
	det.OnReading(report)
	det.Start()
	if err := det.Run(context.Background()); err != nil {
		println("detector stopped:", err.Error())
	}
}

// report prints one line per pass for the host monitor.
// Format: "at_ms,elapsed_ms,kmh,dir,valid\n"
// Example: "123456,770,26,R,1\n"
func report(r detector.Reading) {
	var buf [32]byte
	line := append(r.AppendLine(buf[:0]), '\n')
	machine.Serial.Write(line)
}
