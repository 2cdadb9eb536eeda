//go:build tinygo

package main

import (
	"image/color"
	"machine"
	"sync/atomic"
	"time"

	"tinygo.org/x/drivers/microbitmatrix"

	"github.com/itohio/trainspeed/pkg/display"
)

// adcChannel reads a pin through the 10 bit range the detector expects.
type adcChannel struct {
	adc machine.ADC
}

func newADC(pin machine.Pin) *adcChannel {
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	return &adcChannel{adc: adc}
}

func (c *adcChannel) Read() uint16 {
	return c.adc.Get() >> ADC_SHIFT
}

// button latches falling edges from an interrupt until WasPressed is called.
type button struct {
	pressed atomic.Bool
}

func newButton(pin machine.Pin) *button {
	b := &button{}
	pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	err := pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		b.pressed.Store(true)
	})
	if err != nil {
		println("button interrupt:", err.Error())
	}
	return b
}

func (b *button) WasPressed() bool {
	return b.pressed.Swap(false)
}

// matrixPanel drives the on-board LED matrix. The driver multiplexes rows,
// so it has to be refreshed continuously from a goroutine.
type matrixPanel struct {
	dev microbitmatrix.Device
}

var _ display.Panel = (*matrixPanel)(nil)

func newMatrixPanel() *matrixPanel {
	p := &matrixPanel{dev: microbitmatrix.New()}
	p.dev.Configure(microbitmatrix.Config{})
	p.dev.ClearDisplay()

	go func() {
		for {
			p.dev.Display()
			time.Sleep(MATRIX_REFRESH_MS * time.Millisecond)
		}
	}()
	return p
}

func (p *matrixPanel) SetPixel(x, y int, brightness uint8) {
	level := uint8(uint16(brightness) * 255 / display.MaxBrightness)
	p.dev.SetPixel(int16(x), int16(y), color.RGBA{R: level, G: level, B: level, A: 255})
}

// Flush is a no-op: the refresh goroutine picks up the buffer.
func (p *matrixPanel) Flush() {}
