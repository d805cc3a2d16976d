// SPDX-License-Identifier: MIT
//go:build tinygo && esp32

package board

import (
	"machine"

	"tinygo.org/x/drivers/ili9341"

	"spectrum/internal/clock"
	"spectrum/internal/input"
	"spectrum/internal/source"
)

// Wiring of the reference board.
const (
	SignalPin      = machine.GPIO34
	AcquisitionPin = machine.GPIO13
	SourcePin      = machine.GPIO12

	tftSCK = machine.GPIO18
	tftSDO = machine.GPIO23
	tftCS  = machine.GPIO15
	tftDC  = machine.GPIO2
	tftRST = machine.GPIO4
)

// ADC reads the signal pin. TinyGo scales readings to 16 bits; ReadRaw
// returns them at the 12-bit resolution of the converter.
type ADC struct {
	adc machine.ADC
}

func NewADC() *ADC {
	machine.InitADC()
	a := machine.ADC{Pin: SignalPin}
	a.Configure(machine.ADCConfig{})
	return &ADC{adc: a}
}

func (a *ADC) ReadRaw() int {
	return int(a.adc.Get() >> 4)
}

var _ source.RawReader = (*ADC)(nil)

// WatchButtons attaches falling-edge interrupts to both active-low buttons.
// The handlers run in interrupt context and only call Edge.
func WatchButtons(clk clock.Clock, buttons input.Buttons) error {
	for _, p := range []struct {
		pin    machine.Pin
		button *input.Button
	}{
		{AcquisitionPin, buttons.Acquisition},
		{SourcePin, buttons.Source},
	} {
		b := p.button
		p.pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		if err := p.pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
			b.Edge(clk.Now())
		}); err != nil {
			return err
		}
	}
	return nil
}

// NewDisplay brings up the TFT in landscape.
func NewDisplay() *ili9341.Device {
	machine.SPI2.Configure(machine.SPIConfig{
		SCK:       tftSCK,
		SDO:       tftSDO,
		Frequency: 40_000_000,
	})
	d := ili9341.NewSPI(machine.SPI2, tftDC, tftCS, tftRST)
	d.Configure(ili9341.Config{Rotation: ili9341.Rotation90})
	w, h := d.Size()
	logger.Infof("TFT Initialized. Width: %d. Height: %d.", w, h)
	return d
}
