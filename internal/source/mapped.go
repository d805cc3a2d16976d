// SPDX-License-Identifier: MIT
package source

import "time"

// Raw input ranges and the voltage span they are reported in.
const (
	AnalogRawMax   = 4095
	MagneticRawMax = 500
	FullScaleVolts = 3.3
)

// Mapped converts raw integer readings to volts with a linear map.
type Mapped struct {
	name   string
	reader RawReader
	rawMin int
	rawMax int
	outMin float64
	outMax float64
}

// NewAnalog maps a 12-bit ADC reading (0..4095) to 0..3.3 V.
func NewAnalog(r RawReader) *Mapped {
	return &Mapped{name: Analog.String(), reader: r, rawMax: AnalogRawMax, outMax: FullScaleVolts}
}

// NewMagnetic maps a magnetic sensor reading (0..500) to 0..3.3.
func NewMagnetic(r RawReader) *Mapped {
	return &Mapped{name: Hall.String(), reader: r, rawMax: MagneticRawMax, outMax: FullScaleVolts}
}

func (m *Mapped) Name() string { return m.name }

func (m *Mapped) Next(time.Duration) float64 {
	return MapRange(m.reader.ReadRaw(), m.rawMin, m.rawMax, m.outMin, m.outMax)
}

// Reset is a no-op; live inputs have no phase.
func (m *Mapped) Reset(time.Duration) {}

func (m *Mapped) IntrinsicRate() (int, bool) { return 0, false }

// MapRange maps x from [inMin, inMax] onto [outMin, outMax]. Values outside
// the input range are clamped to it first.
func MapRange(x, inMin, inMax int, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	x = max(inMin, min(x, inMax))
	return outMin + float64(x-inMin)*(outMax-outMin)/float64(inMax-inMin)
}
