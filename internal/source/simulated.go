// SPDX-License-Identifier: MIT
package source

import (
	"math"

	"spectrum/internal/clock"
)

// SimulatedAnalog stands in for the ADC on hosts without one: a tone of
// freq Hz with a weaker third harmonic, biased to mid-scale.
func SimulatedAnalog(clk clock.Clock, freq float64) RawReader {
	return RawReaderFunc(func() int {
		t := clk.Now().Seconds()
		v := 0.6*math.Sin(2*math.Pi*freq*t) + 0.15*math.Sin(2*math.Pi*3*freq*t)
		return int(math.Round(AnalogRawMax/2 + v*AnalogRawMax/2))
	})
}

// SimulatedMagnetic stands in for the magnetic sensor: a slow field swing
// with mains pickup on top.
func SimulatedMagnetic(clk clock.Clock) RawReader {
	return RawReaderFunc(func() int {
		t := clk.Now().Seconds()
		v := 250 + 150*math.Sin(2*math.Pi*0.5*t) + 25*math.Sin(2*math.Pi*50*t)
		return int(math.Round(v))
	})
}
