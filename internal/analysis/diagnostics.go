// SPDX-License-Identifier: MIT
package analysis

import (
	"time"

	"spectrum/internal/log"
)

var logger = log.For("Analysis")

// Diagnostics summarizes one completed cycle.
type Diagnostics struct {
	AverageRate   float64 // Measured sample rate in Hz, 0 when unknown.
	MaxMagnitude  float64
	PeakFrequency float64
}

// AverageSampleRate turns the inter-sample intervals of a cycle into a rate.
// intervals[i] is the time between the starts of samples i-1 and i, so
// intervals[0] has no predecessor and is ignored.
func AverageSampleRate(intervals []time.Duration) float64 {
	if len(intervals) < 2 {
		return 0
	}
	var total time.Duration
	for _, d := range intervals[1:] {
		total += d
	}
	if total <= 0 {
		return 0
	}
	mean := total.Seconds() / float64(len(intervals)-1)
	return 1 / mean
}

// Diagnose collects the per-cycle figures reported on the diagnostic log.
func (t *Transformer) Diagnose(intervals []time.Duration, s Spectrum, sampleRate float64) Diagnostics {
	d := Diagnostics{
		AverageRate:  AverageSampleRate(intervals),
		MaxMagnitude: s.Max,
	}
	if !s.Degenerate {
		d.PeakFrequency = t.FrequencyForBin(s.PeakBin, sampleRate)
	}
	return d
}

// Report writes d to the diagnostic log.
func (d Diagnostics) Report() {
	logger.Infof("Average Sample Rate: %.2f Hz", d.AverageRate)
	logger.Infof("Maximum Magnitude: %.4f", d.MaxMagnitude)
	logger.Infof("Peak Frequency: %.2f Hz", d.PeakFrequency)
}
