// SPDX-License-Identifier: MIT

// Package acquisition runs the analyzer: a single polling loop that services
// the buttons, refreshes the status bar and, while acquiring, pulls samples
// into the buffer and hands each completed buffer to the transform.
package acquisition

import (
	"time"

	"spectrum/internal/log"
	"spectrum/internal/source"
)

var logger = log.For("Acquisition")

const (
	// DefaultSampleRate applies to every source without an intrinsic rate.
	DefaultSampleRate = 1000
	// StatusRefresh is how often the status bar is recomputed.
	StatusRefresh = 50 * time.Millisecond
	// WelcomeDelay is the pause before the loop starts.
	WelcomeDelay = time.Second
)

// State is the acquisition configuration. Only the controller changes it.
type State struct {
	Acquiring  bool
	SampleRate int // Hz
	Source     source.ID
	SingleShot bool
}

// SamplePeriod is the time between samples, truncated to whole microseconds.
func (s State) SamplePeriod() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(1_000_000/s.SampleRate) * time.Microsecond
}

// RateFor returns the sample rate to use while src is active.
func RateFor(src source.Source) int {
	if hz, ok := src.IntrinsicRate(); ok && hz > 0 {
		return hz
	}
	return DefaultSampleRate
}
