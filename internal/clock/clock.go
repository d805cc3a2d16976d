// SPDX-License-Identifier: MIT

// Package clock supplies the monotonic time base used by the acquisition
// loop, the sample sources and the button edge producers. Time is expressed
// as a time.Duration since the clock started, which maps directly onto the
// micros()/millis() counters of a microcontroller.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock reports elapsed time since the clock was started.
// Implementations must be safe for concurrent use; edge producers read the
// clock from their own goroutine (or interrupt context).
type Clock interface {
	Now() time.Duration
}

// System is a Clock backed by the runtime monotonic clock.
type System struct {
	start time.Time
}

// NewSystem returns a System clock starting at zero now.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// Now returns the time elapsed since NewSystem.
func (s *System) Now() time.Duration {
	return time.Since(s.start)
}

// Manual is a Clock that only moves when told to. It is used by tests and by
// deterministic simulations.
type Manual struct {
	now atomic.Int64
}

// NewManual returns a Manual clock set to at.
func NewManual(at time.Duration) *Manual {
	m := &Manual{}
	m.now.Store(int64(at))
	return m
}

func (m *Manual) Now() time.Duration { return time.Duration(m.now.Load()) }

// Set moves the clock to at.
func (m *Manual) Set(at time.Duration) { m.now.Store(int64(at)) }

// Advance moves the clock forward by d and returns the new time.
func (m *Manual) Advance(d time.Duration) time.Duration {
	return time.Duration(m.now.Add(int64(d)))
}

var (
	_ Clock = (*System)(nil)
	_ Clock = (*Manual)(nil)
)
