// SPDX-License-Identifier: MIT

// Package buffer holds the fixed-capacity sample store that one acquisition
// cycle fills and one spectral transform consumes.
//
// The buffer alternates between two phases. While Filling, the scheduler
// appends samples in arrival order. The append that stores the last sample
// switches the buffer to Full and hands out a *Cycle. Whoever holds the
// Cycle owns both arrays until it calls Release, which zeroes them and
// starts the next cycle. Appending while Full is an overrun.
package buffer

import (
	"errors"
	"fmt"
	"math"

	"spectrum/pkg/bitint"
)

// Size is the number of samples per cycle.
const Size = 2048

// Status reports what an Append did.
type Status int

const (
	Filling Status = iota
	Full
)

func (s Status) String() string {
	switch s {
	case Filling:
		return "Filling"
	case Full:
		return "Full"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

var (
	// ErrOverrun is returned by Append while a completed cycle has not been
	// released. The firmware treats it as fatal.
	ErrOverrun = errors.New("buffer: append while full")
	// ErrReleased is returned when a Cycle is released twice or after a
	// newer cycle has started.
	ErrReleased = errors.New("buffer: cycle already released")
)

// SampleBuffer stores one cycle of real samples plus a paired work array of
// the same length used by the transform as its imaginary part. It is not
// safe for concurrent use; the acquisition loop owns it.
type SampleBuffer struct {
	real       []float64
	imag       []float64
	cursor     int
	status     Status
	generation uint64
}

// New returns an empty buffer of the given capacity, which must be a power of
// two so the transform can run over it unchanged.
func New(capacity int) (*SampleBuffer, error) {
	if !bitint.IsPowerOfTwo(capacity) {
		return nil, fmt.Errorf("buffer: capacity %d is not a power of two (next is %d)", capacity, bitint.NextPowerOfTwo(capacity))
	}
	return &SampleBuffer{
		real: make([]float64, capacity),
		imag: make([]float64, capacity),
	}, nil
}

// Cap returns the capacity N.
func (b *SampleBuffer) Cap() int { return len(b.real) }

// Cursor returns the index the next Append will write.
func (b *SampleBuffer) Cursor() int { return b.cursor }

// At returns the sample stored at index i.
func (b *SampleBuffer) At(i int) float64 { return b.real[i] }

// Status returns the current phase.
func (b *SampleBuffer) Status() Status { return b.status }

// Append stores v at the cursor and clears the paired work entry. The append
// that fills the last slot returns Full together with the Cycle that owns
// the data; all other successful appends return Filling and a nil Cycle.
func (b *SampleBuffer) Append(v float64) (Status, *Cycle, error) {
	if b.status == Full {
		return Full, nil, ErrOverrun
	}

	b.real[b.cursor] = v
	b.imag[b.cursor] = 0
	b.cursor++

	if b.cursor < len(b.real) {
		return Filling, nil, nil
	}

	b.status = Full
	return Full, &Cycle{buf: b, generation: b.generation}, nil
}

// Axis is a vertical plotting range for the time trace.
type Axis struct {
	Min, Max, Step float64
}

// DefaultAxis is used when the samples carry no range at all.
var DefaultAxis = Axis{Min: -4, Max: 4, Step: 1}

// ScaleForDisplay derives a symmetric axis that covers every stored sample,
// rounded outward to whole units with roughly ten grid steps. A buffer whose
// samples are all equal yields DefaultAxis.
func (b *SampleBuffer) ScaleForDisplay() Axis {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range b.real {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return DefaultAxis
	}

	m := math.Max(math.Abs(lo), math.Abs(hi))
	a := Axis{Min: math.Floor(-m), Max: math.Ceil(m)}
	a.Step = math.Ceil((a.Max - a.Min) / 10)
	return a
}

// Cycle is the ownership token for a completed buffer.
type Cycle struct {
	buf        *SampleBuffer
	generation uint64
}

// Real returns the sample array. The transform writes magnitudes into it.
func (c *Cycle) Real() []float64 { return c.buf.real }

// Imag returns the work array, all zero when the cycle completes.
func (c *Cycle) Imag() []float64 { return c.buf.imag }

// Release zeroes both arrays and returns the buffer to Filling at index 0.
func (c *Cycle) Release() error {
	b := c.buf
	if b.status != Full || b.generation != c.generation {
		return ErrReleased
	}

	clear(b.real)
	clear(b.imag)
	b.cursor = 0
	b.status = Filling
	b.generation++
	return nil
}
