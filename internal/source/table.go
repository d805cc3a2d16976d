// SPDX-License-Identifier: MIT
package source

import (
	"fmt"
	"time"
)

// TableLength is the number of entries in every waveform table.
const TableLength = 10000

// Intrinsic rates of the two canned waveforms.
const (
	SineRate = 1000
	EKGRate  = 200
)

// Table replays a fixed waveform at its own rate, independent of how often
// it is polled. Between steps the last value read is returned again.
type Table struct {
	name        string
	values      []float64
	rate        int
	period      time.Duration
	scale       float64
	index       int
	last        float64
	lastAdvance time.Duration
	started     bool
}

// NewTable returns a table source stepping through values at rate Hz, each
// value multiplied by scale on the way out.
func NewTable(name string, values []float64, rate int, scale float64) (*Table, error) {
	if len(values) != TableLength {
		return nil, fmt.Errorf("table %s: %d values, want %d", name, len(values), TableLength)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("table %s: rate must be positive, got %d", name, rate)
	}
	return &Table{
		name:   name,
		values: values,
		rate:   rate,
		period: time.Second / time.Duration(rate),
		scale:  scale,
	}, nil
}

// NewSineTable returns the TST: SINE source over values.
func NewSineTable(values []float64) (*Table, error) {
	return NewTable(Sine.String(), values, SineRate, 1)
}

// NewEKGTable returns the TST: EKG source over values, scaled by ten.
func NewEKGTable(values []float64) (*Table, error) {
	return NewTable(EKG.String(), values, EKGRate, 10)
}

func (t *Table) Name() string { return t.name }

// Next steps to the next entry when strictly more than one period has passed
// since the previous step. The first call after Reset always steps.
func (t *Table) Next(now time.Duration) float64 {
	if t.started && now-t.lastAdvance <= t.period {
		return t.last
	}

	t.last = t.values[t.index] * t.scale
	t.lastAdvance = now
	t.started = true
	t.index++
	if t.index == len(t.values) {
		t.index = 0
		logger.Infof("Reached end of %s data", t.name)
	}
	return t.last
}

// Reset rewinds to the first entry.
func (t *Table) Reset(time.Duration) {
	t.index = 0
	t.started = false
}

func (t *Table) IntrinsicRate() (int, bool) { return t.rate, true }

// Index returns the entry the next step will read.
func (t *Table) Index() int { return t.index }
