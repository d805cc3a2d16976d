// SPDX-License-Identifier: MIT

// Package input turns raw button edges into debounced, single-shot events.
//
// Edges arrive in a producer context (a GPIO watcher goroutine, a pin
// interrupt, a terminal key handler) and are consumed by the acquisition
// loop. A Button is a single-producer, single-consumer slot: the producer
// owns the debounce timestamp, and the only state both sides touch is the
// pending flag and the edge time, both atomic.
package input

import (
	"sync/atomic"
	"time"

	"spectrum/internal/clock"
)

// DebouncePeriod is the refractory time after an accepted edge during which
// further edges on the same button are dropped.
const DebouncePeriod = 250 * time.Millisecond

// State of a button as seen by the consumer.
type State int

const (
	Idle  State = iota // no edge waiting
	Armed              // an accepted edge waits for Take
)

func (s State) String() string {
	if s == Armed {
		return "Armed"
	}
	return "Idle"
}

type Button struct {
	name string

	// Producer side only.
	last     time.Duration
	accepted bool

	pending atomic.Bool
	at      atomic.Int64
}

func NewButton(name string) *Button {
	return &Button{name: name}
}

func (b *Button) Name() string { return b.name }

// Edge reports a raw edge seen at time at. It returns false when the edge
// falls inside the refractory period of the previous accepted edge. The
// first edge is always accepted. Edge must only be called from one producer.
func (b *Button) Edge(at time.Duration) bool {
	if b.accepted && at-b.last < DebouncePeriod {
		return false
	}
	b.accepted = true
	b.last = at

	b.at.Store(int64(at))
	b.pending.Store(true)
	return true
}

// Press is Edge at the clock's current time.
func (b *Button) Press(clk clock.Clock) bool {
	return b.Edge(clk.Now())
}

// Take consumes a pending edge and returns its time. Accepted edges that
// arrive before the previous one is taken collapse into one.
func (b *Button) Take() (time.Duration, bool) {
	if !b.pending.CompareAndSwap(true, false) {
		return 0, false
	}
	return time.Duration(b.at.Load()), true
}

func (b *Button) State() State {
	if b.pending.Load() {
		return Armed
	}
	return Idle
}

// Buttons are the two front-panel inputs.
type Buttons struct {
	Acquisition *Button // toggles sampling on and off
	Source      *Button // cycles the active source
}

func NewButtons() Buttons {
	return Buttons{
		Acquisition: NewButton("acquisition"),
		Source:      NewButton("source"),
	}
}
