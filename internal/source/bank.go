// SPDX-License-Identifier: MIT
package source

import (
	"fmt"
	"time"
)

// Bank holds one source per ID and tracks which one is active.
type Bank struct {
	sources [numIDs]Source
	active  ID
}

// NewBank returns a bank with initial selected and its phase reset at now.
func NewBank(hall, analog, sine, ekg Source, initial ID, now time.Duration) (*Bank, error) {
	b := &Bank{sources: [numIDs]Source{hall, analog, sine, ekg}}
	for id, s := range b.sources {
		if s == nil {
			return nil, fmt.Errorf("source bank: no source for %s", ID(id))
		}
	}
	if err := b.Select(initial, now); err != nil {
		return nil, err
	}
	return b, nil
}

// Select makes id the active source and resets its phase.
func (b *Bank) Select(id ID, now time.Duration) error {
	if id < 0 || id >= numIDs {
		return fmt.Errorf("source bank: invalid id %d", int(id))
	}
	b.active = id
	b.sources[id].Reset(now)
	return nil
}

// Cycle selects the source after the active one. Past the last source it
// wraps to Analog; Hall is only ever the starting source.
func (b *Bank) Cycle(now time.Duration) ID {
	next := b.active + 1
	if next >= numIDs {
		next = Analog
	}
	b.Select(next, now)
	return next
}

func (b *Bank) ActiveID() ID { return b.active }

func (b *Bank) Active() Source { return b.sources[b.active] }

// Next reads one sample from the active source.
func (b *Bank) Next(now time.Duration) float64 {
	return b.sources[b.active].Next(now)
}
