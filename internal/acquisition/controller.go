// SPDX-License-Identifier: MIT
package acquisition

import (
	"time"

	"spectrum/internal/input"
	"spectrum/internal/source"
)

// Controller applies button events to the acquisition state.
type Controller struct {
	state   *State
	bank    *source.Bank
	buttons input.Buttons
}

func NewController(state *State, bank *source.Bank, buttons input.Buttons) *Controller {
	c := &Controller{state: state, bank: bank, buttons: buttons}
	c.state.Source = bank.ActiveID()
	c.state.SampleRate = RateFor(bank.Active())
	return c
}

// Service consumes pending button edges. It reports whether the state
// changed.
func (c *Controller) Service(now time.Duration) bool {
	changed := false
	if _, ok := c.buttons.Acquisition.Take(); ok {
		c.ToggleAcquisition()
		changed = true
	}
	if _, ok := c.buttons.Source.Take(); ok {
		c.CycleSource(now)
		changed = true
	}
	return changed
}

// ToggleAcquisition starts or stops sampling.
func (c *Controller) ToggleAcquisition() {
	c.state.Acquiring = !c.state.Acquiring
	if c.state.Acquiring {
		logger.Infof("started (%s at %d Hz)", c.state.Source, c.state.SampleRate)
	} else {
		logger.Infof("stopped")
	}
}

// CycleSource selects the next source and its sample rate. Samples already
// in the buffer are kept.
func (c *Controller) CycleSource(now time.Duration) {
	id := c.bank.Cycle(now)
	c.state.Source = id
	c.state.SampleRate = RateFor(c.bank.Active())
	logger.Infof("source changed to %s at %d Hz", id, c.state.SampleRate)
}
