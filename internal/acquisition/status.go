// SPDX-License-Identifier: MIT
package acquisition

import (
	"fmt"
	"time"

	"spectrum/internal/display"
)

// StatusBar keeps the three toolbar fields current, redrawing only the
// fields whose text changed.
type StatusBar struct {
	sink        display.Sink
	shown       [display.NumStatusFields]string
	lastRefresh time.Duration
	refreshed   bool
}

func NewStatusBar(sink display.Sink) *StatusBar {
	return &StatusBar{sink: sink}
}

// Refresh recomputes the fields if StatusRefresh has passed since the last
// refresh.
func (b *StatusBar) Refresh(now time.Duration, state State) {
	if b.refreshed && now-b.lastRefresh < StatusRefresh {
		return
	}
	b.refreshed = true
	b.lastRefresh = now

	acq := "Stopped"
	if state.Acquiring {
		acq = "Acquiring"
	}
	b.set(display.Rate, fmt.Sprintf("%d Hz", state.SampleRate))
	b.set(display.AcquisitionState, acq)
	b.set(display.SourceName, state.Source.String())
}

func (b *StatusBar) set(f display.StatusField, text string) {
	if b.shown[f] == text {
		return
	}
	b.shown[f] = text
	b.sink.SetStatusText(f, text)
}

// Text returns what the field currently shows.
func (b *StatusBar) Text(f display.StatusField) string { return b.shown[f] }
