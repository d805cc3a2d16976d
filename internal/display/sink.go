// SPDX-License-Identifier: MIT

// Package display defines the presentation sink the acquisition loop draws
// through, and the sinks that render it: a fan-out, a JSON event stream for
// transports, and a pixel panel for TFT screens and host framebuffers.
package display

import "fmt"

// StatusField names one of the three toolbar cells.
type StatusField int

const (
	Rate StatusField = iota
	AcquisitionState
	SourceName

	NumStatusFields = 3
)

func (f StatusField) String() string {
	switch f {
	case Rate:
		return "rate"
	case AcquisitionState:
		return "acquisition"
	case SourceName:
		return "source"
	default:
		return fmt.Sprintf("StatusField(%d)", int(f))
	}
}

// Sink receives drawing commands from the acquisition loop. Calls come from
// the loop goroutine only and must return quickly; a sink that renders
// elsewhere copies what it needs.
type Sink interface {
	// ResetTimeView clears the time trace before a new cycle is drawn.
	ResetTimeView()
	PlotTimePoint(index int, value float64)
	// RescaleTimeAxis sets the vertical range of the time trace and redraws it.
	RescaleTimeAxis(yMin, yMax, yInc float64)
	// ResetFrequencyView clears the spectrum before new bins are drawn.
	ResetFrequencyView()
	PlotFrequencyPoint(index int, magnitude float64)
	SetStatusText(field StatusField, text string)
}

// Multi forwards every call to each sink in order.
type Multi []Sink

func (m Multi) ResetTimeView() {
	for _, s := range m {
		s.ResetTimeView()
	}
}

func (m Multi) PlotTimePoint(index int, value float64) {
	for _, s := range m {
		s.PlotTimePoint(index, value)
	}
}

func (m Multi) RescaleTimeAxis(yMin, yMax, yInc float64) {
	for _, s := range m {
		s.RescaleTimeAxis(yMin, yMax, yInc)
	}
}

func (m Multi) ResetFrequencyView() {
	for _, s := range m {
		s.ResetFrequencyView()
	}
}

func (m Multi) PlotFrequencyPoint(index int, magnitude float64) {
	for _, s := range m {
		s.PlotFrequencyPoint(index, magnitude)
	}
}

func (m Multi) SetStatusText(field StatusField, text string) {
	for _, s := range m {
		s.SetStatusText(field, text)
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) ResetTimeView()                    {}
func (Nop) PlotTimePoint(int, float64)        {}
func (Nop) RescaleTimeAxis(_, _, _ float64)   {}
func (Nop) ResetFrequencyView()               {}
func (Nop) PlotFrequencyPoint(int, float64)   {}
func (Nop) SetStatusText(StatusField, string) {}

var (
	_ Sink = Multi(nil)
	_ Sink = Nop{}
)
