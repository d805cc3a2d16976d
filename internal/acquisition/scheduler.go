// SPDX-License-Identifier: MIT
package acquisition

import (
	"fmt"
	"time"

	"spectrum/internal/analysis"
	"spectrum/internal/buffer"
	"spectrum/internal/display"
	"spectrum/internal/source"
)

// CycleObserver sees the raw samples of every completed cycle before they
// are transformed. Observers must not keep the slice.
type CycleObserver interface {
	ObserveCycle(samples []float64, sampleRate int) error
}

// Scheduler fills the buffer at the configured rate and processes each
// completed cycle. It never sleeps: Poll takes at most one sample and
// returns, and lateness shows up as jitter in the measured rate.
type Scheduler struct {
	state     *State
	bank      *source.Bank
	buf       *buffer.SampleBuffer
	tr        *analysis.Transformer
	sink      display.Sink
	observers []CycleObserver

	lastAcquisition time.Duration
	intervals       []time.Duration
	viewReset       bool
	cycles          uint64
	last            analysis.Diagnostics
}

func NewScheduler(state *State, bank *source.Bank, sink display.Sink) (*Scheduler, error) {
	buf, err := buffer.New(buffer.Size)
	if err != nil {
		return nil, err
	}
	tr, err := analysis.NewTransformer(buf.Cap())
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		state:     state,
		bank:      bank,
		buf:       buf,
		tr:        tr,
		sink:      sink,
		intervals: make([]time.Duration, buf.Cap()),
	}, nil
}

// AddObserver registers o for every completed cycle.
func (s *Scheduler) AddObserver(o CycleObserver) {
	s.observers = append(s.observers, o)
}

// Poll runs one scheduling step at time now. The only error is
// buffer.ErrOverrun, which the caller must treat as fatal.
func (s *Scheduler) Poll(now time.Duration) error {
	if !s.state.Acquiring {
		return nil
	}

	period := s.state.SamplePeriod()
	if s.buf.Cursor() == 0 && !s.viewReset {
		s.sink.ResetTimeView()
		s.viewReset = true
	}
	if now-s.lastAcquisition < period {
		return nil
	}

	index := s.buf.Cursor()
	if index > 0 {
		s.intervals[index] = now - s.lastAcquisition
	} else {
		s.intervals[0] = 0
	}
	s.lastAcquisition = now

	v := s.bank.Next(now)
	status, cycle, err := s.buf.Append(v)
	if err != nil {
		return fmt.Errorf("sample %d: %w", index, err)
	}
	s.sink.PlotTimePoint(index, v)

	if status == buffer.Full {
		return s.complete(cycle)
	}
	return nil
}

// complete processes a full buffer: rescale the trace, run the transform,
// draw the spectrum, report diagnostics and release the buffer.
func (s *Scheduler) complete(cycle *buffer.Cycle) error {
	axis := s.buf.ScaleForDisplay()
	s.sink.RescaleTimeAxis(axis.Min, axis.Max, axis.Step)

	for _, o := range s.observers {
		if err := o.ObserveCycle(cycle.Real(), s.state.SampleRate); err != nil {
			logger.Warnf("cycle observer: %v", err)
		}
	}

	spectrum, err := s.tr.Transform(cycle.Real(), cycle.Imag())
	if err != nil {
		return err
	}

	s.sink.ResetFrequencyView()
	for i, m := range spectrum.Magnitudes {
		s.sink.PlotFrequencyPoint(i, m)
	}

	s.last = s.tr.Diagnose(s.intervals, spectrum, float64(s.state.SampleRate))
	s.last.Report()

	if err := cycle.Release(); err != nil {
		return err
	}
	s.viewReset = false
	s.cycles++

	if s.state.SingleShot {
		s.state.Acquiring = false
		logger.Infof("single shot complete, acquisition stopped")
	}
	return nil
}

// Cursor returns the buffer index the next sample is written to.
func (s *Scheduler) Cursor() int { return s.buf.Cursor() }

// Cycles returns the number of completed cycles.
func (s *Scheduler) Cycles() uint64 { return s.cycles }

// LastDiagnostics returns the figures of the most recent cycle.
func (s *Scheduler) LastDiagnostics() analysis.Diagnostics { return s.last }

// Sample returns the value stored at index i of the cycle in progress.
func (s *Scheduler) Sample(i int) float64 { return s.buf.At(i) }
