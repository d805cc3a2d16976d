// SPDX-License-Identifier: MIT
package display

import (
	"sync/atomic"

	"spectrum/internal/log"
	"spectrum/internal/transport"
)

var logger = log.For("Display")

// Event types sent by TransportSink.
const (
	EventResetTime      = "reset_time"
	EventTime           = "time"
	EventRescaleTime    = "rescale_time"
	EventResetFrequency = "reset_frequency"
	EventFrequency      = "frequency"
	EventStatus         = "status"
)

// Event is the JSON form of a sink call. Consecutive plot points are
// batched: Values holds the points starting at Index.
type Event struct {
	Type   string    `json:"type"`
	Index  int       `json:"index,omitempty"`
	Values []float64 `json:"values,omitempty"`
	YMin   float64   `json:"y_min,omitempty"`
	YMax   float64   `json:"y_max,omitempty"`
	YInc   float64   `json:"y_inc,omitempty"`
	Field  string    `json:"field,omitempty"`
	Text   string    `json:"text,omitempty"`
}

// DefaultBatch is the number of plot points per event.
const DefaultBatch = 64

// TransportSink turns sink calls into Events on a transport. Send errors are
// logged and counted; they never reach the acquisition loop.
type TransportSink struct {
	t      transport.Transport
	batch  int
	points Event
	failed atomic.Uint64
}

func NewTransportSink(t transport.Transport, batch int) *TransportSink {
	if batch <= 0 {
		batch = DefaultBatch
	}
	return &TransportSink{t: t, batch: batch}
}

func (s *TransportSink) ResetTimeView() {
	s.send(Event{Type: EventResetTime})
}

func (s *TransportSink) PlotTimePoint(index int, value float64) {
	s.plot(EventTime, index, value)
}

func (s *TransportSink) RescaleTimeAxis(yMin, yMax, yInc float64) {
	s.send(Event{Type: EventRescaleTime, YMin: yMin, YMax: yMax, YInc: yInc})
}

func (s *TransportSink) ResetFrequencyView() {
	s.send(Event{Type: EventResetFrequency})
}

func (s *TransportSink) PlotFrequencyPoint(index int, magnitude float64) {
	s.plot(EventFrequency, index, magnitude)
}

func (s *TransportSink) SetStatusText(field StatusField, text string) {
	s.send(Event{Type: EventStatus, Field: field.String(), Text: text})
}

// Flush sends any batched points.
func (s *TransportSink) Flush() {
	if len(s.points.Values) == 0 {
		return
	}
	ev := s.points
	s.points = Event{}
	s.emit(ev)
}

// Failed returns the number of events the transport refused.
func (s *TransportSink) Failed() uint64 { return s.failed.Load() }

func (s *TransportSink) plot(typ string, index int, v float64) {
	p := &s.points
	contiguous := p.Type == typ && index == p.Index+len(p.Values)
	if len(p.Values) > 0 && !contiguous {
		s.Flush()
	}
	if len(p.Values) == 0 {
		p.Type = typ
		p.Index = index
		p.Values = make([]float64, 0, s.batch)
	}
	p.Values = append(p.Values, v)
	if len(p.Values) == s.batch {
		s.Flush()
	}
}

func (s *TransportSink) send(ev Event) {
	s.Flush()
	s.emit(ev)
}

func (s *TransportSink) emit(ev Event) {
	if err := s.t.Send(ev); err != nil {
		if s.failed.Add(1) == 1 {
			logger.Warnf("transport send failed: %v", err)
		}
	}
}

var _ Sink = (*TransportSink)(nil)
