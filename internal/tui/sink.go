// SPDX-License-Identifier: MIT

// Package tui renders the analyzer in a terminal with Bubble Tea. The sink
// side is written by the acquisition loop; the model side reads snapshots of
// it on a timer, so neither waits on the other for long.
package tui

import (
	"bytes"
	"strings"
	"sync"

	"spectrum/internal/display"
)

// LogLines is the number of diagnostic lines kept for the footer.
const LogLines = 4

// Snapshot is a copy of everything the sink has been told.
type Snapshot struct {
	Time       []float64
	TimeCount  int // points plotted since the last time view reset
	Freq       []float64
	FreqCount  int
	YMin, YMax float64
	YInc       float64
	Status     [display.NumStatusFields]string
	Log        []string
}

// Sink is a display.Sink that keeps the latest frame in memory. It is also
// an io.Writer so the log can be shown under the graphs instead of being
// written over the screen.
type Sink struct {
	mu      sync.Mutex
	time    []float64
	freq    []float64
	nTime   int
	nFreq   int
	yMin    float64
	yMax    float64
	yInc    float64
	status  [display.NumStatusFields]string
	log     []string
	partial []byte
}

func NewSink(timePoints, freqPoints int) *Sink {
	return &Sink{
		time: make([]float64, max(timePoints, 1)),
		freq: make([]float64, max(freqPoints, 1)),
		yMin: -4,
		yMax: 4,
		yInc: 1,
	}
}

func (s *Sink) ResetTimeView() {
	s.mu.Lock()
	clear(s.time)
	s.nTime = 0
	s.mu.Unlock()
}

func (s *Sink) PlotTimePoint(index int, value float64) {
	s.mu.Lock()
	if index >= 0 && index < len(s.time) {
		s.time[index] = value
		s.nTime = max(s.nTime, index+1)
	}
	s.mu.Unlock()
}

func (s *Sink) RescaleTimeAxis(yMin, yMax, yInc float64) {
	s.mu.Lock()
	s.yMin, s.yMax, s.yInc = yMin, yMax, yInc
	s.mu.Unlock()
}

func (s *Sink) ResetFrequencyView() {
	s.mu.Lock()
	clear(s.freq)
	s.nFreq = 0
	s.mu.Unlock()
}

func (s *Sink) PlotFrequencyPoint(index int, magnitude float64) {
	s.mu.Lock()
	if index >= 0 && index < len(s.freq) {
		s.freq[index] = magnitude
		s.nFreq = max(s.nFreq, index+1)
	}
	s.mu.Unlock()
}

func (s *Sink) SetStatusText(field display.StatusField, text string) {
	if field < 0 || field >= display.NumStatusFields {
		return
	}
	s.mu.Lock()
	s.status[field] = text
	s.mu.Unlock()
}

// Write keeps the last LogLines complete lines of p.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.partial = append(s.partial, p...)
	for {
		i := bytes.IndexByte(s.partial, '\n')
		if i < 0 {
			break
		}
		s.log = append(s.log, strings.TrimRight(string(s.partial[:i]), "\r"))
		s.partial = s.partial[i+1:]
	}
	if n := len(s.log); n > LogLines {
		s.log = append(s.log[:0], s.log[n-LogLines:]...)
	}
	return len(p), nil
}

// Snapshot copies the current frame.
func (s *Sink) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Time:      append([]float64(nil), s.time...),
		TimeCount: s.nTime,
		Freq:      append([]float64(nil), s.freq...),
		FreqCount: s.nFreq,
		YMin:      s.yMin,
		YMax:      s.yMax,
		YInc:      s.yInc,
		Status:    s.status,
		Log:       append([]string(nil), s.log...),
	}
}

var _ display.Sink = (*Sink)(nil)
