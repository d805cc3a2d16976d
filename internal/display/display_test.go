// SPDX-License-Identifier: MIT
package display

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"spectrum/pkg/utils"
)

type recorder struct {
	calls []string
}

func (r *recorder) ResetTimeView() { r.calls = append(r.calls, "reset_time") }
func (r *recorder) PlotTimePoint(i int, v float64) {
	r.calls = append(r.calls, fmt.Sprintf("time %d %g", i, v))
}
func (r *recorder) RescaleTimeAxis(lo, hi, inc float64) {
	r.calls = append(r.calls, fmt.Sprintf("rescale %g %g %g", lo, hi, inc))
}
func (r *recorder) ResetFrequencyView() { r.calls = append(r.calls, "reset_freq") }
func (r *recorder) PlotFrequencyPoint(i int, v float64) {
	r.calls = append(r.calls, fmt.Sprintf("freq %d %g", i, v))
}
func (r *recorder) SetStatusText(f StatusField, s string) {
	r.calls = append(r.calls, fmt.Sprintf("status %s %s", f, s))
}

func TestMultiForwardsInOrder(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := Multi{a, b, Nop{}}

	m.ResetTimeView()
	m.PlotTimePoint(3, 1.5)
	m.RescaleTimeAxis(-2, 2, 1)
	m.ResetFrequencyView()
	m.PlotFrequencyPoint(7, 4)
	m.SetStatusText(SourceName, "ANALOG")

	want := []string{
		"reset_time", "time 3 1.5", "rescale -2 2 1",
		"reset_freq", "freq 7 4", "status source ANALOG",
	}
	if !reflect.DeepEqual(a.calls, want) || !reflect.DeepEqual(b.calls, want) {
		t.Errorf("calls = %v / %v, want %v", a.calls, b.calls, want)
	}
}

func TestStatusFieldString(t *testing.T) {
	if Rate.String() != "rate" || AcquisitionState.String() != "acquisition" || SourceName.String() != "source" {
		t.Error("unexpected field names")
	}
	if StatusField(7).String() != "StatusField(7)" {
		t.Errorf("unknown field = %q", StatusField(7).String())
	}
}

func events(t *testing.T, mt *utils.MockTransport) []Event {
	t.Helper()
	var out []Event
	for _, e := range mt.Snapshot() {
		ev, ok := e.(Event)
		if !ok {
			t.Fatalf("transport got %T, want Event", e)
		}
		out = append(out, ev)
	}
	return out
}

func TestTransportSinkBatchesPoints(t *testing.T) {
	mt := &utils.MockTransport{}
	s := NewTransportSink(mt, 4)

	s.ResetTimeView()
	for i := 0; i < 6; i++ {
		s.PlotTimePoint(i, float64(i))
	}
	s.SetStatusText(Rate, "1000 Hz")

	got := events(t, mt)
	want := []Event{
		{Type: EventResetTime},
		{Type: EventTime, Index: 0, Values: []float64{0, 1, 2, 3}},
		{Type: EventTime, Index: 4, Values: []float64{4, 5}},
		{Type: EventStatus, Field: "rate", Text: "1000 Hz"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events: %+v", len(got), got)
	}
	for i := range want {
		if got[i].Type != want[i].Type || got[i].Index != want[i].Index ||
			!reflect.DeepEqual(got[i].Values, want[i].Values) || got[i].Text != want[i].Text {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTransportSinkSplitsOnGaps(t *testing.T) {
	mt := &utils.MockTransport{}
	s := NewTransportSink(mt, 0)

	s.PlotFrequencyPoint(0, 1)
	s.PlotFrequencyPoint(1, 2)
	s.PlotFrequencyPoint(5, 3) // not contiguous
	s.PlotTimePoint(6, 4)      // different kind
	s.Flush()

	got := events(t, mt)
	if len(got) != 3 {
		t.Fatalf("got %d events: %+v", len(got), got)
	}
	if got[0].Type != EventFrequency || len(got[0].Values) != 2 {
		t.Errorf("first batch = %+v", got[0])
	}
	if got[1].Index != 5 || got[2].Type != EventTime || got[2].Index != 6 {
		t.Errorf("split batches = %+v %+v", got[1], got[2])
	}

	s.Flush()
	if len(mt.Snapshot()) != 3 {
		t.Error("empty Flush sent an event")
	}
}

type failingTransport struct{}

func (failingTransport) Send(any) error { return errors.New("link down") }
func (failingTransport) Close() error   { return nil }

func TestTransportSinkSwallowsErrors(t *testing.T) {
	s := NewTransportSink(failingTransport{}, 2)
	s.ResetFrequencyView()
	s.PlotFrequencyPoint(0, 1)
	s.PlotFrequencyPoint(1, 1)
	s.RescaleTimeAxis(-1, 1, 1)
	if s.Failed() != 3 {
		t.Errorf("Failed() = %d, want 3", s.Failed())
	}
}

func TestPanelDraws(t *testing.T) {
	fb := NewFramebuffer(refWidth, refHeight, "")
	p := NewPanel(fb, 2048, 1024, 1000)

	if got := fb.At(2, 2); got != colorToolbarBG {
		t.Errorf("toolbar pixel = %v, want %v", got, colorToolbarBG)
	}
	if fb.Presents() == 0 {
		t.Error("NewPanel did not present")
	}

	p.ResetTimeView()
	p.PlotTimePoint(0, 0)
	if got := fb.At(40, 234); got != colorTimeTrace {
		t.Errorf("time trace pixel = %v, want %v", got, colorTimeTrace)
	}

	p.ResetFrequencyView()
	p.PlotFrequencyPoint(0, 4)
	if got := fb.At(40, 40); got != colorFreqTrace {
		t.Errorf("frequency trace pixel = %v, want %v", got, colorFreqTrace)
	}

	// A reset wipes the trace.
	p.ResetFrequencyView()
	if got := fb.At(40, 40); got == colorFreqTrace {
		t.Error("ResetFrequencyView left the trace")
	}

	before := fb.Presents()
	p.SetStatusText(Rate, "200 Hz")
	if p.sampleRate != 200 {
		t.Errorf("sampleRate = %v after rate status", p.sampleRate)
	}
	if fb.Presents() <= before {
		t.Error("SetStatusText did not present")
	}

	p.RescaleTimeAxis(-10, 10, 2)
	if p.yMin != -10 || p.yMax != 10 {
		t.Errorf("axis = %v..%v", p.yMin, p.yMax)
	}
	p.RescaleTimeAxis(1, 1, 0)
	if p.yMin != -10 {
		t.Error("invalid axis was applied")
	}
}

func TestPanelScalesToSmallDisplay(t *testing.T) {
	fb := NewFramebuffer(320, 240, "")
	p := NewPanel(fb, 2048, 1024, 1000)

	if p.time.x+p.time.w > 320 || p.time.y+p.time.h > 240 {
		t.Errorf("time graph %+v does not fit 320x240", p.time)
	}
	// Out-of-range values are pinned to the graph.
	p.PlotTimePoint(2047, 1e6)
	if got := fb.At(int(p.time.right()), int(p.time.y)); got != colorTimeTrace {
		t.Errorf("pinned point = %v, want trace color", got)
	}
}

func TestFramebufferSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.png")
	fb := NewFramebuffer(64, 32, path)
	fb.SnapshotInterval = time.Hour

	fb.FillRectangle(0, 0, 64, 32, colorGrid)
	if err := fb.Display(); err != nil {
		t.Fatalf("Display() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("snapshot width = %d", img.Bounds().Dx())
	}

	// The next present falls inside the interval and is not written.
	os.Remove(path)
	fb.Display()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("snapshot rewritten inside the interval")
	}
	if fb.Presents() != 2 {
		t.Errorf("Presents() = %d, want 2", fb.Presents())
	}
}

func TestFramebufferClipsFill(t *testing.T) {
	fb := NewFramebuffer(8, 8, "")
	if err := fb.FillRectangle(-4, -4, 100, 100, colorAxis); err != nil {
		t.Fatal(err)
	}
	fb.SetPixel(50, 50, colorGrid)
	if fb.At(7, 7) != colorAxis {
		t.Error("fill did not reach the corner")
	}
}
