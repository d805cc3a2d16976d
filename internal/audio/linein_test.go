// SPDX-License-Identifier: MIT
package audio

import (
	"errors"
	"math"
	"testing"
)

func TestRawFromFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want int
	}{
		{-1, 0},
		{0, 2048},
		{1, 4095},
		{-2, 0},
		{3, 4095},
		{0.5, 3071},
		{float32(math.NaN()), 2048},
	}
	for _, tt := range tests {
		if got := RawFromFloat(tt.in); got != tt.want {
			t.Errorf("RawFromFloat(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLineInLatestSample(t *testing.T) {
	t.Parallel()

	l := &LineIn{}
	if got := l.ReadRaw(); got != 2048 {
		t.Errorf("ReadRaw before any callback = %d, want mid-scale 2048", got)
	}

	l.process([]float32{-1, 0, 1})
	if got := l.ReadRaw(); got != 4095 {
		t.Errorf("ReadRaw = %d, want the last sample of the block", got)
	}

	l.process(nil)
	if got := l.ReadRaw(); got != 4095 {
		t.Errorf("empty block changed the reading to %d", got)
	}

	if err := l.Stop(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Stop on unstarted line-in = %v, want ErrNotStarted", err)
	}
}

func TestLineInCallbackNoAllocs(t *testing.T) {
	l := &LineIn{}
	block := make([]float32, LineInFrames)
	allocs := testing.AllocsPerRun(100, func() {
		l.process(block)
		_ = l.ReadRaw()
	})
	if allocs > 0 {
		t.Errorf("callback allocates %v times per block", allocs)
	}
}
