// SPDX-License-Identifier: MIT
package utils

import (
	"math"
	"os"
	"testing"
)

const (
	testSize       = 2048
	testSampleRate = 1000
	testFrequency  = 50.0
)

var testMagnitudes []float64

func TestMain(m *testing.M) {
	testMagnitudes = make([]float64, testSize)

	// A "hill" with its peak at testSize/4.
	for i := range testMagnitudes {
		testMagnitudes[i] = math.Exp(-0.01 * math.Pow(float64(i-testSize/4), 2))
	}

	os.Exit(m.Run())
}

func TestMockTransport(t *testing.T) {
	mt := &MockTransport{}
	for _, ev := range []any{"reset", 1, []float64{0.5}} {
		if err := mt.Send(ev); err != nil {
			t.Fatalf("MockTransport.Send() error = %v", err)
		}
	}

	got := mt.Snapshot()
	if len(got) != 3 {
		t.Fatalf("recorded %d events, want 3", len(got))
	}
	if got[0] != "reset" || got[1] != 1 {
		t.Errorf("events out of order: %v", got)
	}

	if err := mt.Close(); err != nil || !mt.Closed {
		t.Errorf("Close() = %v, closed=%v", err, mt.Closed)
	}
}
