// SPDX-License-Identifier: MIT
package analysis

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"spectrum/pkg/utils"
)

const (
	testSize       = 2048
	testSampleRate = 1000
)

func newTestTransformer(t testing.TB) *Transformer {
	t.Helper()
	tr, err := NewTransformer(testSize)
	if err != nil {
		t.Fatalf("NewTransformer() error = %v", err)
	}
	return tr
}

func TestNewTransformerRejectsOddSizes(t *testing.T) {
	for _, n := range []int{0, 3, 1000, -8} {
		if _, err := NewTransformer(n); err == nil {
			t.Errorf("NewTransformer(%d) expected error", n)
		}
	}
}

func TestTransformSizeMismatch(t *testing.T) {
	tr := newTestTransformer(t)
	_, err := tr.Transform(make([]float64, 16), make([]float64, testSize))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Transform() error = %v, want ErrSizeMismatch", err)
	}
}

func TestTransformSinePeak(t *testing.T) {
	tests := []struct {
		name      string
		frequency float64
		offset    float64
	}{
		{"50 Hz", 50, 0},
		{"5 Hz on 1.65 V bias", 5, 1.65},
		{"200 Hz", 200, 0},
	}

	tr := newTestTransformer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := utils.GenerateSineWave(testSize, testSampleRate, tt.frequency, 1, tt.offset)
			im := make([]float64, testSize)

			s, err := tr.Transform(re, im)
			if err != nil {
				t.Fatal(err)
			}
			if s.Degenerate {
				t.Fatal("sine reported as degenerate")
			}
			if len(s.Magnitudes) != testSize/2 {
				t.Fatalf("len(Magnitudes) = %d, want %d", len(s.Magnitudes), testSize/2)
			}

			want := int(math.Round(tt.frequency * testSize / testSampleRate))
			if d := s.PeakBin - want; d < -1 || d > 1 {
				t.Errorf("PeakBin = %d, want %d±1", s.PeakBin, want)
			}
			if got := tr.FrequencyForBin(s.PeakBin, testSampleRate); math.Abs(got-tt.frequency) > 1 {
				t.Errorf("peak frequency = %.2f Hz, want about %.0f", got, tt.frequency)
			}
		})
	}
}

func TestTransformNormalization(t *testing.T) {
	tr := newTestTransformer(t)
	re := utils.GenerateComplexWave(testSize, testSampleRate)
	im := make([]float64, testSize)

	s, err := tr.Transform(re, im)
	if err != nil {
		t.Fatal(err)
	}

	if got := slices.Max(s.Magnitudes); math.Abs(got-FullScale) > 1e-12 {
		t.Errorf("max normalized magnitude = %v, want %v", got, FullScale)
	}
	for i, v := range s.Magnitudes {
		if v < 0 {
			t.Fatalf("bin %d = %v is negative", i, v)
		}
	}
	if s.Magnitudes[s.PeakBin] != slices.Max(s.Magnitudes) {
		t.Errorf("PeakBin %d does not hold the maximum", s.PeakBin)
	}
}

func TestTransformConstantIsSilent(t *testing.T) {
	tr := newTestTransformer(t)
	for _, level := range []float64{0, 1.0, 3.3, -2} {
		re := utils.GenerateConstant(testSize, level)
		im := make([]float64, testSize)

		s, err := tr.Transform(re, im)
		if err != nil {
			t.Fatal(err)
		}
		if !s.Degenerate {
			t.Errorf("constant %.1f: Degenerate = false, max %g", level, s.Max)
		}
		for i, v := range s.Magnitudes {
			if v != 0 {
				t.Fatalf("constant %.1f: bin %d = %v, want 0", level, i, v)
			}
		}
	}
}

func TestTransformSilenceScalesWithInput(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		wantZero bool
	}{
		{"Zero", utils.GenerateConstant(testSize, 0), true},
		{"Large constant", utils.GenerateConstant(testSize, 1000.1), true},
		{"Huge constant", utils.GenerateConstant(testSize, -2.5e6), true},
		{"Tiny sine", utils.GenerateSineWave(testSize, testSampleRate, 50, 1e-13, 0), false},
		{"Tiny sine on bias", utils.GenerateSineWave(testSize, testSampleRate, 50, 1e-6, 3.3), false},
	}

	tr := newTestTransformer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tr.Transform(tt.input, make([]float64, testSize))
			if err != nil {
				t.Fatal(err)
			}
			if s.Degenerate != tt.wantZero {
				t.Fatalf("Degenerate = %v, want %v (max %g)", s.Degenerate, tt.wantZero, s.Max)
			}
			want := FullScale
			if tt.wantZero {
				want = 0
			}
			if got := slices.Max(s.Magnitudes); math.Abs(got-want) > 1e-12 {
				t.Errorf("max normalized magnitude = %v, want %v", got, want)
			}
		})
	}
}

func TestTransformIsDeterministic(t *testing.T) {
	tr := newTestTransformer(t)
	input := utils.GenerateECG(testSize, 200, 72)

	run := func() []float64 {
		re := slices.Clone(input)
		s, err := tr.Transform(re, make([]float64, testSize))
		if err != nil {
			t.Fatal(err)
		}
		return slices.Clone(s.Magnitudes)
	}

	first, second := run(), run()
	if !slices.Equal(first, second) {
		t.Error("two transforms of the same input differ")
	}
}

func TestFrequencyForBin(t *testing.T) {
	tr := newTestTransformer(t)
	tests := []struct {
		bin  int
		rate float64
		want float64
	}{
		{0, 1000, 0},
		{1, 1000, 1000.0 / testSize},
		{1024, 1000, 0},
		{1023, 1000, 1023 * 1000.0 / testSize},
		{512, 200, 50},
		{-1, 1000, 0},
	}
	for _, tt := range tests {
		if got := tr.FrequencyForBin(tt.bin, tt.rate); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("FrequencyForBin(%d, %v) = %v, want %v", tt.bin, tt.rate, got, tt.want)
		}
	}
}

func TestAverageSampleRate(t *testing.T) {
	tests := []struct {
		name      string
		intervals []time.Duration
		want      float64
	}{
		{"Empty", nil, 0},
		{"Single", []time.Duration{0}, 0},
		{"Exact 1 kHz", append([]time.Duration{0}, repeat(time.Millisecond, 2047)...), 1000},
		{"First entry ignored", append([]time.Duration{time.Hour}, repeat(5*time.Millisecond, 9)...), 200},
		{"Jitter", []time.Duration{0, 900 * time.Microsecond, 1100 * time.Microsecond}, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageSampleRate(tt.intervals); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("AverageSampleRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiagnose(t *testing.T) {
	tr := newTestTransformer(t)
	intervals := append([]time.Duration{0}, repeat(time.Millisecond, testSize-1)...)

	d := tr.Diagnose(intervals, Spectrum{Max: 12.5, PeakBin: 512}, testSampleRate)
	if d.PeakFrequency != 250 || d.MaxMagnitude != 12.5 || math.Abs(d.AverageRate-1000) > 1e-6 {
		t.Errorf("Diagnose() = %+v", d)
	}

	d = tr.Diagnose(intervals, Spectrum{PeakBin: 3, Degenerate: true}, testSampleRate)
	if d.PeakFrequency != 0 {
		t.Errorf("degenerate spectrum reported peak %.2f Hz", d.PeakFrequency)
	}
}

func TestTransformHotPath(t *testing.T) {
	tr := newTestTransformer(t)
	input := utils.GenerateSineWave(testSize, testSampleRate, 50, 1, 0)
	re := make([]float64, testSize)
	im := make([]float64, testSize)

	allocs := testing.AllocsPerRun(50, func() {
		copy(re, input)
		clear(im)
		tr.Transform(re, im)
	})
	if allocs > 0 {
		t.Errorf("Expected zero allocations in Transform, got %.1f", allocs)
	}
}

func BenchmarkTransform(b *testing.B) {
	tr := newTestTransformer(b)
	input := utils.GenerateComplexWave(testSize, testSampleRate)
	re := make([]float64, testSize)
	im := make([]float64, testSize)

	b.ReportAllocs()
	for b.Loop() {
		copy(re, input)
		clear(im)
		tr.Transform(re, im)
	}
}

func repeat(d time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}
	return out
}
