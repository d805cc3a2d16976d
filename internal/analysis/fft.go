// SPDX-License-Identifier: MIT
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"spectrum/pkg/bitint"
)

// FullScale is the value the strongest bin is normalized to.
const FullScale = 4.0

var ErrSizeMismatch = errors.New("analysis: buffer length does not match transform size")

// Spectrum is the result of one transform. Magnitudes aliases the sample
// buffer handed to Transform and is only valid until that buffer is reused.
type Spectrum struct {
	Magnitudes []float64 // N/2 bins, normalized to [0, FullScale].
	Max        float64   // Largest raw magnitude before normalization.
	PeakBin    int
	Degenerate bool // No signal; every bin is zero.
}

// Transformer runs the windowed complex FFT over one completed buffer.
// It keeps its own scratch space and is not safe for concurrent use.
type Transformer struct {
	size   int
	fft    *fourier.CmplxFFT
	window []float64
	work   []complex128
}

// NewTransformer prepares a transform of the given power-of-two size.
func NewTransformer(size int) (*Transformer, error) {
	if !bitint.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("fft size must be a power of 2, got %d", size)
	}

	coeffs := make([]float64, size)
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	window.Hamming(coeffs)

	logger.Debugf("transform ready (size %d, order %d, window Hamming)", size, bitint.Log2(size))

	return &Transformer{
		size:   size,
		fft:    fourier.NewCmplxFFT(size),
		window: coeffs,
		work:   make([]complex128, size),
	}, nil
}

// Size returns N.
func (t *Transformer) Size() int { return t.size }

// Transform computes the magnitude spectrum of re in place.
//
// The mean is removed, the Hamming window applied and the mean removed again,
// so a constant input reaches the FFT as exact zeros. After the forward FFT
// over (re, im) both buffers hold the complex result, then re[i] is
// overwritten with |X[i]|. The first N/2 magnitudes are normalized so the
// largest equals FullScale. A spectrum whose largest magnitude is within
// rounding error of the input (see silenceFloor) is degenerate and all of
// its bins are zero.
func (t *Transformer) Transform(re, im []float64) (Spectrum, error) {
	if len(re) != t.size || len(im) != t.size {
		return Spectrum{}, ErrSizeMismatch
	}

	floor := silenceFloor(re, im)

	removeMean(re)
	for i, w := range t.window {
		re[i] *= w
	}
	removeMean(re)

	for i := range t.work {
		t.work[i] = complex(re[i], im[i])
	}
	t.fft.Coefficients(t.work, t.work)
	for i, c := range t.work {
		re[i] = cmplx.Abs(c)
		im[i] = imag(c)
	}

	bins := re[:t.size/2]
	s := Spectrum{Magnitudes: bins}
	for i, v := range bins {
		if v > s.Max {
			s.Max = v
			s.PeakBin = i
		}
	}

	if s.Max <= floor {
		clear(bins)
		s.Degenerate = true
		s.PeakBin = 0
		return s, nil
	}

	scale := FullScale / s.Max
	for i := range bins {
		bins[i] *= scale
	}
	return s, nil
}

// FrequencyForBin returns the frequency in Hz at the center of bin i for a
// buffer sampled at sampleRate. Bins outside [0, N/2) return 0.
func (t *Transformer) FrequencyForBin(i int, sampleRate float64) float64 {
	if i < 0 || i >= t.size/2 {
		return 0
	}
	return float64(i) * sampleRate / float64(t.size)
}

// silenceFloor bounds the magnitude that floating point rounding alone can
// leave in any bin: N·ε·Σ(|re|+|im|). Only an all-zero input gives 0.
func silenceFloor(re, im []float64) float64 {
	var l1 float64
	for i := range re {
		l1 += math.Abs(re[i]) + math.Abs(im[i])
	}
	const eps = 0x1p-52
	return float64(len(re)) * eps * l1
}

func removeMean(x []float64) {
	var sum float64
	for _, v := range x {
		sum += v
	}
	mean := sum / float64(len(x))
	if mean == 0 || math.IsNaN(mean) {
		return
	}
	for i := range x {
		x[i] -= mean
	}
}
