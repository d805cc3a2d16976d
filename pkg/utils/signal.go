// SPDX-License-Identifier: MIT
package utils

import "math"

// GenerateSineWave returns size samples of offset + amplitude*sin(2πft)
// sampled at sampleRate.
func GenerateSineWave(size int, sampleRate, frequency, amplitude, offset float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = offset + amplitude*math.Sin(2*math.Pi*frequency*t)
	}
	return buffer
}

// GenerateComplexWave returns a 10 Hz fundamental with its 2nd and 3rd
// harmonics, peak amplitude just under 1.
func GenerateComplexWave(size int, sampleRate float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		tm := float64(i) / sampleRate
		buffer[i] = math.Sin(2*math.Pi*10*tm)*0.5 +
			math.Sin(2*math.Pi*20*tm)*0.3 +
			math.Sin(2*math.Pi*30*tm)*0.2
	}
	return buffer
}

// GenerateConstant returns size copies of level.
func GenerateConstant(size int, level float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		buffer[i] = level
	}
	return buffer
}

// GenerateECG returns a synthetic (non-clinical) electrocardiogram trace:
// P wave, QRS complex and T wave modelled as gaussians on a slowly
// breathing baseline. The R peak is close to 1.
func GenerateECG(size int, sampleRate, heartRateBPM float64) []float64 {
	buffer := make([]float64, size)
	cycleHz := heartRateBPM / 60.0
	phase := 0.0
	for i := range buffer {
		t := phase
		baseline := 0.05 * math.Sin(2*math.Pi*float64(i)/sampleRate*0.25)
		p := 0.08 * gauss(t, 0.18, 0.03)
		q := -0.12 * gauss(t, 0.30, 0.01)
		r := 1.00 * gauss(t, 0.32, 0.008)
		s := -0.25 * gauss(t, 0.35, 0.012)
		tw := 0.25 * gauss(t, 0.60, 0.06)
		buffer[i] = baseline + p + q + r + s + tw

		phase += cycleHz / sampleRate
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buffer
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

// FindPeakBin returns the index of the largest magnitude in
// magnitudes[startBin:endBin+1]. Bounds are clamped to the slice.
func FindPeakBin(magnitudes []float64, startBin, endBin int) int {
	if len(magnitudes) == 0 {
		return 0
	}

	if startBin < 0 {
		startBin = 0
	}

	if endBin >= len(magnitudes) {
		endBin = len(magnitudes) - 1
	}

	peakBin := startBin
	peakValue := magnitudes[startBin]

	for bin := startBin + 1; bin <= endBin; bin++ {
		if magnitudes[bin] > peakValue {
			peakValue = magnitudes[bin]
			peakBin = bin
		}
	}

	return peakBin
}
