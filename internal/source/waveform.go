// SPDX-License-Identifier: MIT
package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"spectrum/pkg/utils"
)

// Synthesized table contents. Both loop seamlessly: 10 s of a 10 Hz sine
// and 50 s of a 72 BPM heartbeat.
const (
	sineToneHz = 10
	ekgBPM     = 72
)

// SineWaveform returns the built-in sine table.
func SineWaveform() []float64 {
	return utils.GenerateSineWave(TableLength, SineRate, sineToneHz, 1, 0)
}

// EKGWaveform returns the built-in EKG table, R peaks close to 1.
func EKGWaveform() []float64 {
	return utils.GenerateECG(TableLength, EKGRate, ekgBPM)
}

var ErrNotWAV = errors.New("not a valid WAV file")

// LoadWAV reads the first TableLength samples of a mono WAV file normalized
// to [-1, 1). Shorter files are rejected.
func LoadWAV(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open waveform: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotWAV)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels != 1 {
		return nil, fmt.Errorf("%s: waveform must be mono", path)
	}
	if len(buf.Data) < TableLength {
		return nil, fmt.Errorf("%s: %d samples, need at least %d", path, len(buf.Data), TableLength)
	}

	bitDepth := int(d.BitDepth)
	if bitDepth < 8 || bitDepth > 32 {
		return nil, fmt.Errorf("%s: unsupported bit depth %d", path, bitDepth)
	}
	full := float64(int64(1) << (bitDepth - 1))

	out := make([]float64, TableLength)
	for i := range out {
		v := buf.Data[i]
		if bitDepth == 8 {
			// 8-bit PCM is unsigned.
			v -= 128
		}
		out[i] = float64(v) / full
	}

	logger.Debugf("loaded %d samples from %s (%d-bit, %d Hz)", TableLength, path, bitDepth, d.SampleRate)
	return out, nil
}

// Tables builds the two test sources, from WAV files where a path is given
// and from the built-in waveforms otherwise.
func Tables(sineWAV, ekgWAV string) (*Table, *Table, error) {
	sineValues, err := waveform(sineWAV, SineWaveform)
	if err != nil {
		return nil, nil, err
	}
	ekgValues, err := waveform(ekgWAV, EKGWaveform)
	if err != nil {
		return nil, nil, err
	}

	sine, err := NewSineTable(sineValues)
	if err != nil {
		return nil, nil, err
	}
	ekg, err := NewEKGTable(ekgValues)
	if err != nil {
		return nil, nil, err
	}
	return sine, ekg, nil
}

func waveform(path string, builtin func() []float64) ([]float64, error) {
	if path == "" {
		return builtin(), nil
	}
	return LoadWAV(path)
}
