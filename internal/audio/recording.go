// SPDX-License-Identifier: MIT
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recorder writes the raw samples of every completed cycle to its own mono
// WAV file. Samples are centred on their mean and scaled so the largest
// excursion reaches full scale; a flat cycle is written as silence.
type Recorder struct {
	dir      string
	bitDepth int
	seq      int
	buf      *audio.IntBuffer
}

func NewRecorder(dir string, bitDepth int) (*Recorder, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create recording directory: %w", err)
	}
	return &Recorder{
		dir:      dir,
		bitDepth: bitDepth,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Files reports how many cycles have been written.
func (r *Recorder) Files() int { return r.seq }

// ObserveCycle writes samples as cycle-NNNN.wav at sampleRate.
func (r *Recorder) ObserveCycle(samples []float64, sampleRate int) error {
	if len(samples) == 0 {
		return nil
	}

	name := filepath.Join(r.dir, fmt.Sprintf("cycle-%04d.wav", r.seq))
	file, err := os.Create(name)
	if err != nil {
		return err
	}

	r.encode(samples, sampleRate)

	enc := wav.NewEncoder(file, sampleRate, r.bitDepth, 1, 1)
	if err := enc.Write(r.buf); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := enc.Close(); err != nil {
		file.Close()
		return fmt.Errorf("failed to finish %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	r.seq++
	logger.Debugf("wrote %s (%d samples)", name, len(samples))
	return nil
}

// encode fills the reusable buffer with PCM values for samples.
// 8-bit WAV data is unsigned and is offset accordingly.
func (r *Recorder) encode(samples []float64, sampleRate int) {
	var mean float64
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	var peak float64
	for _, v := range samples {
		peak = math.Max(peak, math.Abs(v-mean))
	}

	full := float64(int64(1)<<(r.bitDepth-1) - 1)
	scale := 0.0
	if peak > 0 {
		scale = full / peak
	}
	offset := 0
	if r.bitDepth == 8 {
		offset = 128
	}

	if cap(r.buf.Data) < len(samples) {
		r.buf.Data = make([]int, len(samples))
	}
	r.buf.Data = r.buf.Data[:len(samples)]
	r.buf.Format.SampleRate = sampleRate

	for i, v := range samples {
		r.buf.Data[i] = int(math.Round((v-mean)*scale)) + offset
	}
}
