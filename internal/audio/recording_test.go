// SPDX-License-Identifier: MIT
package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"spectrum/pkg/utils"
)

func decode(t *testing.T, path string) ([]int, *wav.Decoder) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatalf("%s is not a valid WAV file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return buf.Data, dec
}

func TestRecorderWritesOneFilePerCycle(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "recordings")
	r, err := NewRecorder(dir, 16)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	samples := utils.GenerateSineWave(2048, 1000, 50, 1.0, 1.65)
	for range 2 {
		if err := r.ObserveCycle(samples, 1000); err != nil {
			t.Fatalf("ObserveCycle: %v", err)
		}
	}
	if r.Files() != 2 {
		t.Errorf("Files() = %d, want 2", r.Files())
	}

	data, dec := decode(t, filepath.Join(dir, "cycle-0001.wav"))
	if dec.SampleRate != 1000 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Errorf("format = %d Hz, %d ch, %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
	if len(data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(data), len(samples))
	}

	var peak int
	for _, v := range data {
		peak = max(peak, v, -v)
	}
	if peak != 32767 {
		t.Errorf("peak = %d, want full scale 32767", peak)
	}
}

func TestRecorderFlatCycleIsSilence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		silence  int
	}{
		{8, 128},
		{16, 0},
		{24, 0},
		{32, 0},
	}
	for _, tt := range tests {
		r, err := NewRecorder(t.TempDir(), tt.bitDepth)
		if err != nil {
			t.Fatalf("NewRecorder(%d): %v", tt.bitDepth, err)
		}
		if err := r.ObserveCycle(utils.GenerateConstant(256, 1.0), 1000); err != nil {
			t.Fatalf("ObserveCycle: %v", err)
		}
		if r.buf.Data[0] != tt.silence || r.buf.Data[255] != tt.silence {
			t.Errorf("%d-bit silence encoded as %d, want %d", tt.bitDepth, r.buf.Data[0], tt.silence)
		}
	}
}

func TestRecorderErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewRecorder(t.TempDir(), 12); err == nil {
		t.Error("expected error for 12-bit recording")
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRecorder(filepath.Join(file, "sub"), 16); err == nil {
		t.Error("expected error when the directory cannot be created")
	}

	r, err := NewRecorder(t.TempDir(), 16)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.ObserveCycle(nil, 1000); err != nil || r.Files() != 0 {
		t.Errorf("empty cycle: err=%v files=%d", err, r.Files())
	}
}
