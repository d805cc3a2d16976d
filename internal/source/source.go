// SPDX-License-Identifier: MIT

// Package source provides the per-sample producers the acquisition loop
// reads from: the live analog input, the magnetic sensor and the two canned
// test waveforms. Every producer answers immediately; none of them blocks.
package source

import (
	"fmt"
	"strings"
	"time"

	"spectrum/internal/log"
)

var logger = log.For("Source")

// Source produces one sample per call.
type Source interface {
	// Name is the label shown on the status bar.
	Name() string
	// Next returns the sample for time now.
	Next(now time.Duration) float64
	// Reset restarts the source's phase as of now.
	Reset(now time.Duration)
	// IntrinsicRate reports the rate a source was recorded at, if it has one.
	IntrinsicRate() (hz int, ok bool)
}

// RawReader returns the latest raw reading of a hardware input.
type RawReader interface {
	ReadRaw() int
}

// RawReaderFunc adapts a function to RawReader.
type RawReaderFunc func() int

func (f RawReaderFunc) ReadRaw() int { return f() }

// ID identifies a source in the bank. The numbering is the order the source
// button cycles through.
type ID int

const (
	Hall ID = iota
	Analog
	Sine
	EKG

	numIDs
)

func (id ID) String() string {
	switch id {
	case Hall:
		return "HALL"
	case Analog:
		return "ANALOG"
	case Sine:
		return "TST: SINE"
	case EKG:
		return "TST: EKG"
	default:
		return fmt.Sprintf("ID(%d)", int(id))
	}
}

// ParseID maps a configuration name (hall, analog, sine, ekg) to an ID.
func ParseID(name string) (ID, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hall", "magnetic":
		return Hall, nil
	case "analog":
		return Analog, nil
	case "sine":
		return Sine, nil
	case "ekg", "ecg":
		return EKG, nil
	default:
		return 0, fmt.Errorf("unknown source %q", name)
	}
}
