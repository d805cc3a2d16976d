// SPDX-License-Identifier: MIT

// Package board binds the analyzer to real hardware: button pins, the
// magnetic sensor, the analog input and the diagnostic serial port. Linux
// boards go through periph.io; microcontrollers build the tinygo variant.
package board

import (
	"bufio"
	"context"
	"io"
	"strings"

	"spectrum/internal/clock"
	"spectrum/internal/input"
	"spectrum/internal/log"
)

var logger = log.For("Board")

// WatchKeys reads lines from r and treats "a" as an acquisition button edge
// and "s" as a source button edge. It returns when r is exhausted or ctx is
// done. It stands in for the buttons on a headless host.
func WatchKeys(ctx context.Context, r io.Reader, clk clock.Clock, buttons input.Buttons) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "a":
			buttons.Acquisition.Press(clk)
		case "s":
			buttons.Source.Press(clk)
		case "":
		default:
			logger.Warnf("unknown key %q (a: start/stop, s: source)", sc.Text())
		}
	}
	return sc.Err()
}
