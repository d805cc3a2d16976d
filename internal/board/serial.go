// SPDX-License-Identifier: MIT
//go:build !tinygo

package board

import (
	"fmt"
	"io"

	"github.com/jacobsa/go-serial/serial"

	"spectrum/internal/log"
)

var openSerial = serial.Open

// MirrorLog copies every log line to the serial port at baud, 8N1, in
// addition to the current log output. Closing the returned port restores
// nothing; callers close it at exit.
func MirrorLog(port string, baud uint) (io.Closer, error) {
	p, err := openSerial(serial.OpenOptions{
		PortName:        port,
		BaudRate:        baud,
		DataBits:        8,
		StopBits:        1,
		ParityMode:      serial.PARITY_NONE,
		MinimumReadSize: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", port, err)
	}

	log.SetOutput(io.MultiWriter(log.Writer(), p))
	logger.Infof("log mirrored to %s at %d baud", port, baud)
	return p, nil
}
