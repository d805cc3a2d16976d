// SPDX-License-Identifier: MIT
//go:build !tinygo

package board

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	"spectrum/internal/source"
)

// magneticRegisterMax is the largest 12-bit register value.
const magneticRegisterMax = 0x0FFF

// Magnetic reads a 12-bit big-endian register pair from an I2C magnetic
// sensor and rescales it to the 0..source.MagneticRawMax range the magnetic
// source maps to volts. Read failures return the previous value so the sampling cadence
// is never broken; the first failure in a run is logged.
type Magnetic struct {
	dev    *i2c.Dev
	bus    i2c.BusCloser
	reg    [1]byte
	buf    [2]byte
	last   int
	failed bool
}

// OpenMagnetic opens bus and addresses the sensor at addr.
func OpenMagnetic(bus string, addr uint16, reg uint8) (*Magnetic, error) {
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("i2c open failed on bus %s: %w", bus, err)
	}
	m := NewMagnetic(b, addr, reg)
	m.bus = b
	logger.Infof("magnetic sensor at %#x on bus %s", addr, b)
	return m, nil
}

// NewMagnetic uses an already open bus.
func NewMagnetic(b i2c.Bus, addr uint16, reg uint8) *Magnetic {
	return &Magnetic{
		dev: &i2c.Dev{Bus: b, Addr: addr},
		reg: [1]byte{reg},
	}
}

func (m *Magnetic) ReadRaw() int {
	if err := m.dev.Tx(m.reg[:], m.buf[:]); err != nil {
		if !m.failed {
			logger.Warnf("magnetic read failed: %v", err)
			m.failed = true
		}
		return m.last
	}
	if m.failed {
		logger.Infof("magnetic sensor recovered")
		m.failed = false
	}
	m.last = scaleRegister(int(binary.BigEndian.Uint16(m.buf[:]) & magneticRegisterMax))
	return m.last
}

// scaleRegister maps 0..magneticRegisterMax onto 0..source.MagneticRawMax,
// rounding to nearest.
func scaleRegister(v int) int {
	return (v*source.MagneticRawMax + magneticRegisterMax/2) / magneticRegisterMax
}

var _ source.RawReader = (*Magnetic)(nil)

// Close releases the bus if OpenMagnetic opened it.
func (m *Magnetic) Close() error {
	if m.bus == nil {
		return nil
	}
	return m.bus.Close()
}
