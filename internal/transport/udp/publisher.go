// SPDX-License-Identifier: MIT
package udp

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"spectrum/internal/display"
)

// HeaderSize is the length of the packet header in bytes.
const HeaderSize = 4 + 8 + 2

/*
Packet layout, big endian:

	| Sequence (uint32) | Timestamp ns (int64) | Count (uint16) | Magnitudes (Count x float32) |

One packet is sent when the last bin of a spectrum is plotted. Sequence
numbers start at 1 and count spectra, not packets received.
*/

// Publisher is a display.Sink that forwards only the spectrum. Time points
// and status text are ignored.
type Publisher struct {
	sender *Sender
	mags   []float32
	seen   int
	seq    uint32
	packet bytes.Buffer
	now    func() time.Time
}

// NewPublisher sends spectra of bins magnitudes through sender.
func NewPublisher(sender *Sender, bins int) *Publisher {
	bins = min(max(bins, 1), math.MaxUint16)
	p := &Publisher{
		sender: sender,
		mags:   make([]float32, bins),
		now:    time.Now,
	}
	p.packet.Grow(HeaderSize + 4*bins)
	return p
}

func (p *Publisher) ResetTimeView()                            {}
func (p *Publisher) PlotTimePoint(int, float64)                {}
func (p *Publisher) RescaleTimeAxis(_, _, _ float64)           {}
func (p *Publisher) SetStatusText(display.StatusField, string) {}

func (p *Publisher) ResetFrequencyView() {
	clear(p.mags)
	p.seen = 0
}

func (p *Publisher) PlotFrequencyPoint(index int, magnitude float64) {
	if index < 0 || index >= len(p.mags) {
		return
	}
	p.mags[index] = float32(magnitude)
	p.seen++
	if index == len(p.mags)-1 {
		p.publish()
	}
}

// Sequence returns the number of the last packet built.
func (p *Publisher) Sequence() uint32 { return p.seq }

func (p *Publisher) publish() {
	p.seq++
	p.packet.Reset()

	// Writes to a bytes.Buffer cannot fail.
	binary.Write(&p.packet, binary.BigEndian, p.seq)
	binary.Write(&p.packet, binary.BigEndian, p.now().UnixNano())
	binary.Write(&p.packet, binary.BigEndian, uint16(len(p.mags)))
	binary.Write(&p.packet, binary.BigEndian, p.mags)

	if err := p.sender.Send(p.packet.Bytes()); err != nil {
		logger.Warnf("packet %d: %v", p.seq, err)
		return
	}
	logger.Debugf("sent packet %d (%d bytes, %d bins plotted)", p.seq, p.packet.Len(), p.seen)
}

// Close closes the sender.
func (p *Publisher) Close() error { return p.sender.Close() }

var _ display.Sink = (*Publisher)(nil)
