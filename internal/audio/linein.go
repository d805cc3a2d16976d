// SPDX-License-Identifier: MIT
package audio

import (
	"errors"
	"math"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"

	"spectrum/internal/source"
)

// LineInFrames is the PortAudio buffer size. Small buffers keep the latest
// sample close to the time the acquisition loop asks for it.
const LineInFrames = 64

var ErrNotStarted = errors.New("line-in stream not started")

// LineIn keeps the most recent sample of a mono PortAudio input stream and
// presents it as a 12-bit ADC reading. The stream callback and ReadRaw meet
// only through an atomic.
type LineIn struct {
	device *portaudio.DeviceInfo
	stream *portaudio.Stream
	latest atomic.Uint32 // float32 bits
}

// NewLineIn prepares the input device with the given ID.
// PortAudio must be initialized.
func NewLineIn(deviceID int) (*LineIn, error) {
	device, err := InputDevice(deviceID)
	if err != nil {
		return nil, err
	}
	return &LineIn{device: device}, nil
}

// Start opens and starts the stream at the device's default rate.
func (l *LineIn) Start() error {
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Channels: 1,
			Device:   l.device,
			Latency:  l.device.DefaultLowInputLatency,
		},
		FramesPerBuffer: LineInFrames,
		SampleRate:      l.device.DefaultSampleRate,
	}

	stream, err := portaudio.OpenStream(params, l.process)
	if err != nil {
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return err
	}
	l.stream = stream

	logger.Infof("line-in started on %s at %.0f Hz", l.device.Name, l.device.DefaultSampleRate)
	return nil
}

// Stop stops and closes the stream.
func (l *LineIn) Stop() error {
	if l.stream == nil {
		return ErrNotStarted
	}
	if err := l.stream.Stop(); err != nil {
		return err
	}
	if err := l.stream.Close(); err != nil {
		return err
	}
	l.stream = nil
	return nil
}

// process runs on the PortAudio thread; it must not allocate.
func (l *LineIn) process(in []float32) {
	if len(in) == 0 {
		return
	}
	l.latest.Store(math.Float32bits(in[len(in)-1]))
}

// ReadRaw maps the latest sample from [-1, 1] onto [0, AnalogRawMax].
func (l *LineIn) ReadRaw() int {
	return RawFromFloat(math.Float32frombits(l.latest.Load()))
}

// RawFromFloat maps a normalized audio sample onto the 12-bit ADC range.
// Values outside [-1, 1] are clamped.
func RawFromFloat(v float32) int {
	switch {
	case v != v:
		v = 0
	case v < -1:
		v = -1
	case v > 1:
		v = 1
	}
	return int(math.Round(float64(v+1) / 2 * source.AnalogRawMax))
}

var _ source.RawReader = (*LineIn)(nil)
