// SPDX-License-Identifier: MIT
package transport

import (
	"encoding/json"
	"sync/atomic"

	"spectrum/internal/log"
)

// LoggingTransport writes every event to the diagnostic log as JSON at debug
// level.
type LoggingTransport struct {
	logger log.Logger
	sent   atomic.Uint64
	closed atomic.Bool
}

func NewLoggingTransport() *LoggingTransport {
	lt := &LoggingTransport{logger: log.For("LogTransport")}
	lt.logger.Infof("events logged at debug level")
	return lt
}

func (lt *LoggingTransport) Send(data any) error {
	if lt.closed.Load() {
		return ErrClosed
	}
	lt.sent.Add(1)
	if log.GetLevel() > log.LevelDebug {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		lt.logger.Debugf("%T %+v (marshal error: %v)", data, data, err)
		return nil
	}
	lt.logger.Debugf("%s", raw)
	return nil
}

// Sent returns the number of events accepted so far.
func (lt *LoggingTransport) Sent() uint64 { return lt.sent.Load() }

func (lt *LoggingTransport) Close() error {
	if lt.closed.Swap(true) {
		return nil
	}
	lt.logger.Infof("closed after %d events", lt.sent.Load())
	return nil
}

var _ Transport = (*LoggingTransport)(nil)
