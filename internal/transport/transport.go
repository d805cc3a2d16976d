// SPDX-License-Identifier: MIT

// Package transport carries display events off the acquisition loop to
// something that renders them: browsers on a WebSocket, or the log.
package transport

import "errors"

// Transport defines a generic interface for sending display events.
// Implementations must be safe for concurrent use and must not block the
// caller on slow receivers.
type Transport interface {
	Send(data any) error
	Close() error
}

var ErrClosed = errors.New("transport: closed")
