// SPDX-License-Identifier: MIT

// Package udp publishes each completed spectrum as one binary datagram, for
// plotting tools on the same network.
package udp

import (
	"fmt"
	"net"
	"sync"

	"spectrum/internal/log"
	"spectrum/internal/transport"
)

var logger = log.For("UDP")

// Sender writes datagrams to one target.
type Sender struct {
	conn   *net.UDPConn
	mu     sync.Mutex // protects conn during Close
	closed bool
}

// NewSender targets address, in "host:port" form.
func NewSender(address string) (*Sender, error) {
	addr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve UDP target address '%s': %w", address, err)
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial UDP for target '%s': %w", address, err)
	}

	logger.Infof("sending spectra to %s", conn.RemoteAddr())
	return &Sender{conn: conn}, nil
}

// Send transmits data as one datagram.
func (s *Sender) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return transport.ErrClosed
	}
	if _, err := s.conn.Write(data); err != nil {
		return fmt.Errorf("failed to send UDP packet: %w", err)
	}
	return nil
}

func (s *Sender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close UDP connection: %w", err)
	}
	return nil
}
