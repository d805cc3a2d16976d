// SPDX-License-Identifier: MIT
package utils

import "sync"

// MockTransport implements the transport interface for testing. Events are
// kept in arrival order for later inspection instead of being transmitted.
type MockTransport struct {
	mu     sync.Mutex
	Events []any
	Closed bool
}

// Send records the event.
func (m *MockTransport) Send(data any) error {
	m.mu.Lock()
	m.Events = append(m.Events, data)
	m.mu.Unlock()
	return nil
}

// Close marks the transport closed.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the recorded events.
func (m *MockTransport) Snapshot() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]any, len(m.Events))
	copy(out, m.Events)
	return out
}
