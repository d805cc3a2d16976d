// SPDX-License-Identifier: MIT
package clock

import (
	"sync"
	"testing"
	"time"
)

func TestManualAdvance(t *testing.T) {
	t.Parallel()
	c := NewManual(time.Second)
	if got := c.Advance(250 * time.Millisecond); got != 1250*time.Millisecond {
		t.Errorf("Advance() = %v, want 1.25s", got)
	}
	c.Set(0)
	if got := c.Now(); got != 0 {
		t.Errorf("Now() after Set(0) = %v, want 0", got)
	}
}

func TestManualConcurrentReaders(t *testing.T) {
	t.Parallel()
	c := NewManual(0)
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				_ = c.Now()
			}
		}()
	}
	for range 1000 {
		c.Advance(time.Microsecond)
	}
	wg.Wait()
	if got := c.Now(); got != time.Millisecond {
		t.Errorf("Now() = %v, want 1ms", got)
	}
}

func TestSystemIsMonotonic(t *testing.T) {
	t.Parallel()
	c := NewSystem()
	a := c.Now()
	b := c.Now()
	if b < a {
		t.Errorf("system clock went backwards: %v then %v", a, b)
	}
}
