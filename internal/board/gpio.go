// SPDX-License-Identifier: MIT
//go:build !tinygo

package board

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"spectrum/internal/clock"
	"spectrum/internal/input"
)

// edgePoll bounds how long a watcher waits before rechecking its context.
const edgePoll = 100 * time.Millisecond

// Init loads the periph host drivers. It must run before any pin or bus is
// opened.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init failed: %w", err)
	}
	return nil
}

// WatchButtons configures both pins as pulled-up falling-edge inputs, like
// the board's active-low buttons, and feeds their edges to the buttons until
// ctx is done.
func WatchButtons(ctx context.Context, clk clock.Clock, buttons input.Buttons, acquisitionPin, sourcePin string) error {
	for _, p := range []struct {
		name   string
		button *input.Button
	}{
		{acquisitionPin, buttons.Acquisition},
		{sourcePin, buttons.Source},
	} {
		pin := gpioreg.ByName(p.name)
		if pin == nil {
			return fmt.Errorf("gpio pin %s not found", p.name)
		}
		if err := WatchPin(ctx, clk, pin, p.button); err != nil {
			return err
		}
	}
	return nil
}

// WatchPin feeds falling edges on pin to b from its own goroutine.
func WatchPin(ctx context.Context, clk clock.Clock, pin gpio.PinIn, b *input.Button) error {
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return fmt.Errorf("failed to configure %s: %w", pin.Name(), err)
	}
	logger.Infof("%s button on %s", b.Name(), pin.Name())

	go func() {
		defer pin.Halt()
		for ctx.Err() == nil {
			if !pin.WaitForEdge(edgePoll) {
				continue
			}
			if !b.Edge(clk.Now()) {
				logger.Debugf("%s: bounce dropped", b.Name())
			}
		}
	}()
	return nil
}
