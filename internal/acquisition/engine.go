// SPDX-License-Identifier: MIT
package acquisition

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"spectrum/internal/clock"
	"spectrum/internal/display"
	"spectrum/internal/input"
	"spectrum/internal/source"
)

// Options configures an Engine.
type Options struct {
	SingleShot   bool
	StartupDelay time.Duration
}

// Engine owns the buffer, state and spectrum and runs the polling loop on a
// single goroutine.
type Engine struct {
	clk        clock.Clock
	state      *State
	controller *Controller
	scheduler  *Scheduler
	status     *StatusBar
	opts       Options
}

func NewEngine(clk clock.Clock, bank *source.Bank, buttons input.Buttons, sink display.Sink, opts Options) (*Engine, error) {
	if opts.StartupDelay < 0 {
		return nil, fmt.Errorf("startup delay must not be negative, got %v", opts.StartupDelay)
	}

	state := &State{SingleShot: opts.SingleShot}
	ctrl := NewController(state, bank, buttons)
	sched, err := NewScheduler(state, bank, sink)
	if err != nil {
		return nil, err
	}

	return &Engine{
		clk:        clk,
		state:      state,
		controller: ctrl,
		scheduler:  sched,
		status:     NewStatusBar(sink),
		opts:       opts,
	}, nil
}

// AddObserver registers o for every completed cycle.
func (e *Engine) AddObserver(o CycleObserver) { e.scheduler.AddObserver(o) }

// Controller exposes the controller, for drivers that act on it directly.
func (e *Engine) Controller() *Controller { return e.controller }

// Scheduler exposes the scheduler's counters.
func (e *Engine) Scheduler() *Scheduler { return e.scheduler }

// State returns a copy of the current state.
func (e *Engine) State() State { return *e.state }

// Step runs one loop iteration: buttons, status bar, then one poll.
func (e *Engine) Step() error {
	now := e.clk.Now()
	e.controller.Service(now)
	e.status.Refresh(now, *e.state)
	return e.scheduler.Poll(now)
}

// Run waits out the startup delay and then loops until ctx is done or a
// buffer overrun occurs. It returns nil on cancellation.
func (e *Engine) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if e.opts.StartupDelay > 0 {
		t := time.NewTimer(e.opts.StartupDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}

	logger.Infof("sample rate established: %d Hz (period %v)", e.state.SampleRate, e.state.SamplePeriod())

	for {
		select {
		case <-ctx.Done():
			logger.Infof("loop stopped after %d cycles", e.scheduler.Cycles())
			return nil
		default:
		}

		if err := e.Step(); err != nil {
			return err
		}
		runtime.Gosched()
	}
}
