// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package schedule

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// RUNNER
// =============================================================================

// Runner sleeps until the loop's next job is due and then signals on C.
// It never runs callbacks itself; the receiver calls Loop.RunDue.
type Runner struct {
	loop    *Loop
	due     chan time.Time
	stop    chan struct{}
	stopped atomic.Bool
	once    sync.Once
	wg      sync.WaitGroup
}

// NewRunner creates a runner for loop.
func NewRunner(loop *Loop) *Runner {
	return &Runner{
		loop: loop,
		due:  make(chan time.Time, 1),
		stop: make(chan struct{}),
	}
}

// C delivers the current time whenever at least one job is due.
func (r *Runner) C() <-chan time.Time {
	return r.due
}

// Start launches the wake loop. It exits when ctx is done or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.run(ctx)
}

// Stop halts the wake loop and waits for it to exit.
func (r *Runner) Stop() {
	r.once.Do(func() {
		r.stopped.Store(true)
		close(r.stop)
	})
	r.wg.Wait()
}

func (r *Runner) run(ctx context.Context) {
	defer r.wg.Done()

	for {
		if r.stopped.Load() {
			return
		}

		var timer *time.Timer
		var timerC <-chan time.Time
		if next, ok := r.loop.NextDue(); ok {
			wait := next.Sub(r.loop.clock.Now())
			if wait < 0 {
				wait = 0
			}
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return
		case <-r.stop:
			stopTimer(timer)
			return
		case <-r.loop.Changed():
			stopTimer(timer)
		case <-timerC:
			select {
			case r.due <- r.loop.clock.Now():
			case <-ctx.Done():
				return
			case <-r.stop:
				return
			}
			// Wait for the consumer to drain before re-arming on the same job.
			select {
			case <-r.loop.Changed():
			case <-time.After(10 * time.Millisecond):
			case <-ctx.Done():
				return
			case <-r.stop:
				return
			}
		}
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}
