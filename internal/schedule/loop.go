// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package schedule

import (
	"container/heap"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrScopeClosed is returned when scheduling on a closed scope.
var ErrScopeClosed = errors.New("schedule: scope closed")

// =============================================================================
// LOOP
// =============================================================================

// Loop holds pending jobs in due order. Registration and inspection are safe
// from any goroutine; callbacks run on whichever goroutine calls RunDue.
type Loop struct {
	clock Clock

	mu   sync.Mutex
	jobs jobHeap
	seq  uint64

	// notify is signaled whenever the head of the queue may have changed
	notify chan struct{}
}

// NewLoop creates an empty loop. A nil clock selects Real.
func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = Real
	}
	return &Loop{
		clock:  clock,
		jobs:   make(jobHeap, 0),
		notify: make(chan struct{}, 1),
	}
}

// Clock returns the loop's time source.
func (l *Loop) Clock() Clock {
	return l.clock
}

// NewScope creates a cancellation scope on this loop.
func (l *Loop) NewScope(name string) *Scope {
	return &Scope{
		loop:    l,
		name:    name,
		pending: make(map[*Job]struct{}),
	}
}

// Pending returns the number of jobs waiting to fire.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.jobs)
}

// NextDue returns the due time of the earliest pending job.
func (l *Loop) NextDue() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.jobs) == 0 {
		return time.Time{}, false
	}
	return l.jobs[0].Due, true
}

// Changed is signaled whenever a job is added or removed.
func (l *Loop) Changed() <-chan struct{} {
	return l.notify
}

// RunDue fires every job due at or before now, in order, and returns how many
// fired. The lock is released around each callback so callbacks may schedule
// further jobs; a job scheduled that way fires in this call only if it is
// already due.
func (l *Loop) RunDue(now time.Time) int {
	fired := 0
	for {
		l.mu.Lock()
		if len(l.jobs) == 0 || l.jobs[0].Due.After(now) {
			l.mu.Unlock()
			if fired > 0 {
				l.signal()
			}
			return fired
		}
		job := heap.Pop(&l.jobs).(*Job)
		delete(job.scope.pending, job)
		job.setStatus(StatusFired)
		l.mu.Unlock()

		job.fn(now)
		fired++
	}
}

func (l *Loop) add(s *Scope, delay time.Duration, fn func(time.Time)) (*Job, error) {
	if delay < 0 {
		delay = 0
	}

	l.mu.Lock()
	if s.closed {
		l.mu.Unlock()
		return nil, ErrScopeClosed
	}
	l.seq++
	job := &Job{
		ID:    uuid.NewString(),
		Due:   l.clock.Now().Add(delay),
		scope: s,
		seq:   l.seq,
		fn:    fn,
	}
	heap.Push(&l.jobs, job)
	s.pending[job] = struct{}{}
	l.mu.Unlock()

	l.signal()
	return job, nil
}

func (l *Loop) signal() {
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// =============================================================================
// SCOPE
// =============================================================================

// Scope groups jobs by owner lifetime.
type Scope struct {
	loop    *Loop
	name    string
	closed  bool
	pending map[*Job]struct{}
}

// Name returns the scope's label.
func (s *Scope) Name() string {
	return s.name
}

// After schedules fn to run delay from now. It fails only when the scope is
// already closed.
func (s *Scope) After(delay time.Duration, fn func(time.Time)) (*Job, error) {
	return s.loop.add(s, delay, fn)
}

// Pending returns how many of this scope's jobs have not fired.
func (s *Scope) Pending() int {
	s.loop.mu.Lock()
	defer s.loop.mu.Unlock()
	return len(s.pending)
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.loop.mu.Lock()
	defer s.loop.mu.Unlock()
	return s.closed
}

// Close cancels every pending job of the scope and refuses new ones. It
// returns the number of jobs canceled. Closing twice is a no-op.
func (s *Scope) Close() int {
	l := s.loop
	l.mu.Lock()
	if s.closed {
		l.mu.Unlock()
		return 0
	}
	s.closed = true
	canceled := 0
	for job := range s.pending {
		if job.index >= 0 {
			heap.Remove(&l.jobs, job.index)
		}
		job.setStatus(StatusCanceled)
		canceled++
	}
	s.pending = make(map[*Job]struct{})
	l.mu.Unlock()

	if canceled > 0 {
		l.signal()
	}
	return canceled
}
