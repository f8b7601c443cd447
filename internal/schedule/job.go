// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package schedule

import (
	"sync/atomic"
	"time"
)

// =============================================================================
// JOB STATUS
// =============================================================================

// Status is the lifecycle state of a Job.
type Status int32

const (
	// StatusPending means the job is waiting for its due time
	StatusPending Status = iota

	// StatusFired means the callback has been invoked
	StatusFired

	// StatusCanceled means the owning scope closed before the job fired
	StatusCanceled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusFired:
		return "Fired"
	case StatusCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// =============================================================================
// JOB
// =============================================================================

// Job is one scheduled callback.
type Job struct {
	// ID is a unique identifier for this job
	ID string

	// Due is when the job becomes runnable
	Due time.Time

	scope  *Scope
	seq    uint64
	fn     func(time.Time)
	status atomic.Int32
	index  int // heap position, -1 once removed
}

// Status returns the job's current state.
func (j *Job) Status() Status {
	return Status(j.status.Load())
}

// Scope returns the name of the scope that owns the job.
func (j *Job) Scope() string {
	return j.scope.name
}

func (j *Job) setStatus(s Status) {
	j.status.Store(int32(s))
}

// =============================================================================
// JOB HEAP
// =============================================================================

// jobHeap implements container/heap ordered by (Due, seq).
type jobHeap []*Job

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if h[i].Due.Equal(h[j].Due) {
		return h[i].seq < h[j].seq
	}
	return h[i].Due.Before(h[j].Due)
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *jobHeap) Push(x any) {
	job := x.(*Job)
	job.index = len(*h)
	*h = append(*h, job)
}

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	job := old[n-1]
	old[n-1] = nil
	job.index = -1
	*h = old[:n-1]
	return job
}
