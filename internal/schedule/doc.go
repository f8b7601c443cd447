// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package schedule provides a single-threaded timer queue for deferred UI work.
//
// Jobs are registered through a Scope, which ties them to the lifetime of the
// component that scheduled them. Closing the Scope cancels everything it still
// has pending, so a torn-down view is never called back.
//
// Callbacks never run on a background goroutine. The owner of the Loop calls
// RunDue from its own event loop (a bubbletea Update, a REPL select) and due
// jobs fire there in (due time, registration order).
//
// # Key Types
//
//   - Loop: Min-heap of pending jobs
//   - Scope: Lifetime-bound cancellation handle
//   - Job: A scheduled callback with status Pending, Fired or Canceled
//   - Clock: Time source (Real, or Manual for tests)
//   - Runner: Background waker that signals when jobs fall due
//
// # Usage
//
//	loop := schedule.NewLoop(schedule.Real)
//	scope := loop.NewScope("surface")
//	defer scope.Close()
//
//	scope.After(1500*time.Millisecond, func(now time.Time) {
//	    fmt.Println("fired at", now)
//	})
//
//	// later, from the event loop:
//	loop.RunDue(time.Now())
package schedule
