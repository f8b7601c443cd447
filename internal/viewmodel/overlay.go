// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewmodel

import (
	"fmt"
	"time"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
)

// =============================================================================
// OVERLAY STATE MACHINE
// =============================================================================

// Overlay is the task detail panel. It is either Closed or Open(task); the
// zero value is Closed. Open while already open retargets to the new task.
type Overlay struct {
	open     bool
	task     catalog.Type
	openedAt time.Time
}

// Open moves to Open(t). The reveal animation restarts at at.
func (o *Overlay) Open(t catalog.Type, at time.Time) {
	o.open = true
	o.task = t
	o.openedAt = at
}

// Close moves to Closed and reports whether the overlay was open.
func (o *Overlay) Close() bool {
	was := o.open
	o.open = false
	o.task = catalog.None
	o.openedAt = time.Time{}
	return was
}

// Dismiss is the explicit close action.
func (o *Overlay) Dismiss() bool { return o.Close() }

// Start is the confirmatory action. It closes the overlay like Dismiss.
func (o *Overlay) Start() bool { return o.Close() }

// IsOpen reports whether the overlay is open.
func (o Overlay) IsOpen() bool {
	return o.open
}

// Task returns the active task type, or None when closed.
func (o Overlay) Task() catalog.Type {
	return o.task
}

// OpenedAt returns when the overlay was last opened or retargeted.
func (o Overlay) OpenedAt() time.Time {
	return o.openedAt
}

// String renders the state as "Closed" or "Open(code)".
func (o Overlay) String() string {
	if !o.open {
		return "Closed"
	}
	return fmt.Sprintf("Open(%s)", o.task)
}

// =============================================================================
// RENDER CONTRACT
// =============================================================================

// Content returns what the overlay should display. The second result is false
// when the overlay is closed or its task type is not in the catalog, in which
// case renderers draw nothing.
func (o Overlay) Content() (catalog.Info, bool) {
	if !o.open {
		return catalog.Info{}, false
	}
	return catalog.Lookup(o.task)
}

// Revealed returns how many features are visible at now when feature i
// appears i*step after opening. A non-positive step reveals everything.
func (o Overlay) Revealed(now time.Time, step time.Duration) int {
	info, ok := o.Content()
	if !ok {
		return 0
	}
	total := len(info.Features)
	if step <= 0 {
		return total
	}
	elapsed := now.Sub(o.openedAt)
	if elapsed < 0 {
		return 0
	}
	n := int(elapsed/step) + 1
	if n > total {
		n = total
	}
	return n
}

// RevealDone reports whether every feature is visible at now.
func (o Overlay) RevealDone(now time.Time, step time.Duration) bool {
	info, ok := o.Content()
	if !ok {
		return true
	}
	return o.Revealed(now, step) >= len(info.Features)
}
