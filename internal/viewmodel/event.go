// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewmodel

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/model"
)

// EventKind identifies what changed.
type EventKind int

const (
	EventMessageAppended EventKind = iota
	EventTaskSelected
	EventTaskCleared
	EventOverlayOpened
	EventOverlayClosed
	EventListeningToggled
	EventReplyScheduled
	EventReplyDropped
)

// String returns a snake_case name suitable for log fields.
func (k EventKind) String() string {
	switch k {
	case EventMessageAppended:
		return "message_appended"
	case EventTaskSelected:
		return "task_selected"
	case EventTaskCleared:
		return "task_cleared"
	case EventOverlayOpened:
		return "overlay_opened"
	case EventOverlayClosed:
		return "overlay_closed"
	case EventListeningToggled:
		return "listening_toggled"
	case EventReplyScheduled:
		return "reply_scheduled"
	case EventReplyDropped:
		return "reply_dropped"
	default:
		return "unknown"
	}
}

// Event describes one state change of a Surface. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind EventKind

	// Message is set for EventMessageAppended
	Message model.Message

	// Task is set for selection and overlay events
	Task catalog.Type

	// Listening is the new flag value for EventListeningToggled
	Listening bool

	// Due is the fire time for EventReplyScheduled
	Due time.Time
}

// Observer receives events synchronously on the goroutine that caused them.
type Observer func(Event)

// Chain fans an event out to every non-nil observer in order.
func Chain(observers ...Observer) Observer {
	return func(e Event) {
		for _, o := range observers {
			if o != nil {
				o(e)
			}
		}
	}
}

// LogEvents returns an observer that writes each event to logger at debug
// level. Message content is never logged, only its size.
func LogEvents(logger zerolog.Logger) Observer {
	return func(e Event) {
		ev := logger.Debug().Str("event", e.Kind.String())
		if !e.Task.IsNone() {
			ev = ev.Str("task", e.Task.String())
		}
		switch e.Kind {
		case EventMessageAppended:
			ev = ev.Str("message_id", e.Message.ID).
				Str("role", e.Message.Role.String()).
				Int("chars", len(e.Message.Content))
		case EventListeningToggled:
			ev = ev.Bool("listening", e.Listening)
		case EventReplyScheduled:
			ev = ev.Time("due", e.Due)
		}
		ev.Msg("surface event")
	}
}
