// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewmodel

import (
	"strings"
	"time"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/model"
	"github.com/jeranaias/mindeep-tui/internal/reply"
	"github.com/jeranaias/mindeep-tui/internal/schedule"
)

// DefaultReplyDelay is how long the synthetic reply takes to arrive.
const DefaultReplyDelay = 1500 * time.Millisecond

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Surface.
type Options struct {
	// Loop schedules replies. Nil creates a private loop on the real clock.
	Loop *schedule.Loop

	// Composer renders replies. Nil selects the default template.
	Composer *reply.Composer

	// ReplyDelay is the reply latency. Zero selects DefaultReplyDelay.
	ReplyDelay time.Duration

	// Greeting is the initial assistant message. Empty means none.
	Greeting string

	// Observer receives every state change.
	Observer Observer
}

// =============================================================================
// SURFACE
// =============================================================================

// Surface is the state of one conversation view. It is not safe for
// concurrent use; drive it and its loop's RunDue from one goroutine.
type Surface struct {
	conv      *model.Conversation
	input     string
	selected  catalog.Type
	listening bool
	overlay   Overlay
	closed    bool

	loop     *schedule.Loop
	scope    *schedule.Scope
	composer *reply.Composer
	delay    time.Duration
	observer Observer
}

// NewSurface creates a surface. When opts.Greeting is set the timeline starts
// with it as an assistant message.
func NewSurface(opts Options) *Surface {
	loop := opts.Loop
	if loop == nil {
		loop = schedule.NewLoop(schedule.Real)
	}
	composer := opts.Composer
	if composer == nil {
		composer = reply.Default()
	}
	delay := opts.ReplyDelay
	if delay <= 0 {
		delay = DefaultReplyDelay
	}

	s := &Surface{
		conv:     model.NewConversation(),
		loop:     loop,
		scope:    loop.NewScope("surface"),
		composer: composer,
		delay:    delay,
		observer: opts.Observer,
	}
	if opts.Greeting != "" {
		s.conv.Append(model.NewMessage(model.RoleAssistant, opts.Greeting, catalog.None, s.now()))
	}
	return s
}

func (s *Surface) now() time.Time {
	return s.loop.Clock().Now()
}

func (s *Surface) emit(e Event) {
	if s.observer != nil {
		s.observer(e)
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Messages returns a copy of the timeline.
func (s *Surface) Messages() []model.Message { return s.conv.Messages() }

// Conversation exposes the timeline for read-only helpers such as LastByRole.
func (s *Surface) Conversation() *model.Conversation { return s.conv }

// Input returns the current input text.
func (s *Surface) Input() string { return s.input }

// Selected returns the selected task type, or None.
func (s *Surface) Selected() catalog.Type { return s.selected }

// Listening returns the cosmetic microphone flag.
func (s *Surface) Listening() bool { return s.listening }

// Overlay returns a snapshot of the overlay state.
func (s *Surface) Overlay() Overlay { return s.overlay }

// PendingReplies returns how many replies have been scheduled but not delivered.
func (s *Surface) PendingReplies() int { return s.scope.Pending() }

// ReplyDelay returns the configured reply latency.
func (s *Surface) ReplyDelay() time.Duration { return s.delay }

// Closed reports whether the surface has been torn down.
func (s *Surface) Closed() bool { return s.closed }

// SetReplyDelay changes the latency of replies scheduled from now on.
func (s *Surface) SetReplyDelay(d time.Duration) {
	if d <= 0 {
		d = DefaultReplyDelay
	}
	s.delay = d
}

// SetComposer swaps the reply template for future submissions.
func (s *Surface) SetComposer(c *reply.Composer) {
	if c != nil {
		s.composer = c
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// SetInput replaces the input text.
func (s *Surface) SetInput(text string) {
	if s.closed {
		return
	}
	s.input = text
}

// SubmitInput submits the current input text.
func (s *Surface) SubmitInput() (model.Message, bool) {
	return s.Submit(s.input)
}

// Submit appends text as a user message tagged with the current selection,
// clears the input and the selection, and schedules the synthetic reply.
// Blank text is ignored and leaves the input untouched.
func (s *Surface) Submit(text string) (model.Message, bool) {
	if s.closed || strings.TrimSpace(text) == "" {
		return model.Message{}, false
	}

	task := s.selected
	msg := model.NewMessage(model.RoleUser, text, task, s.now())
	s.conv.Append(msg)
	s.emit(Event{Kind: EventMessageAppended, Message: msg, Task: task})

	s.input = ""
	if task != catalog.None {
		s.selected = catalog.None
		s.emit(Event{Kind: EventTaskCleared, Task: task})
	}

	content := s.composer.Compose(text, task)
	job, err := s.scope.After(s.delay, func(now time.Time) {
		s.deliver(content, now)
	})
	if err == nil {
		s.emit(Event{Kind: EventReplyScheduled, Task: task, Due: job.Due})
	}
	return msg, true
}

func (s *Surface) deliver(content string, now time.Time) {
	if s.closed {
		s.emit(Event{Kind: EventReplyDropped})
		return
	}
	msg := model.NewMessage(model.RoleAssistant, content, catalog.None, now)
	s.conv.Append(msg)
	s.emit(Event{Kind: EventMessageAppended, Message: msg})
}

// SelectTask toggles t in the quick-action selector. Reselecting the current
// task clears the selection and leaves the overlay as it is. Selecting a
// different task also opens the overlay on it. None is ignored.
func (s *Surface) SelectTask(t catalog.Type) {
	if s.closed || t.IsNone() {
		return
	}
	if t == s.selected {
		s.selected = catalog.None
		s.emit(Event{Kind: EventTaskCleared, Task: t})
		return
	}
	s.selected = t
	s.emit(Event{Kind: EventTaskSelected, Task: t})
	s.OpenOverlay(t)
}

// ToggleListening flips the microphone flag. Nothing is recorded.
func (s *Surface) ToggleListening() bool {
	if s.closed {
		return s.listening
	}
	s.listening = !s.listening
	s.emit(Event{Kind: EventListeningToggled, Listening: s.listening})
	return s.listening
}

// OpenOverlay opens (or retargets) the detail overlay on t.
func (s *Surface) OpenOverlay(t catalog.Type) {
	if s.closed {
		return
	}
	s.overlay.Open(t, s.now())
	s.emit(Event{Kind: EventOverlayOpened, Task: t})
}

// DismissOverlay closes the overlay through its close control.
func (s *Surface) DismissOverlay() {
	s.closeOverlay(s.overlay.Dismiss)
}

// StartTask closes the overlay through its start control. It has the same
// effect as DismissOverlay.
func (s *Surface) StartTask() {
	s.closeOverlay(s.overlay.Start)
}

func (s *Surface) closeOverlay(action func() bool) {
	task := s.overlay.Task()
	if action() {
		s.emit(Event{Kind: EventOverlayClosed, Task: task})
	}
}

// Close tears the surface down. Pending replies are canceled and later calls
// are no-ops. It returns the number of replies dropped.
func (s *Surface) Close() int {
	if s.closed {
		return 0
	}
	s.closed = true
	dropped := s.scope.Close()
	for i := 0; i < dropped; i++ {
		s.emit(Event{Kind: EventReplyDropped})
	}
	return dropped
}
