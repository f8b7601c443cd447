// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/model"
	"github.com/jeranaias/mindeep-tui/internal/reply"
	"github.com/jeranaias/mindeep-tui/internal/schedule"
)

var epoch = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

type harness struct {
	clock   *schedule.Manual
	loop    *schedule.Loop
	surface *Surface
	events  []Event
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{clock: schedule.NewManual(epoch)}
	h.loop = schedule.NewLoop(h.clock)
	opts.Loop = h.loop
	opts.Observer = func(e Event) { h.events = append(h.events, e) }
	h.surface = NewSurface(opts)
	return h
}

// advance moves the clock and fires whatever fell due.
func (h *harness) advance(d time.Duration) int {
	return h.loop.RunDue(h.clock.Advance(d))
}

func (h *harness) kinds() []EventKind {
	out := make([]EventKind, len(h.events))
	for i, e := range h.events {
		out[i] = e.Kind
	}
	return out
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewSurface_Greeting(t *testing.T) {
	const greeting = "Hello! How can I assist you today?"
	h := newHarness(t, Options{Greeting: greeting})

	msgs := h.surface.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleAssistant, msgs[0].Role)
	assert.Equal(t, greeting, msgs[0].Content)
	assert.False(t, msgs[0].Tagged())
}

func TestNewSurface_Defaults(t *testing.T) {
	h := newHarness(t, Options{})

	assert.Empty(t, h.surface.Messages())
	assert.Equal(t, DefaultReplyDelay, h.surface.ReplyDelay())
	assert.Equal(t, catalog.None, h.surface.Selected())
	assert.False(t, h.surface.Listening())
	assert.False(t, h.surface.Overlay().IsOpen())
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmit_AppendsUserMessageAndClearsInput(t *testing.T) {
	texts := []string{"hi", "  padded  ", "multi\nline", "日本語"}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			h := newHarness(t, Options{})
			h.surface.SetInput(text)

			msg, ok := h.surface.SubmitInput()
			require.True(t, ok)

			msgs := h.surface.Messages()
			require.Len(t, msgs, 1)
			assert.Equal(t, model.RoleUser, msgs[0].Role)
			assert.Equal(t, text, msgs[0].Content)
			assert.Equal(t, msg.ID, msgs[0].ID)
			assert.Equal(t, epoch, msgs[0].Timestamp)
			assert.Empty(t, h.surface.Input())
		})
	}
}

func TestSubmit_BlankIsNoOp(t *testing.T) {
	blanks := []string{"", " ", "\t\n", "   \r\n "}
	for _, text := range blanks {
		t.Run("blank", func(t *testing.T) {
			h := newHarness(t, Options{})
			h.surface.SetInput(text)
			h.surface.SelectTask(catalog.Code)
			h.events = nil

			_, ok := h.surface.SubmitInput()
			assert.False(t, ok)
			assert.Empty(t, h.surface.Messages())
			assert.Equal(t, text, h.surface.Input())
			assert.Equal(t, catalog.Code, h.surface.Selected())
			assert.Equal(t, 0, h.surface.PendingReplies())
			assert.Empty(t, h.events)
		})
	}
}

func TestSubmit_ReplyAfterFixedDelay(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.Submit("hello")

	assert.Equal(t, 1, h.surface.PendingReplies())
	assert.Equal(t, 0, h.advance(1499*time.Millisecond))
	assert.Len(t, h.surface.Messages(), 1)

	assert.Equal(t, 1, h.advance(time.Millisecond))
	msgs := h.surface.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "hello")
	assert.Equal(t, epoch.Add(DefaultReplyDelay), msgs[1].Timestamp)
	assert.Equal(t, 0, h.surface.PendingReplies())
}

func TestSubmit_WithSelectionTagsAndResets(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.SelectTask(catalog.Summarize)
	h.surface.SetInput("Summarize this PDF")
	h.surface.SubmitInput()

	msgs := h.surface.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Summarize this PDF", msgs[0].Content)
	assert.Equal(t, catalog.Summarize, msgs[0].TaskType)
	assert.Equal(t, catalog.None, h.surface.Selected())

	h.advance(DefaultReplyDelay)
	msgs = h.surface.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, catalog.Summarize, msgs[0].TaskType)
	assert.Contains(t, msgs[1].Content, "Summarize this PDF")
	assert.Contains(t, msgs[1].Content, "summarize task")
}

func TestSubmit_MultipleInFlightResolveFIFO(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.Submit("first")
	h.clock.Advance(200 * time.Millisecond)
	h.surface.Submit("second")
	h.surface.Submit("third")

	assert.Equal(t, 3, h.surface.PendingReplies())

	h.advance(1300 * time.Millisecond)
	msgs := h.surface.Messages()
	require.Len(t, msgs, 4)
	assert.Contains(t, msgs[3].Content, `"first"`)

	h.advance(200 * time.Millisecond)
	msgs = h.surface.Messages()
	require.Len(t, msgs, 6)
	assert.Contains(t, msgs[4].Content, `"second"`)
	assert.Contains(t, msgs[5].Content, `"third"`)
}

func TestSubmit_ReplyUsesCapturedTask(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.SelectTask(catalog.Code)
	h.surface.Submit("fix my loop")
	h.surface.SelectTask(catalog.Browse)

	h.advance(DefaultReplyDelay)
	last, ok := h.surface.Conversation().Last()
	require.True(t, ok)
	assert.Contains(t, last.Content, "This looks like a code task.")
	assert.NotContains(t, last.Content, "browse")
}

func TestSubmit_CustomDelayAndComposer(t *testing.T) {
	composer, err := reply.New("echo: {{{text}}}")
	require.NoError(t, err)
	h := newHarness(t, Options{ReplyDelay: 50 * time.Millisecond, Composer: composer})

	h.surface.Submit("ping")
	h.advance(50 * time.Millisecond)

	last, _ := h.surface.Conversation().Last()
	assert.Equal(t, "echo: ping", last.Content)

	h.surface.SetReplyDelay(0)
	assert.Equal(t, DefaultReplyDelay, h.surface.ReplyDelay())
}

// =============================================================================
// SELECT TASK
// =============================================================================

func TestSelectTask_TogglePeriodTwo(t *testing.T) {
	for _, typ := range catalog.All() {
		t.Run(typ.String(), func(t *testing.T) {
			h := newHarness(t, Options{})
			h.surface.SelectTask(typ)
			assert.Equal(t, typ, h.surface.Selected())
			h.surface.SelectTask(typ)
			assert.Equal(t, catalog.None, h.surface.Selected())
		})
	}
}

func TestSelectTask_OpensOverlay(t *testing.T) {
	for _, typ := range catalog.All() {
		t.Run(typ.String(), func(t *testing.T) {
			h := newHarness(t, Options{})
			h.surface.SelectTask(typ)

			ov := h.surface.Overlay()
			assert.True(t, ov.IsOpen())
			assert.Equal(t, typ, ov.Task())
		})
	}
}

func TestSelectTask_DeselectLeavesOverlayOpen(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.SelectTask(catalog.Code)
	h.surface.SelectTask(catalog.Code)

	assert.Equal(t, catalog.None, h.surface.Selected())
	ov := h.surface.Overlay()
	assert.True(t, ov.IsOpen())
	assert.Equal(t, catalog.Code, ov.Task())

	info, ok := ov.Content()
	require.True(t, ok)
	assert.Equal(t, "Code Assistance", info.Title)
}

func TestSelectTask_DeselectDoesNotReopenClosedOverlay(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.SelectTask(catalog.Code)
	h.surface.DismissOverlay()
	h.surface.SelectTask(catalog.Code)

	assert.False(t, h.surface.Overlay().IsOpen())
}

func TestSelectTask_RetargetsOpenOverlay(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.SelectTask(catalog.Calendar)
	h.clock.Advance(time.Second)
	h.surface.SelectTask(catalog.Analyze)

	ov := h.surface.Overlay()
	assert.Equal(t, catalog.Analyze, h.surface.Selected())
	assert.Equal(t, catalog.Analyze, ov.Task())
	assert.Equal(t, epoch.Add(time.Second), ov.OpenedAt())
}

func TestSelectTask_AtMostOneSelected(t *testing.T) {
	h := newHarness(t, Options{})
	for _, typ := range catalog.All() {
		h.surface.SelectTask(typ)
		assert.Equal(t, typ, h.surface.Selected())
	}
}

func TestSelectTask_NoneIsIgnored(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.SelectTask(catalog.None)
	assert.Empty(t, h.events)

	h.surface.SelectTask(catalog.Browse)
	h.events = nil
	h.surface.SelectTask(catalog.None)
	assert.Equal(t, catalog.Browse, h.surface.Selected())
	assert.Empty(t, h.events)
}

// =============================================================================
// LISTENING & OVERLAY CONTROLS
// =============================================================================

func TestToggleListening(t *testing.T) {
	h := newHarness(t, Options{})
	assert.True(t, h.surface.ToggleListening())
	assert.True(t, h.surface.Listening())
	assert.False(t, h.surface.ToggleListening())
	assert.Empty(t, h.surface.Messages())
}

func TestStartAndDismissCloseIdentically(t *testing.T) {
	for name, action := range map[string]func(*Surface){
		"dismiss": (*Surface).DismissOverlay,
		"start":   (*Surface).StartTask,
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, Options{})
			h.surface.SelectTask(catalog.Browse)
			h.surface.SetInput("draft")

			action(h.surface)

			assert.False(t, h.surface.Overlay().IsOpen())
			assert.Equal(t, catalog.Browse, h.surface.Selected())
			assert.Equal(t, "draft", h.surface.Input())
			assert.Empty(t, h.surface.Messages())
		})
	}
}

func TestOpenOverlay_UnknownTypeRendersNothing(t *testing.T) {
	h := newHarness(t, Options{})
	assert.NotPanics(t, func() { h.surface.OpenOverlay(catalog.Type("weather")) })

	ov := h.surface.Overlay()
	assert.True(t, ov.IsOpen())
	_, ok := ov.Content()
	assert.False(t, ok)
	assert.Equal(t, 0, ov.Revealed(epoch.Add(time.Hour), 100*time.Millisecond))
}

// =============================================================================
// EVENTS & TEARDOWN
// =============================================================================

func TestEvents_SubmitWithSelection(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.SelectTask(catalog.Analyze)
	h.surface.Submit("numbers")
	h.advance(DefaultReplyDelay)

	assert.Equal(t, []EventKind{
		EventTaskSelected,
		EventOverlayOpened,
		EventMessageAppended,
		EventTaskCleared,
		EventReplyScheduled,
		EventMessageAppended,
	}, h.kinds())
	assert.Equal(t, epoch.Add(DefaultReplyDelay), h.events[4].Due)
}

func TestClose_DropsPendingReplies(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.Submit("one")
	h.surface.Submit("two")

	assert.Equal(t, 2, h.surface.Close())
	assert.True(t, h.surface.Closed())
	assert.Equal(t, 0, h.advance(time.Minute))
	assert.Len(t, h.surface.Messages(), 2)
	assert.Equal(t, 0, h.loop.Pending())

	h.surface.SetInput("late")
	_, ok := h.surface.SubmitInput()
	assert.False(t, ok)
	h.surface.SelectTask(catalog.Code)
	assert.Equal(t, catalog.None, h.surface.Selected())
	assert.Equal(t, 0, h.surface.Close())
}

func TestDeliver_AfterCloseIsIgnored(t *testing.T) {
	h := newHarness(t, Options{})
	h.surface.closed = true
	h.surface.deliver("late reply", epoch)

	assert.Empty(t, h.surface.Messages())
	require.NotEmpty(t, h.events)
	assert.Equal(t, EventReplyDropped, h.events[len(h.events)-1].Kind)
}
