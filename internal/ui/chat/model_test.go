// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/config"
	"github.com/jeranaias/mindeep-tui/internal/model"
	"github.com/jeranaias/mindeep-tui/internal/schedule"
	"github.com/jeranaias/mindeep-tui/internal/viewmodel"
)

var epoch = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

type harness struct {
	t      *testing.T
	clock  *schedule.Manual
	m      Model
	copied []string
	events []viewmodel.Event
}

func newHarness(t *testing.T, width, height int) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.UI.Theme = "dark"

	h := &harness{t: t, clock: schedule.NewManual(epoch)}
	h.m = New(Options{
		Config: cfg,
		Clock:  h.clock,
		Observer: func(e viewmodel.Event) {
			h.events = append(h.events, e)
		},
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
	})
	h.send(tea.WindowSizeMsg{Width: width, Height: height})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) press(t tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: t})
}

func (h *harness) alt(r rune) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true})
}

// advance moves the clock and delivers the timer tick the runtime would send.
func (h *harness) advance(d time.Duration) {
	h.send(TimerMsg{At: h.clock.Advance(d)})
}

// =============================================================================
// CONVERSATION
// =============================================================================

func TestNew_StartsWithGreeting(t *testing.T) {
	h := newHarness(t, 120, 40)
	msgs := h.m.Surface().Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleAssistant, msgs[0].Role)
	assert.Equal(t, config.DefaultGreeting, msgs[0].Content)
	assert.Equal(t, FocusInput, h.m.Focus())
}

func TestSend_AppendsAndRepliesAfterDelay(t *testing.T) {
	h := newHarness(t, 120, 40)

	h.typeText("plan my week")
	assert.Equal(t, "plan my week", h.m.InputValue())
	assert.Equal(t, "plan my week", h.m.Surface().Input())

	h.press(tea.KeyEnter)
	msgs := h.m.Surface().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "plan my week", msgs[1].Content)
	assert.Equal(t, "", h.m.InputValue())
	assert.Equal(t, 1, h.m.Surface().PendingReplies())
	assert.Contains(t, h.m.View(), "is thinking")

	h.advance(1499 * time.Millisecond)
	assert.Len(t, h.m.Surface().Messages(), 2)

	h.advance(time.Millisecond)
	msgs = h.m.Surface().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, model.RoleAssistant, msgs[2].Role)
	assert.Contains(t, msgs[2].Content, `"plan my week"`)
	assert.Equal(t, 0, h.m.Surface().PendingReplies())
}

func TestSend_BlankIsIgnored(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.typeText("   ")
	h.press(tea.KeyEnter)

	assert.Len(t, h.m.Surface().Messages(), 1)
	assert.Equal(t, "   ", h.m.InputValue())
	assert.Equal(t, 0, h.m.Loop().Pending())
}

func TestArmTimer_OnlyOncePerDueTime(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.typeText("a")
	h.press(tea.KeyEnter)
	require.False(t, h.m.timerArmed.IsZero())
	assert.Equal(t, epoch.Add(1500*time.Millisecond), h.m.timerArmed)

	h.typeText("b")
	h.press(tea.KeyEnter)
	assert.Equal(t, epoch.Add(1500*time.Millisecond), h.m.timerArmed, "later job must not re-arm")

	h.advance(1500 * time.Millisecond)
	assert.Len(t, h.m.Surface().Messages(), 5)
	assert.True(t, h.m.timerArmed.IsZero(), "nothing left to wait for")
}

// =============================================================================
// QUICK ACTIONS & OVERLAY
// =============================================================================

func TestAltDigit_SelectsTaskAndOpensPanel(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.alt('3')

	assert.Equal(t, catalog.Code, h.m.Surface().Selected())
	assert.Equal(t, "Open(code)", h.m.Surface().Overlay().String())

	h.clock.Advance(time.Second)
	h.send(AnimTickMsg{})
	view := h.m.View()
	assert.Contains(t, view, "Code Assistance")
	assert.Contains(t, view, "Code mode selected")
}

func TestEsc_DismissesPanelKeepsSelection(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.alt('1')
	h.press(tea.KeyEsc)

	assert.False(t, h.m.Surface().Overlay().IsOpen())
	assert.Equal(t, catalog.Calendar, h.m.Surface().Selected())
}

func TestEnterOnPanel_StartsTaskWithoutSending(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.typeText("draft")
	h.alt('2')
	h.press(tea.KeyEnter)

	assert.False(t, h.m.Surface().Overlay().IsOpen())
	assert.Len(t, h.m.Surface().Messages(), 1)
	assert.Equal(t, "draft", h.m.InputValue())

	h.press(tea.KeyEnter)
	msgs := h.m.Surface().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, catalog.Summarize, msgs[1].TaskType)
	assert.Equal(t, catalog.None, h.m.Surface().Selected())
}

func TestReselect_ClearsSelectionLeavesPanel(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.alt('4')
	h.alt('4')

	assert.Equal(t, catalog.None, h.m.Surface().Selected())
	assert.Equal(t, "Open(browse)", h.m.Surface().Overlay().String())
}

func TestActionBar_Navigation(t *testing.T) {
	h := newHarness(t, 120, 40)

	h.press(tea.KeyTab)
	assert.Equal(t, FocusActions, h.m.Focus())
	assert.Equal(t, 0, h.m.ActionIndex())

	h.press(tea.KeyLeft)
	assert.Equal(t, 4, h.m.ActionIndex(), "left wraps around")
	h.press(tea.KeyRight)
	h.press(tea.KeyRight)
	assert.Equal(t, 1, h.m.ActionIndex())

	h.press(tea.KeyEnter)
	assert.Equal(t, catalog.Summarize, h.m.Surface().Selected())
	assert.True(t, h.m.Surface().Overlay().IsOpen())

	h.press(tea.KeyEsc)
	assert.False(t, h.m.Surface().Overlay().IsOpen(), "first esc closes the panel")
	assert.Equal(t, FocusActions, h.m.Focus())

	h.press(tea.KeyEsc)
	assert.Equal(t, FocusInput, h.m.Focus())
}

func TestNarrowLayout_PanelReplacesConversation(t *testing.T) {
	h := newHarness(t, 50, 40)
	assert.Contains(t, h.m.View(), "Quick Actions")

	h.alt('5')
	h.clock.Advance(time.Second)
	h.send(AnimTickMsg{})
	view := h.m.View()
	assert.Contains(t, view, "Data Analysis")
	assert.NotContains(t, view, "Quick Actions")
}

func TestPanes(t *testing.T) {
	h := newHarness(t, 120, 40)
	conv, right, only := h.m.panes()
	assert.Equal(t, 120-avatarPaneWidth, conv)
	assert.Equal(t, avatarPaneWidth, right)
	assert.False(t, only)

	h.send(tea.WindowSizeMsg{Width: 80, Height: 30})
	_, right, _ = h.m.panes()
	assert.Equal(t, 0, right, "medium layout hides the avatar")

	h.alt('1')
	conv, right, _ = h.m.panes()
	assert.Equal(t, 40, right)
	assert.Equal(t, 40, conv)
}

// =============================================================================
// INPUT AFFORDANCES
// =============================================================================

func TestCtrlT_TogglesListening(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.press(tea.KeyCtrlT)
	assert.True(t, h.m.Surface().Listening())
	assert.Contains(t, h.m.View(), "Listening...")

	h.press(tea.KeyCtrlT)
	assert.False(t, h.m.Surface().Listening())
	assert.NotContains(t, h.m.View(), "Listening...")
}

func TestCtrlU_ShowsUploadNotice(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.press(tea.KeyCtrlU)
	assert.Equal(t, UploadNotice, h.m.Notice())

	seq := h.m.noticeSeq
	h.send(noticeExpiredMsg{seq: seq - 1})
	assert.Equal(t, UploadNotice, h.m.Notice(), "stale expiry is ignored")
	h.send(noticeExpiredMsg{seq: seq})
	assert.Empty(t, h.m.Notice())
}

func TestCtrlY_CopiesLastReply(t *testing.T) {
	h := newHarness(t, 120, 40)
	cmd := h.press(tea.KeyCtrlY)
	require.NotNil(t, cmd)

	msg := findMsg[CopyResultMsg](cmd)
	require.NotNil(t, msg)
	h.send(*msg)

	require.Len(t, h.copied, 1)
	assert.Equal(t, config.DefaultGreeting, h.copied[0])
	assert.Contains(t, h.m.Notice(), "Copied reply")
}

func TestCopyFailure_ShowsNotice(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.send(CopyResultMsg{Err: errors.New("no clipboard")})
	assert.Equal(t, "Copy failed: no clipboard", h.m.Notice())
}

func TestHelp_OnlyWhenInputEmpty(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.typeText("why")
	h.typeText("?")
	assert.Equal(t, "why?", h.m.InputValue())
	assert.False(t, h.m.ShowingHelp())

	h2 := newHarness(t, 120, 40)
	h2.typeText("?")
	assert.True(t, h2.m.ShowingHelp())
	assert.Contains(t, h2.m.View(), "toggle mic")
	h2.press(tea.KeyEsc)
	assert.False(t, h2.m.ShowingHelp())
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func TestConfigReload_AppliesDelayAndTemplate(t *testing.T) {
	h := newHarness(t, 120, 40)

	cfg := config.Default()
	cfg.UI.Theme = "dark"
	cfg.Assistant.ReplyDelayMs = 200
	cfg.Assistant.ReplyTemplate = "echo {{{text}}}"
	h.send(ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, "Config reloaded", h.m.Notice())
	assert.Equal(t, 200*time.Millisecond, h.m.Surface().ReplyDelay())

	h.typeText("hi")
	h.press(tea.KeyEnter)
	h.advance(200 * time.Millisecond)
	last, ok := h.m.Surface().Conversation().Last()
	require.True(t, ok)
	assert.Equal(t, "echo hi", last.Content)
}

func TestConfigReload_Error(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.send(ConfigReloadedMsg{Err: errors.New("bad toml")})
	assert.True(t, strings.HasPrefix(h.m.Notice(), "Config reload failed"))
	assert.Equal(t, 1500*time.Millisecond, h.m.Surface().ReplyDelay())
}

// =============================================================================
// TEARDOWN
// =============================================================================

func TestQuit_DropsPendingReplies(t *testing.T) {
	h := newHarness(t, 120, 40)
	h.typeText("bye")
	h.press(tea.KeyEnter)

	cmd := h.press(tea.KeyCtrlC)
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.True(t, h.m.Quitting())
	assert.True(t, h.m.Surface().Closed())

	h.advance(time.Minute)
	assert.Len(t, h.m.Surface().Messages(), 2, "reply must not land after quit")
	assert.Equal(t, "", h.m.View())

	var dropped int
	for _, e := range h.events {
		if e.Kind == viewmodel.EventReplyDropped {
			dropped++
		}
	}
	assert.Equal(t, 1, dropped)
}

// findMsg runs cmd, descending into batches, and returns the first T produced.
// Commands that would block on timers are skipped.
func findMsg[T any](cmd tea.Cmd) *T {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if v, ok := msg.(T); ok {
			return &v
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				if v := findMsg[T](c); v != nil {
					return v
				}
			}
		}
	case <-time.After(200 * time.Millisecond):
	}
	return nil
}
