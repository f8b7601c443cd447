// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mindeep-tui/internal/config"
	"github.com/jeranaias/mindeep-tui/internal/model"
	"github.com/jeranaias/mindeep-tui/internal/util"
)

// =============================================================================
// TIMER COMMANDS
// =============================================================================

// armTimer returns a tick for the loop's next due job, unless one for that
// time or earlier is already in flight.
func (m *Model) armTimer() tea.Cmd {
	if m.quitting {
		return nil
	}
	due, ok := m.loop.NextDue()
	if !ok {
		return nil
	}
	if !m.timerArmed.IsZero() && !due.Before(m.timerArmed) {
		return nil
	}
	m.timerArmed = due

	wait := due.Sub(m.clock.Now())
	if wait < 0 {
		wait = 0
	}
	return tea.Tick(wait, func(t time.Time) tea.Msg {
		return TimerMsg{At: t}
	})
}

// animTick schedules the next animation frame.
func (m Model) animTick() tea.Cmd {
	fps := m.cfg.UI.AnimationFPS
	if fps <= 0 {
		fps = 12
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return AnimTickMsg{At: t}
	})
}

// =============================================================================
// CONFIG COMMANDS
// =============================================================================

// waitForConfig blocks for the watcher's next update.
func waitForConfig(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-w.Updates()
		if !ok {
			return configClosedMsg{}
		}
		return ConfigReloadedMsg{Config: u.Config, Err: u.Err}
	}
}

// =============================================================================
// NOTICE & CLIPBOARD COMMANDS
// =============================================================================

// setNotice shows text in the status bar and schedules its removal.
func (m *Model) setNotice(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// copyLast copies the latest assistant reply.
func (m *Model) copyLast() tea.Cmd {
	msg, ok := m.surface.Conversation().LastByRole(model.RoleAssistant)
	if !ok {
		return m.setNotice("Nothing to copy yet")
	}
	text, write := msg.Content, m.copyFn
	return func() tea.Msg {
		return CopyResultMsg{Chars: util.RuneLen(text), Err: write(text)}
	}
}
