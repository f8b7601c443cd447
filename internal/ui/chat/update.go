// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.now = m.clock.Now()

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quit()
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case TimerMsg:
		m.timerArmed = time.Time{}
		if n := m.loop.RunDue(m.now); n > 0 {
			m.logger.Debug().Int("jobs", n).Msg("timers fired")
		}

	case AnimTickMsg:
		cmds = append(cmds, m.animTick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("config reload failed")
			cmds = append(cmds, m.setNotice("Config reload failed: "+msg.Err.Error()))
		} else if msg.Config != nil {
			m.applyConfig(msg.Config)
			m.logger.Info().Msg("config reloaded")
			cmds = append(cmds, m.setNotice("Config reloaded"))
		}
		if m.watcher != nil {
			cmds = append(cmds, waitForConfig(m.watcher))
		}

	case configClosedMsg:
		m.logger.Debug().Msg("config watcher stopped")

	case NoticeMsg:
		cmds = append(cmds, m.setNotice(msg.Text))

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}

	case CopyResultMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("clipboard write failed")
			cmds = append(cmds, m.setNotice("Copy failed: "+msg.Err.Error()))
		} else {
			cmds = append(cmds, m.setNotice(fmt.Sprintf("Copied reply to clipboard (%d chars)", msg.Chars)))
		}
	}

	m.syncComponents()
	m.layout()
	m.refresh()
	cmds = append(cmds, m.armTimer())
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey routes a key press. Global bindings come first, then the
// quick-action bar when it has focus, then the task panel, then the input.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Close) {
			m.showHelp = false
		}
		return nil
	}

	if i, ok := m.keys.taskIndex(msg); ok {
		m.selectTask(i)
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Mic):
		m.surface.ToggleListening()
		return nil
	case key.Matches(msg, m.keys.Upload):
		return m.setNotice(UploadNotice)
	case key.Matches(msg, m.keys.Copy):
		return m.copyLast()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return nil
	}

	if m.focus == FocusActions {
		return m.handleActionKey(msg)
	}

	if m.surface.Overlay().IsOpen() {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.surface.DismissOverlay()
			return nil
		case key.Matches(msg, m.keys.Send):
			m.surface.StartTask()
			return nil
		}
	}

	return m.handleInputKey(msg)
}

// handleInputKey handles keys while the text input has focus.
func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Send):
		m.surface.SetInput(m.input.Value())
		if _, ok := m.surface.SubmitInput(); ok {
			m.input.Reset()
		}
		return nil

	case key.Matches(msg, m.keys.FocusActions):
		m.focus = FocusActions
		if sel := m.surface.Selected(); !sel.IsNone() {
			m.actionIndex = indexOf(sel)
		}
		m.input.Blur()
		return nil

	case key.Matches(msg, m.keys.Help) && m.input.Value() == "":
		m.showHelp = true
		return nil
	}

	cmd := m.input.Update(msg)
	m.surface.SetInput(m.input.Value())
	return cmd
}

// handleActionKey handles keys while the quick-action bar has focus.
func (m *Model) handleActionKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.keys.Tasks)
	switch {
	case key.Matches(msg, m.keys.Left):
		m.actionIndex = (m.actionIndex + n - 1) % n
	case key.Matches(msg, m.keys.Right):
		m.actionIndex = (m.actionIndex + 1) % n
	case key.Matches(msg, m.keys.Activate):
		m.selectTask(m.actionIndex)
	case key.Matches(msg, m.keys.Close):
		if m.surface.Overlay().IsOpen() {
			m.surface.DismissOverlay()
			return nil
		}
		return m.focusInput()
	case key.Matches(msg, m.keys.FocusActions):
		return m.focusInput()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return nil
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = FocusInput
	return m.input.Focus()
}

// selectTask toggles the i-th catalog task.
func (m *Model) selectTask(i int) {
	types := catalog.All()
	if i < 0 || i >= len(types) {
		return
	}
	m.actionIndex = i
	m.surface.SelectTask(types[i])
}

func indexOf(t catalog.Type) int {
	for i, c := range catalog.All() {
		if c == t {
			return i
		}
	}
	return 0
}
