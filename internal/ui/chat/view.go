// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mindeep-tui/internal/ui/components"
	"github.com/jeranaias/mindeep-tui/internal/ui/styles"
)

const (
	avatarPaneWidth = 38
	panelMinWidth   = 44
	minViewport     = 3
)

// =============================================================================
// LAYOUT
// =============================================================================

// panes splits the width between the conversation and the right pane.
// panelOnly is set on narrow terminals while the task panel is open.
func (m Model) panes() (conv, right int, panelOnly bool) {
	_, overlay := m.surface.Overlay().Content()

	switch styles.LayoutFor(m.width) {
	case styles.LayoutNarrow:
		if overlay {
			return m.width, m.width, true
		}
		return m.width, 0, false

	case styles.LayoutMedium:
		if overlay {
			right = min(panelMinWidth, m.width/2)
		}

	default:
		if overlay {
			right = max(panelMinWidth, m.width/3)
		} else if m.cfg.UI.ShowAvatar {
			right = avatarPaneWidth
		}
	}
	return m.width - right, right, false
}

// layout sizes the components and the viewport for the current state.
// The viewport gets whatever height the fixed parts leave over.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	conv, right, _ := m.panes()

	m.header.SetWidth(conv)
	m.actions.SetWidth(conv)
	m.input.SetWidth(conv)
	m.status.SetWidth(conv)
	m.avatar.SetSize(right, m.height)
	m.panel.SetSize(right, m.height)
	m.help.Width = m.width

	chrome := lipgloss.Height(m.header.View()) +
		lipgloss.Height(m.actions.View()) +
		1 + // thinking line
		lipgloss.Height(m.input.View()) +
		lipgloss.Height(m.status.View())

	m.viewport.Width = conv
	m.viewport.Height = max(m.height-chrome, minViewport)
}

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	conv, right, panelOnly := m.panes()
	if panelOnly {
		status := m.status.View()
		panel := lipgloss.NewStyle().MaxHeight(m.height - lipgloss.Height(status)).
			Render(m.panel.View(m.surface.Overlay(), m.now))
		return lipgloss.JoinVertical(lipgloss.Left, panel, status)
	}

	left := m.renderConversation(conv)
	if right == 0 {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderRightPane())
}

// renderConversation stacks the left column.
func (m Model) renderConversation(width int) string {
	thinking := components.RenderThinking(m.theme, m.cfg.Assistant.Name, m.spinner.View(), m.surface.PendingReplies())

	col := lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.actions.View(),
		m.viewport.View(),
		thinking,
		m.input.View(),
		m.status.View(),
	)
	return lipgloss.NewStyle().Width(width).MaxHeight(m.height).Render(col)
}

// renderRightPane draws the task panel when it has content, otherwise the
// avatar.
func (m Model) renderRightPane() string {
	if out := m.panel.View(m.surface.Overlay(), m.now); out != "" {
		return lipgloss.NewStyle().MaxHeight(m.height).Render(out)
	}
	return m.avatar.View()
}

// renderHelp draws the full key reference.
func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true

	title := m.theme.HeaderBrand.Render(m.cfg.Assistant.Name + " keys")
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		h.View(m.keys),
		"",
		m.theme.ShortcutDesc.Render("? or esc to close"),
	)
	box := m.theme.Panel.Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
