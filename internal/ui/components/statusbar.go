// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/ui/styles"
	"github.com/jeranaias/mindeep-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is one key hint.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are shown while the input has focus.
var DefaultShortcuts = []Shortcut{
	{Key: "enter", Desc: "send"},
	{Key: "ctrl+t", Desc: "mic"},
	{Key: "alt+1-5", Desc: "task"},
	{Key: "tab", Desc: "actions"},
	{Key: "?", Desc: "help"},
	{Key: "ctrl+c", Desc: "quit"},
}

// OverlayShortcuts are shown while the task panel is open.
var OverlayShortcuts = []Shortcut{
	{Key: "enter", Desc: "start"},
	{Key: "esc", Desc: "close"},
	{Key: "ctrl+c", Desc: "quit"},
}

// StatusBar is the bottom line: the active task on the left, shortcut hints
// or a transient notice on the right.
type StatusBar struct {
	Selected  catalog.Type
	Pending   int
	Notice    string
	Shortcuts []Shortcut
	Width     int
	theme     *styles.Theme
}

// NewStatusBar creates a status bar with the default hints.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Shortcuts: DefaultShortcuts, Width: 80, theme: theme}
}

// SetWidth sets the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// left renders the state summary.
func (s *StatusBar) left() string {
	parts := []string{styles.StatusIndicators.Active + " ready"}
	if s.Pending > 0 {
		parts[0] = styles.StatusIndicators.Info + " thinking"
	}
	if !s.Selected.IsNone() {
		parts = append(parts, s.theme.TaskStyle(s.Selected).Render("#"+s.Selected.String()))
	}
	return strings.Join(parts, " ")
}

// View renders the bar. A notice replaces the shortcut hints.
func (s *StatusBar) View() string {
	if s.theme == nil {
		return s.Notice
	}
	inner := s.Width - s.theme.StatusBar.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	left := s.left()
	room := inner - lipgloss.Width(left) - 2

	var right string
	if s.Notice != "" {
		right = s.theme.Notice.Render(util.TruncateWidth(s.Notice, max(room, 0)))
	} else {
		var hints []string
		used := 0
		for _, sc := range s.Shortcuts {
			h := s.theme.ShortcutKey.Render(sc.Key) + " " + s.theme.ShortcutDesc.Render(sc.Desc)
			w := lipgloss.Width(h) + 2
			if used+w > room {
				break
			}
			hints = append(hints, h)
			used += w
		}
		right = strings.Join(hints, "  ")
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}
