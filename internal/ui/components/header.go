// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/ui/styles"
	"github.com/jeranaias/mindeep-tui/internal/util"
)

// Subtitle is the tagline under the brand name.
const Subtitle = "Powered by GPT-4, Claude, LLaMA & specialized models"

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header renders the brand line at the top of the conversation pane.
type Header struct {
	Name  string
	Width int
	theme *styles.Theme
}

// NewHeader creates a header for the named assistant.
func NewHeader(name string, theme *styles.Theme) *Header {
	if name == "" {
		name = "Mindeep"
	}
	return &Header{Name: name, Width: 80, theme: theme}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header. Narrow widths drop the subtitle.
func (h *Header) View() string {
	if h.theme == nil {
		return h.Name
	}
	logo := h.theme.HeaderLogo.Render("M")
	brand := h.theme.HeaderBrand.Render(h.Name)
	line := logo + " " + brand

	inner := h.Width - h.theme.Header.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	if styles.LayoutFor(h.Width) != styles.LayoutNarrow {
		room := inner - lipgloss.Width(line) - 3
		if room > 8 {
			line += "   " + h.theme.HeaderSubtitle.Render(util.TruncateWidth(Subtitle, room))
		}
	}
	return h.theme.Header.Width(inner).Render(line)
}

// =============================================================================
// QUICK ACTIONS COMPONENT
// =============================================================================

// QuickActions renders the task-type selector row.
type QuickActions struct {
	// Selected is the task type that will tag the next message.
	Selected catalog.Type

	// Focus is the index of the keyboard-focused button, or -1.
	Focus int

	Width int
	theme *styles.Theme
}

// NewQuickActions creates an unfocused selector.
func NewQuickActions(theme *styles.Theme) *QuickActions {
	return &QuickActions{Focus: -1, Width: 80, theme: theme}
}

// SetWidth sets the available width.
func (q *QuickActions) SetWidth(width int) {
	q.Width = width
}

// View renders the title, one button per task type and, when a task is
// selected, the mode badge.
func (q *QuickActions) View() string {
	if q.theme == nil {
		return ""
	}
	types := catalog.All()
	compact := styles.LayoutFor(q.Width) == styles.LayoutNarrow

	buttons := make([]string, 0, len(types))
	for i, t := range types {
		info, _ := catalog.Lookup(t)
		label := info.Label
		if !compact {
			label = fmt.Sprintf("%d %s", i+1, info.Label)
		}

		style := q.theme.QuickAction
		switch {
		case t == q.Selected:
			style = q.theme.QuickActionSelected
		case i == q.Focus:
			style = q.theme.QuickActionFocused
		default:
			style = style.Foreground(styles.TaskColor(t))
		}
		buttons = append(buttons, style.Render(label))
	}

	rows := wrapRow(buttons, q.Width)
	var sb strings.Builder
	sb.WriteString(q.theme.QuickActionsTitle.Render("Quick Actions"))
	sb.WriteString("\n")
	sb.WriteString(strings.Join(rows, "\n"))

	if badge := q.Badge(); badge != "" {
		sb.WriteString("\n")
		sb.WriteString(badge)
	}
	return sb.String()
}

// Badge renders "<task> mode selected", or "" when nothing is selected.
func (q *QuickActions) Badge() string {
	if q.theme == nil || q.Selected.IsNone() {
		return ""
	}
	return q.theme.ModeBadge.
		BorderForeground(styles.TaskColor(q.Selected)).
		Foreground(styles.TaskColor(q.Selected)).
		Render(ModeLabel(q.Selected))
}

// ModeLabel is the plain text of the mode badge.
func ModeLabel(t catalog.Type) string {
	return t.DisplayName() + " mode selected"
}
