// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mindeep-tui/internal/ui/styles"
)

// =============================================================================
// AVATAR COMPONENT
// =============================================================================

// AvatarStatus is the content of the avatar status card.
type AvatarStatus struct {
	Mode       string
	ActiveLLM  string
	Expression string
}

// DefaultAvatarStatus is the fixed card content.
var DefaultAvatarStatus = AvatarStatus{
	Mode:       "Conversational",
	ActiveLLM:  "GPT-4",
	Expression: "Thinking",
}

// Avatar renders the decorative sphere pane. Nothing here reflects real
// model state.
type Avatar struct {
	Status AvatarStatus

	// Phase orbits the sphere's light source, in radians.
	Phase float64

	// Blink is the current frame of the "Active" indicator.
	Blink string

	Width  int
	Height int
	theme  *styles.Theme
}

// NewAvatar creates an avatar pane.
func NewAvatar(theme *styles.Theme) *Avatar {
	return &Avatar{
		Status: DefaultAvatarStatus,
		Blink:  styles.ActiveBlink.Frames[0],
		Width:  36,
		Height: 24,
		theme:  theme,
	}
}

// SetSize sets the pane size.
func (a *Avatar) SetSize(width, height int) {
	a.Width = width
	a.Height = height
}

// radius picks the largest sphere that fits the pane with room for the card.
func (a *Avatar) radius() int {
	byWidth := (a.Width - 6) / 4
	byHeight := (a.Height - 12) / 2
	return clamp(min(byWidth, byHeight), 2, 8)
}

// View renders the sphere, the "Active" badge and the status card.
func (a *Avatar) View() string {
	if a.theme == nil {
		return ""
	}
	inner := a.Width - a.theme.AvatarPane.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	sphere := a.theme.AvatarSphere.Render(strings.Join(styles.RenderSphere(a.radius(), a.Phase), "\n"))
	badge := a.theme.AvatarBadge.Render(a.Blink + " Active")

	row := func(label, value string) string {
		return a.theme.AvatarCardLabel.Render(label+": ") + a.theme.AvatarCardValue.Render(value)
	}
	cardWidth := inner - a.theme.AvatarCard.GetHorizontalBorderSize()
	card := a.theme.AvatarCard.Width(cardWidth).Render(strings.Join([]string{
		a.theme.AvatarCardTitle.Render("AI Avatar Status"),
		row("Mode", a.Status.Mode),
		row("Active LLM", a.Status.ActiveLLM),
		row("Expression", a.Status.Expression),
	}, "\n"))

	center := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)
	body := lipgloss.JoinVertical(lipgloss.Left,
		center.Render(sphere),
		center.Render(badge),
		"",
		card,
	)
	return a.theme.AvatarPane.Height(max(a.Height, 1)).Render(body)
}
