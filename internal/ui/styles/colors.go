// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
)

// =============================================================================
// BRAND ACCENT COLORS
// =============================================================================

// Violet - Primary accent: brand, calendar and browse tasks
var Violet = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// VioletDeep - Darker violet for backgrounds
var VioletDeep = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#2E1065"}

// Cyan - Secondary accent: summarize and analyze tasks, user highlights
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// CyanDeep - Darker cyan for backgrounds
var CyanDeep = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#164E63"}

// Pink - Tertiary accent: code tasks
var Pink = lipgloss.AdaptiveColor{Light: "#DB2777", Dark: "#F472B6"}

// PinkDeep - Darker pink for backgrounds
var PinkDeep = lipgloss.AdaptiveColor{Light: "#9D174D", Dark: "#500724"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Emerald - Active and success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors and the listening indicator
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Notices
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F0A1F"}

// SurfaceDim - Header and status bar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F3FF", Dark: "#160F2B"}

// SurfaceBright - Cards and the overlay panel
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#221A3D"}

// Overlay - Borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#3B3158"}

// =============================================================================
// TEXT COLORS
// =============================================================================

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#EDE9FE"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#C4B5FD"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#7C6F9F"}
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F0A1F"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#4C1D95"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#4C1D95", Dark: "#F5F3FF"}
var UserBubbleBorder = Violet

var AssistantBubbleBg = lipgloss.AdaptiveColor{Light: "#ECFEFF", Dark: "#1B2440"}
var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#164E63", Dark: "#E0F2FE"}
var AssistantBubbleBorder = Cyan

// =============================================================================
// TASK ACCENTS
// =============================================================================

// AccentColor maps a catalog accent to its foreground color.
func AccentColor(a catalog.Accent) lipgloss.AdaptiveColor {
	switch a {
	case catalog.AccentSecondary:
		return Cyan
	case catalog.AccentTertiary:
		return Pink
	default:
		return Violet
	}
}

// AccentDeep maps a catalog accent to its background color.
func AccentDeep(a catalog.Accent) lipgloss.AdaptiveColor {
	switch a {
	case catalog.AccentSecondary:
		return CyanDeep
	case catalog.AccentTertiary:
		return PinkDeep
	default:
		return VioletDeep
	}
}

// TaskColor returns the accent color of a task type, or TextSecondary for
// types outside the catalog.
func TaskColor(t catalog.Type) lipgloss.AdaptiveColor {
	info, ok := catalog.Lookup(t)
	if !ok {
		return TextSecondary
	}
	return AccentColor(info.Accent)
}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicators are ASCII shapes shown alongside colors.
var StatusIndicators = struct {
	Success string
	Error   string
	Info    string
	Active  string
}{
	Success: "[OK]",
	Error:   "[X]",
	Info:    "[i]",
	Active:  "[*]",
}

// RenderError renders an error line with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Rose).Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderSuccess renders a success line with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Emerald).Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderInfo renders an informational line with its indicator.
func RenderInfo(message string) string {
	return lipgloss.NewStyle().Foreground(Cyan).
		Render(StatusIndicators.Info + " " + message)
}
