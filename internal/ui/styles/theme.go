// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header         lipgloss.Style
	HeaderLogo     lipgloss.Style
	HeaderBrand    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// QUICK ACTIONS
	// ==========================================================================

	QuickActionsTitle   lipgloss.Style
	QuickAction         lipgloss.Style
	QuickActionSelected lipgloss.Style
	QuickActionFocused  lipgloss.Style
	ModeBadge           lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	BubbleAuthor    lipgloss.Style
	BubbleTime      lipgloss.Style
	TaskBadge       lipgloss.Style
	ThinkingText    lipgloss.Style

	// ==========================================================================
	// INPUT AREA
	// ==========================================================================

	InputContainer    lipgloss.Style
	InputPrompt       lipgloss.Style
	InputButton       lipgloss.Style
	InputButtonActive lipgloss.Style
	ListeningBadge    lipgloss.Style

	// ==========================================================================
	// AVATAR PANE
	// ==========================================================================

	AvatarPane      lipgloss.Style
	AvatarSphere    lipgloss.Style
	AvatarBadge     lipgloss.Style
	AvatarCard      lipgloss.Style
	AvatarCardTitle lipgloss.Style
	AvatarCardLabel lipgloss.Style
	AvatarCardValue lipgloss.Style

	// ==========================================================================
	// TASK PANEL OVERLAY
	// ==========================================================================

	Panel             lipgloss.Style
	PanelTitle        lipgloss.Style
	PanelClose        lipgloss.Style
	PanelSection      lipgloss.Style
	PanelText         lipgloss.Style
	PanelFeature      lipgloss.Style
	PanelNote         lipgloss.Style
	PanelNoteTitle    lipgloss.Style
	PanelButton       lipgloss.Style
	PanelButtonActive lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Notice       lipgloss.Style

	// ==========================================================================
	// CODE BLOCKS
	// ==========================================================================

	CodeBlock     lipgloss.Style
	CodeLangBadge lipgloss.Style
}

// NewTheme creates a theme. mode is "dark", "light" or "auto"; auto asks the
// terminal for its background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderLogo = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Violet).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Violet)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Quick actions
	t.QuickActionsTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.QuickAction = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.QuickActionSelected = t.QuickAction.
		Bold(true).
		Foreground(TextInverse).
		BorderForeground(Violet).
		Background(Violet)

	t.QuickActionFocused = t.QuickAction.
		BorderForeground(Cyan).
		Underline(true)

	t.ModeBadge = lipgloss.NewStyle().
		Foreground(Violet).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Violet).
		Padding(0, 1)

	// Messages
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)

	t.BubbleAuthor = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.BubbleTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.TaskBadge = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	t.InputButton = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.InputButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Rose).
		Bold(true).
		Padding(0, 1)

	t.ListeningBadge = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Avatar pane
	t.AvatarPane = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.AvatarSphere = lipgloss.NewStyle().
		Foreground(Violet)

	t.AvatarBadge = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.AvatarCard = lipgloss.NewStyle().
		Background(SurfaceBright).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.AvatarCardTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.AvatarCardLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.AvatarCardValue = lipgloss.NewStyle().
		Foreground(Cyan)

	// Task panel overlay
	t.Panel = lipgloss.NewStyle().
		Background(SurfaceBright).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Violet).
		Padding(1, 2)

	t.PanelTitle = lipgloss.NewStyle().
		Bold(true)

	t.PanelClose = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.PanelSection = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true).
		MarginTop(1)

	t.PanelText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.PanelFeature = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.PanelNote = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Cyan).
		PaddingLeft(1).
		MarginTop(1)

	t.PanelNoteTitle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.PanelButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Violet).
		Bold(true).
		Padding(0, 2).
		MarginTop(1)

	t.PanelButtonActive = t.PanelButton.
		Background(Cyan)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Notice = lipgloss.NewStyle().
		Foreground(Amber)

	// Code blocks
	t.CodeBlock = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Overlay).
		PaddingLeft(1)

	t.CodeLangBadge = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
}

// TaskStyle returns a badge style colored for task type tt.
func (t *Theme) TaskStyle(tt catalog.Type) lipgloss.Style {
	return t.TaskBadge.Foreground(TaskColor(tt))
}

// AccentStyle returns a bold foreground style for accent a.
func (t *Theme) AccentStyle(a catalog.Accent) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(AccentColor(a)).Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	return LayoutFor(t.Width)
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns: conversation only
	LayoutMedium                   // 60-100 columns: overlay replaces avatar pane
	LayoutWide                     // >= 100 columns: both panes and overlay
)

// LayoutFor classifies a terminal width.
func LayoutFor(width int) LayoutMode {
	if width < 60 {
		return LayoutNarrow
	}
	if width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// String returns the layout name.
func (l LayoutMode) String() string {
	switch l {
	case LayoutNarrow:
		return "narrow"
	case LayoutMedium:
		return "medium"
	default:
		return "wide"
	}
}
