// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mindeep-tui/internal/model"
	"github.com/jeranaias/mindeep-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one message of the conversation.
type MessageBubble struct {
	Message model.Message

	// Name replaces the assistant's display name when set.
	Name string

	// Width is the width of the conversation pane, not of the bubble.
	Width int

	theme *styles.Theme
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{Message: msg, Width: 80, theme: theme}
}

// SetWidth sets the pane width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// author returns the display name for the bubble's role.
func (b *MessageBubble) author() string {
	if b.Message.Role == model.RoleAssistant && b.Name != "" {
		return b.Name
	}
	return b.Message.Role.DisplayName()
}

// bubbleWidth is the outer width of the bubble: three quarters of the pane,
// or all of it on narrow terminals.
func (b *MessageBubble) bubbleWidth() int {
	if styles.LayoutFor(b.Width) == styles.LayoutNarrow {
		return clamp(b.Width, 10, b.Width)
	}
	return clamp(b.Width*3/4, 20, b.Width)
}

// View renders the bubble aligned left for the assistant and right for the
// user.
func (b *MessageBubble) View() string {
	if b.theme == nil {
		return b.author() + ": " + b.Message.Content
	}

	isUser := b.Message.Role == model.RoleUser
	style := b.theme.AssistantBubble
	if isUser {
		style = b.theme.UserBubble
	}

	outer := b.bubbleWidth()
	inner := outer - style.GetHorizontalFrameSize()
	if inner < 4 {
		inner = 4
	}

	meta := b.theme.BubbleAuthor.Render(b.author()) + "  " +
		b.theme.BubbleTime.Render(b.Message.TimeLabel())
	if b.Message.Tagged() {
		meta += "  " + b.theme.TaskStyle(b.Message.TaskType).Render("#"+b.Message.TaskType.String())
	}

	body := b.renderBody(inner)
	bubble := style.Width(inner + style.GetHorizontalPadding()).Render(meta + "\n" + body)

	align := lipgloss.Left
	if isUser {
		align = lipgloss.Right
	}
	return lipgloss.PlaceHorizontal(b.Width, align, bubble)
}

// renderBody wraps prose to width and highlights fenced code.
func (b *MessageBubble) renderBody(width int) string {
	segs := SplitCodeBlocks(b.Message.Content)
	parts := make([]string, 0, len(segs))
	wrap := lipgloss.NewStyle().Width(width)
	for _, seg := range segs {
		if seg.Code != nil {
			cb := *seg.Code
			cb.MaxWidth = width
			parts = append(parts, cb.Render(b.theme))
			continue
		}
		parts = append(parts, wrap.Render(seg.Text))
	}
	return strings.Join(parts, "\n")
}

// =============================================================================
// THINKING INDICATOR
// =============================================================================

// RenderThinking renders the "thinking" line shown while replies are pending.
func RenderThinking(theme *styles.Theme, name, frame string, pending int) string {
	if pending <= 0 {
		return ""
	}
	if name == "" {
		name = model.RoleAssistant.DisplayName()
	}
	text := name + " is thinking " + frame
	if pending > 1 {
		text = name + " is working on " + strconv.Itoa(pending) + " replies " + frame
	}
	if theme == nil {
		return text
	}
	return theme.ThinkingText.Render(text)
}
