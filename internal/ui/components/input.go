// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mindeep-tui/internal/ui/styles"
)

// Placeholder is shown in the empty input.
const Placeholder = "Ask me anything... I'll route it to the best LLM!"

// MaxInputChars limits a single message.
const MaxInputChars = 4096

// =============================================================================
// INPUT BAR COMPONENT
// =============================================================================

// InputBar is the text input with its mic, upload and send affordances.
type InputBar struct {
	input     textinput.Model
	width     int
	listening bool
	pulse     string
	theme     *styles.Theme
}

// NewInputBar creates an input bar.
func NewInputBar(theme *styles.Theme) *InputBar {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.CharLimit = MaxInputChars
	ti.Width = 60
	ti.Prompt = "> "

	ti.PromptStyle = lipgloss.NewStyle().
		Foreground(styles.Violet).
		Bold(true)

	ti.TextStyle = lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	ti.Cursor.Style = lipgloss.NewStyle().
		Foreground(styles.Cyan)

	return &InputBar{input: ti, width: 80, theme: theme}
}

// Focus focuses the text input.
func (i *InputBar) Focus() tea.Cmd {
	return i.input.Focus()
}

// Blur removes focus from the text input.
func (i *InputBar) Blur() {
	i.input.Blur()
}

// Focused reports whether the text input has focus.
func (i *InputBar) Focused() bool {
	return i.input.Focused()
}

// Value returns the current text.
func (i *InputBar) Value() string {
	return i.input.Value()
}

// SetValue replaces the text and moves the cursor to the end.
func (i *InputBar) SetValue(s string) {
	i.input.SetValue(s)
	i.input.CursorEnd()
}

// Reset clears the text.
func (i *InputBar) Reset() {
	i.input.Reset()
}

// SetListening sets the microphone state and the pulse frame shown with it.
func (i *InputBar) SetListening(listening bool, pulse string) {
	i.listening = listening
	i.pulse = pulse
}

// SetWidth sets the outer width of the bar.
func (i *InputBar) SetWidth(width int) {
	i.width = width
	if i.theme != nil {
		buttons := lipgloss.Width(i.buttons())
		i.input.Width = clamp(width-i.theme.InputContainer.GetHorizontalFrameSize()-buttons-4, 10, width)
	}
}

// Update forwards a message to the text input.
func (i *InputBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return cmd
}

// buttons renders the mic, upload and send affordances.
func (i *InputBar) buttons() string {
	mic := i.theme.InputButton.Render("Mic ^T")
	if i.listening {
		mic = i.theme.InputButtonActive.Render("Mic ^T")
	}
	upload := i.theme.InputButton.Render("Upload ^U")
	send := i.theme.InputPrompt.Render("Send ⏎")
	return lipgloss.JoinHorizontal(lipgloss.Center, mic, upload, send)
}

// View renders the bar, with a "Listening..." line above it while the mic
// is on.
func (i *InputBar) View() string {
	if i.theme == nil {
		return i.input.View()
	}
	inner := i.width - i.theme.InputContainer.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	field := i.input.View()
	buttons := i.buttons()
	gap := inner - lipgloss.Width(field) - lipgloss.Width(buttons)
	if gap < 1 {
		gap = 1
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, field, lipgloss.NewStyle().Width(gap).Render(""), buttons)
	bar := i.theme.InputContainer.Width(inner + i.theme.InputContainer.GetHorizontalPadding()).Render(row)

	if !i.listening {
		return bar
	}
	badge := i.theme.ListeningBadge.Render(i.pulse + " Listening...")
	return badge + "\n" + bar
}
