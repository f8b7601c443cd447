// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat screen.
type KeyMap struct {
	Send         key.Binding
	Mic          key.Binding
	Upload       key.Binding
	Tasks        []key.Binding
	FocusActions key.Binding
	Left         key.Binding
	Right        key.Binding
	Activate     key.Binding
	Close        key.Binding
	Copy         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings. Tasks has one binding per
// catalog task type, alt+1 onwards, in catalog order.
func DefaultKeyMap() KeyMap {
	types := catalog.All()
	tasks := make([]key.Binding, len(types))
	for i, t := range types {
		k := "alt+" + strconv.Itoa(i+1)
		tasks[i] = key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, t.DisplayName()),
		)
	}

	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Mic: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle mic"),
		),
		Upload: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "upload"),
		),
		Tasks: tasks,
		FocusActions: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "quick actions"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close panel"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy last reply"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Mic, k.FocusActions, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help, grouped by
// purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Mic, k.Upload, k.Copy},
		k.Tasks,
		{k.FocusActions, k.Left, k.Right, k.Activate, k.Close},
		{k.PageUp, k.PageDown, k.Help, k.Quit},
	}
}

// taskIndex returns the catalog index of the task bound to msg, if any.
func (k KeyMap) taskIndex(msg tea.KeyMsg) (int, bool) {
	for i, b := range k.Tasks {
		if key.Matches(msg, b) {
			return i, true
		}
	}
	return 0, false
}
