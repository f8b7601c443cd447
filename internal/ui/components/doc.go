// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual building blocks of the Mindeep TUI.

Components are plain structs with a View method. They hold no behavior of
their own: state lives in the viewmodel package and the chat model copies the
relevant bits in before rendering.

# Core Components

Header (header.go) - Brand line with the model subtitle.
QuickActions (header.go) - Task-type selector and the "mode selected" badge.
MessageBubble (message.go) - User and assistant bubbles with task badges.
CodeBlock (codeblock.go) - Fenced code highlighted with Chroma.
InputBar (input.go) - Text input with mic, upload and send affordances.
Avatar (avatar.go) - Decorative sphere and status card.
TaskPanel (taskpanel.go) - Task detail overlay with staggered feature reveal.
StatusBar (statusbar.go) - Shortcut hints and transient notices.

# Usage

	theme := styles.NewTheme("auto")
	panel := components.NewTaskPanel(theme)
	panel.SetSize(48, 30)
	out := panel.View(surface.Overlay(), time.Now())
	if out == "" {
		// closed, or unknown task type
	}
*/
package components
