// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Mindeep chat screen as a Bubble Tea model.

The model owns a viewmodel.Surface and the schedule.Loop its replies run on.
Keys are translated into Surface operations; the loop is drained on TimerMsg
ticks armed for its next due time, so reply callbacks always run inside
Update on the Bubble Tea goroutine.

# Key Components

## Model (model.go)

Holds the surface, the loop, the theme and the components. Options carries
the configuration, the clock (schedule.Manual in tests) and the logger.

## Update Loop (update.go)

Keyboard focus moves between the input and the quick-action bar. While the
task panel is open, enter starts the task and esc dismisses it. Config
reloads from a config.Watcher re-apply theme, reveal stagger, reply delay
and template.

## View Rendering (view.go)

Header, quick actions, conversation viewport, thinking line, input bar and
status bar on the left; the avatar pane or the task panel on the right. On
narrow terminals the panel replaces the conversation.

# Usage

	m := chat.New(chat.Options{Config: cfg, Logger: logger})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
*/
package chat
