// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/jeranaias/mindeep-tui/internal/config"
)

// =============================================================================
// TIMER MESSAGES
// =============================================================================

// TimerMsg wakes the model to run scheduled jobs that are due.
type TimerMsg struct {
	At time.Time
}

// AnimTickMsg advances the avatar, mic pulse and task panel animations.
type AnimTickMsg struct {
	At time.Time
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a reload result from the config watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// configClosedMsg signals that the watcher stopped delivering updates.
type configClosedMsg struct{}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// NoticeMsg shows a transient line in the status bar.
type NoticeMsg struct {
	Text string
}

// noticeExpiredMsg clears notice seq if it is still the one shown.
type noticeExpiredMsg struct {
	seq int
}

// CopyResultMsg reports the outcome of a clipboard copy.
type CopyResultMsg struct {
	Chars int
	Err   error
}
