// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Mindeep"
	default:
		return string(r)
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in the timeline. Fields are exported for
// rendering but a Message is never modified after construction.
type Message struct {
	ID        string       `json:"id"`
	Role      Role         `json:"role"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	TaskType  catalog.Type `json:"task_type,omitempty"`
}

// NewMessage creates a message with a fresh time-ordered ID.
func NewMessage(role Role, content string, task catalog.Type, at time.Time) Message {
	return Message{
		ID:        newID(),
		Role:      role,
		Content:   content,
		Timestamp: at,
		TaskType:  task,
	}
}

// Tagged reports whether the message carries a task-type tag.
func (m Message) Tagged() bool {
	return !m.TaskType.IsNone()
}

// Preview returns a truncated single-line preview of the content.
func (m Message) Preview(maxLen int) string {
	return util.TruncateRunes(util.SingleLine(m.Content), maxLen)
}

// TimeLabel formats the timestamp the way the timeline shows it.
func (m Message) TimeLabel() string {
	return m.Timestamp.Format("3:04:05 PM")
}

// newID returns a UUIDv7 so IDs sort by creation time. Falls back to a
// random UUID if the v7 generator fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
