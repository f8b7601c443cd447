// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the append-only message timeline of one surface.
// It is not safe for concurrent use; the owning surface serializes access.
type Conversation struct {
	messages []Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{messages: make([]Message, 0, 16)}
}

// Append adds msg to the end of the timeline.
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Messages returns a copy of the timeline in insertion order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// At returns the i-th message.
func (c *Conversation) At(i int) (Message, bool) {
	if i < 0 || i >= len(c.messages) {
		return Message{}, false
	}
	return c.messages[i], true
}

// Last returns the most recent message.
func (c *Conversation) Last() (Message, bool) {
	return c.At(len(c.messages) - 1)
}

// LastByRole returns the most recent message written by role.
func (c *Conversation) LastByRole(role Role) (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == role {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

// Count returns how many messages were written by role.
func (c *Conversation) Count(role Role) int {
	n := 0
	for _, m := range c.messages {
		if m.Role == role {
			n++
		}
	}
	return n
}
