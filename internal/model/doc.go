// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// Messages are immutable once created and a Conversation only ever grows by
// appending, so the timeline order is insertion order.
//
// # Key Types
//
//   - Conversation: Append-only ordered list of messages
//   - Message: Single message with role, content, timestamp and task tag
//   - Role: Message author (user or assistant)
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.Append(model.NewMessage(model.RoleUser, "Hello!", catalog.None, time.Now()))
//	for _, msg := range conv.Messages() {
//	    fmt.Println(msg.Role.DisplayName(), msg.Content)
//	}
package model
