// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages, and settings.
//
// This package defines the core domain types used throughout the application.
// Timestamps are epoch milliseconds throughout so exported and imported
// snapshots keep an identical wire shape.
//
// # Key Types
//
//   - Chat: a titled, ordered, append-only thread of messages with metadata
//   - Message: one immutable turn, authored by the user or assistant role
//   - Settings: the process-wide configuration record, shallow-merged on update
//   - AppState: the full persisted snapshot (chats + current id + settings)
//
// # Usage
//
// Create a chat and append a message:
//
//	chat := model.NewChat()
//	chat.AppendMessage(model.RoleUser, "Hello!")
//
// Merge a partial settings update:
//
//	temp := 0.2
//	patch := model.SettingsPatch{Temperature: &temp}
//	patch.Apply(&settings)
package model
