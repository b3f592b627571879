// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages, and settings.
package model

// =============================================================================
// APPLICATION STATE
// =============================================================================

// AppState is the whole persisted application state: every chat, the active
// chat reference, and the settings record. It is the unit of save/restore.
//
// Chats are kept in insertion order with the newest at the head; the
// favorites-first display sort is a derived view, not state.
//
// CurrentChatID is a non-owning reference by id. If the referenced chat is
// deleted the reference must be cleared (referential integrity invariant);
// the store enforces this.
type AppState struct {
	Chats         []*Chat  `json:"chats"`
	CurrentChatID string   `json:"currentChatId"`
	Settings      Settings `json:"settings"`
}

// NewAppState returns an empty state with default settings.
func NewAppState() *AppState {
	return &AppState{
		Chats:    make([]*Chat, 0),
		Settings: DefaultSettings(),
	}
}

// FindChat returns the chat with the given id, or nil if absent.
func (st *AppState) FindChat(id string) *Chat {
	for _, c := range st.Chats {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// CurrentChat returns the active chat, or nil when none is selected.
func (st *AppState) CurrentChat() *Chat {
	if st.CurrentChatID == "" {
		return nil
	}
	return st.FindChat(st.CurrentChatID)
}

// Clone creates a deep copy of the state. Persistence serializes a clone so
// a slow disk write can never observe a half-applied mutation.
func (st *AppState) Clone() *AppState {
	clone := &AppState{
		Chats:         make([]*Chat, len(st.Chats)),
		CurrentChatID: st.CurrentChatID,
		Settings:      st.Settings,
	}
	for i, c := range st.Chats {
		clone.Chats[i] = c.Clone()
	}
	return clone
}
