// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store implements the chat store, the single source of truth
// mutated by all UI actions.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/lumino-tui/internal/model"
)

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// Persister saves state snapshots. The store persists after every mutation;
// a failed write is logged, never fatal.
type Persister interface {
	Save(st *model.AppState) error
}

// =============================================================================
// STORE TYPE
// =============================================================================

// Store is an explicit state container owned by the application root and
// passed by reference to consumers. All mutations go through it and are
// serialized by an internal mutex; reads hand out deep copies so callers
// can never mutate store state behind its back.
type Store struct {
	mu        sync.Mutex
	state     *model.AppState
	inFlight  map[string]bool
	persister Persister
}

// New creates a store around an initial state. A nil state starts empty
// with default settings. A nil persister disables persistence (tests).
func New(state *model.AppState, persister Persister) *Store {
	if state == nil {
		state = model.NewAppState()
	}
	if state.Chats == nil {
		state.Chats = make([]*model.Chat, 0)
	}
	return &Store{
		state:     state,
		inFlight:  make(map[string]bool),
		persister: persister,
	}
}

// persistLocked writes the current snapshot. Must be called with mu held.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.state.Clone()); err != nil {
		log.Error().Err(err).Msg("failed to persist state")
	}
}

// =============================================================================
// CHAT LIFECYCLE
// =============================================================================

// NewChat creates an empty chat, inserts it at the head of the collection,
// selects it as current, and returns its id.
func (s *Store) NewChat() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := model.NewChat()
	s.state.Chats = append([]*model.Chat{chat}, s.state.Chats...)
	s.state.CurrentChatID = chat.ID

	s.persistLocked()
	return chat.ID
}

// SelectChat sets the active chat reference. A lookup miss resolves to the
// "no active chat" state rather than an error.
func (s *Store) SelectChat(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.FindChat(id) == nil {
		s.state.CurrentChatID = ""
	} else {
		s.state.CurrentChatID = id
	}

	s.persistLocked()
}

// DeleteChat removes a chat. Deletion is immediate and unrecoverable. If the
// deleted chat was current, the current reference is cleared. Idempotent on
// repeated calls with the same id.
func (s *Store) DeleteChat(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Chats[:0]
	removed := false
	for _, c := range s.state.Chats {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return
	}
	s.state.Chats = kept
	if s.state.CurrentChatID == id {
		s.state.CurrentChatID = ""
	}
	delete(s.inFlight, id)

	s.persistLocked()
}

// ClearAll empties the chat collection and clears the current reference.
// Irreversible.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Chats = make([]*model.Chat, 0)
	s.state.CurrentChatID = ""
	s.inFlight = make(map[string]bool)

	s.persistLocked()
}

// =============================================================================
// CHAT MUTATION
// =============================================================================

// AppendMessage appends a message to a chat. Silently a no-op when the chat
// id does not resolve.
func (s *Store) AppendMessage(chatID string, role model.Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendMessageLocked(chatID, role, content)
}

func (s *Store) appendMessageLocked(chatID string, role model.Role, content string) {
	chat := s.state.FindChat(chatID)
	if chat == nil {
		return
	}
	chat.AppendMessage(role, content)
	s.persistLocked()
}

// ToggleFavorite flips a chat's favorite flag. No-op if the id is unknown.
func (s *Store) ToggleFavorite(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.state.FindChat(id)
	if chat == nil {
		return
	}
	chat.ToggleFavorite()

	s.persistLocked()
}

// =============================================================================
// SETTINGS
// =============================================================================

// Settings returns a copy of the current settings record.
func (s *Store) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// UpdateSettings shallow-merges a partial update into the settings record.
// Unspecified fields retain their prior values.
func (s *Store) UpdateSettings(patch model.SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patch.Apply(&s.state.Settings)

	s.persistLocked()
}

// =============================================================================
// READS
// =============================================================================

// Chat returns a deep copy of the chat with the given id, or nil.
func (s *Store) Chat(id string) *model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.state.FindChat(id)
	if chat == nil {
		return nil
	}
	return chat.Clone()
}

// CurrentChatID returns the active chat reference, or "" when none.
func (s *Store) CurrentChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentChatID
}

// CurrentChat returns a deep copy of the active chat, or nil when none is
// selected (including a dangling reference).
func (s *Store) CurrentChat() *model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.state.CurrentChat()
	if chat == nil {
		return nil
	}
	return chat.Clone()
}

// Chats returns deep copies of all chats in insertion order (newest first).
func (s *Store) Chats() []*model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Chat, len(s.state.Chats))
	for i, c := range s.state.Chats {
		out[i] = c.Clone()
	}
	return out
}

// Snapshot returns a deep copy of the whole application state.
func (s *Store) Snapshot() *model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// =============================================================================
// EXPORT / IMPORT
// =============================================================================

// ExportChat serializes one chat, including message ids and timestamps, for
// external storage. Returns "" when the id is unknown.
func (s *Store) ExportChat(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.state.FindChat(id)
	if chat == nil {
		return ""
	}
	data, err := json.Marshal(chat)
	if err != nil {
		log.Error().Err(err).Str("chat", id).Msg("failed to export chat")
		return ""
	}
	return string(data)
}

// ImportChat parses a serialized chat snapshot, assigns it a new id to avoid
// collision with existing data, and inserts it at the head. Malformed input
// is reported as an error and leaves state untouched.
func (s *Store) ImportChat(data string) error {
	var chat model.Chat
	if err := json.Unmarshal([]byte(data), &chat); err != nil {
		log.Warn().Err(err).Msg("failed to import chat")
		return fmt.Errorf("invalid chat snapshot: %w", err)
	}
	if chat.Messages == nil {
		chat.Messages = make([]*model.Message, 0)
	}
	chat.ReissueID()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Chats = append([]*model.Chat{&chat}, s.state.Chats...)

	s.persistLocked()
	return nil
}

// ExportSettings serializes the settings record.
func (s *Store) ExportSettings() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(s.state.Settings)
	if err != nil {
		log.Error().Err(err).Msg("failed to export settings")
		return ""
	}
	return string(data)
}

// ImportSettings merge-restores a serialized settings snapshot: fields
// present in the input overwrite, absent fields retain their prior values.
// Malformed input is reported as an error and leaves settings untouched.
func (s *Store) ImportSettings(data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Unmarshal over a copy of the current record to get merge semantics,
	// and only commit when the whole input parsed.
	merged := s.state.Settings
	if err := json.Unmarshal([]byte(data), &merged); err != nil {
		log.Warn().Err(err).Msg("failed to import settings")
		return fmt.Errorf("invalid settings snapshot: %w", err)
	}
	s.state.Settings = merged

	s.persistLocked()
	return nil
}
