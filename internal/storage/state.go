// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides application state persistence for lumino TUI.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/lumino-tui/internal/model"
	"github.com/jeranaias/lumino-tui/internal/util"
)

// StateFileName is the fixed storage name for the application snapshot.
// The whole state (chats, current chat id, settings) is the unit of
// save/restore: read once at startup, rewritten on every mutation.
const StateFileName = "state.json"

// =============================================================================
// STATE STORE
// =============================================================================

// StateStore persists the application state to a single JSON document.
type StateStore struct {
	// Path is the full path of the state file.
	// Default: ~/.lumino/state.json
	Path string
}

// DataDir returns the lumino data directory path.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".lumino"), nil
}

// NewStateStore creates a store rooted at the default data directory.
func NewStateStore() (*StateStore, error) {
	dir, err := DataDir()
	if err != nil {
		return nil, err
	}
	return NewStateStoreWithDir(dir)
}

// NewStateStoreWithDir creates a store with a custom data directory.
func NewStateStoreWithDir(dir string) (*StateStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &StateStore{Path: filepath.Join(dir, StateFileName)}, nil
}

// =============================================================================
// SAVE / LOAD
// =============================================================================

// Save writes the state snapshot to disk. Last write wins; there is no
// transactional grouping beyond the atomicity of the single file write.
// SECURITY: 0600 permissions, the snapshot contains the API key.
func (s *StateStore) Save(st *model.AppState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := util.AtomicWriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	log.Debug().Int("chats", len(st.Chats)).Int("bytes", len(data)).Msg("state saved")
	return nil
}

// Load reads the state snapshot from disk. Returns ErrStateNotFound when no
// snapshot exists yet (first run).
func (s *StateStore) Load() (*model.AppState, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	var st model.AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	if st.Chats == nil {
		st.Chats = make([]*model.Chat, 0)
	}

	log.Debug().Int("chats", len(st.Chats)).Msg("state loaded")
	return &st, nil
}

// Exists reports whether a snapshot has been written.
func (s *StateStore) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrStateNotFound is returned when no state snapshot exists yet.
// Use errors.Is(err, ErrStateNotFound) to check for this error.
var ErrStateNotFound = &StateError{Message: "state not found"}

// StateError represents a persistence-related error.
type StateError struct {
	Message string
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing state errors.
func (e *StateError) Is(target error) bool {
	t, ok := target.(*StateError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
