// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides application state persistence for lumino TUI.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jeranaias/lumino-tui/internal/model"
)

func TestNewStateStoreWithDir(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStateStoreWithDir(tempDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	want := filepath.Join(tempDir, StateFileName)
	if store.Path != want {
		t.Errorf("Path = %q, want %q", store.Path, want)
	}
}

func TestStateStore_SaveAndLoad(t *testing.T) {
	store, err := NewStateStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	state := model.NewAppState()
	chat := model.NewChat()
	chat.AppendMessage(model.RoleUser, "Hello")
	chat.AppendMessage(model.RoleAssistant, "Hi there!")
	state.Chats = append(state.Chats, chat)
	state.CurrentChatID = chat.ID
	state.Settings.Temperature = 1.3

	if err := store.Save(state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded.Chats) != 1 {
		t.Fatalf("Loaded chats = %d, want 1", len(loaded.Chats))
	}
	if loaded.CurrentChatID != chat.ID {
		t.Errorf("CurrentChatID = %q, want %q", loaded.CurrentChatID, chat.ID)
	}
	if loaded.Settings.Temperature != 1.3 {
		t.Errorf("Temperature = %v, want 1.3", loaded.Settings.Temperature)
	}

	got := loaded.Chats[0]
	if got.Title != chat.Title {
		t.Errorf("Title = %q, want %q", got.Title, chat.Title)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("Messages = %d, want 2", len(got.Messages))
	}
	if got.Messages[0].Timestamp != chat.Messages[0].Timestamp {
		t.Error("Message timestamps should round-trip exactly")
	}
}

func TestStateStore_LoadNotFound(t *testing.T) {
	store, err := NewStateStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	_, err = store.Load()
	if !errors.Is(err, ErrStateNotFound) {
		t.Errorf("Expected ErrStateNotFound, got %v", err)
	}
}

func TestStateStore_LoadCorrupt(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewStateStoreWithDir(tempDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := os.WriteFile(store.Path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, loadErr := store.Load()
	if loadErr == nil {
		t.Fatal("Expected error loading corrupt state")
	}
	if errors.Is(loadErr, ErrStateNotFound) {
		t.Error("Corrupt state must not be reported as not-found")
	}
}

func TestStateStore_SaveIsAtomicOverwrite(t *testing.T) {
	store, err := NewStateStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	first := model.NewAppState()
	if err := store.Save(first); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	second := model.NewAppState()
	second.Chats = append(second.Chats, model.NewChat())
	if err := store.Save(second); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Chats) != 1 {
		t.Errorf("Loaded chats = %d, want 1 (last write wins)", len(loaded.Chats))
	}
}

func TestStateStore_Permissions(t *testing.T) {
	store, err := NewStateStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Save(model.NewAppState()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(store.Path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Permissions = %o, want 0600", perm)
	}
}

func TestStateStore_Exists(t *testing.T) {
	store, err := NewStateStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if store.Exists() {
		t.Error("Exists should be false before first save")
	}
	if err := store.Save(model.NewAppState()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists() {
		t.Error("Exists should be true after save")
	}
}
