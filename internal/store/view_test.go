// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store implements the chat store, the single source of truth
// mutated by all UI actions.
package store

import (
	"testing"

	"github.com/jeranaias/lumino-tui/internal/model"
)

func seedChat(s *Store, firstMessage string, favorite bool) string {
	id := s.NewChat()
	s.AppendMessage(id, model.RoleUser, firstMessage)
	if favorite {
		s.ToggleFavorite(id)
	}
	return id
}

func TestList_FavoritesFirstThenUpdatedAtDesc(t *testing.T) {
	s := New(nil, nil)

	plain := seedChat(s, "plain chat about nothing", false)
	fav := seedChat(s, "favorite chat about things", true)
	newest := seedChat(s, "newest plain chat", false)

	view := s.List(FilterAll, "")
	if len(view) != 3 {
		t.Fatalf("List = %d chats, want 3", len(view))
	}

	if view[0].ID != fav {
		t.Errorf("Favorite should sort first, got %s", view[0].ID)
	}
	if view[1].ID != newest {
		t.Errorf("Most recently updated non-favorite should be second, got %s", view[1].ID)
	}
	if view[2].ID != plain {
		t.Errorf("Oldest non-favorite should be last, got %s", view[2].ID)
	}
}

func TestList_FavoritesFilter(t *testing.T) {
	s := New(nil, nil)

	seedChat(s, "plain", false)
	fav := seedChat(s, "starred", true)

	view := s.List(FilterFavorites, "")
	if len(view) != 1 {
		t.Fatalf("List = %d chats, want 1", len(view))
	}
	if view[0].ID != fav {
		t.Errorf("Expected only the favorite, got %s", view[0].ID)
	}
}

func TestList_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	s := New(nil, nil)

	match := seedChat(s, "Terminal Emulator History", false)
	seedChat(s, "Cooking pasta", false)

	view := s.List(FilterAll, "terminal")
	if len(view) != 1 {
		t.Fatalf("List = %d chats, want 1", len(view))
	}
	if view[0].ID != match {
		t.Errorf("Expected title match, got %s", view[0].ID)
	}

	// Search applies to the derived title, not message content
	if got := s.List(FilterAll, "pasta"); len(got) != 1 {
		t.Errorf("Expected 1 match for %q, got %d", "pasta", len(got))
	}
	if got := s.List(FilterAll, "zzz-no-match"); len(got) != 0 {
		t.Errorf("Expected 0 matches, got %d", len(got))
	}
}

func TestList_ReturnsDetachedCopies(t *testing.T) {
	s := New(nil, nil)
	id := seedChat(s, "original title source text", false)

	view := s.List(FilterAll, "")
	view[0].Title = "mutated"
	view[0].Messages[0].Content = "mutated"

	if s.Chat(id).Title == "mutated" {
		t.Error("List must return copies, not live store state")
	}
	if s.Chat(id).Messages[0].Content == "mutated" {
		t.Error("List must deep-copy messages")
	}
}
