// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store implements the chat store, the single source of truth
// mutated by all UI actions.
package store

import (
	"sort"
	"strings"

	"github.com/jeranaias/lumino-tui/internal/model"
)

// =============================================================================
// DISPLAY VIEW
// =============================================================================

// Filter selects which chats appear in the display view.
type Filter int

const (
	// FilterAll shows every chat.
	FilterAll Filter = iota
	// FilterFavorites shows only favorite chats.
	FilterFavorites
)

// List returns the derived, read-only display view of the chat collection:
// filtered by the favorite toggle and a case-insensitive substring match on
// title, then sorted favorites first with ties broken by UpdatedAt
// descending. The returned chats are deep copies.
func (s *Store) List(filter Filter, query string) []*model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(query)

	out := make([]*model.Chat, 0, len(s.state.Chats))
	for _, c := range s.state.Chats {
		if filter == FilterFavorites && !c.Favorite {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(c.Title), query) {
			continue
		}
		out = append(out, c.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Favorite != out[j].Favorite {
			return out[i].Favorite
		}
		return out[i].UpdatedAt > out[j].UpdatedAt
	})

	return out
}
