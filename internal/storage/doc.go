// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides application state persistence for lumino TUI.
//
// The entire application state (chats collection, current chat id, settings)
// is serialized as one JSON document under a fixed storage name. It is read
// once at startup and rewritten after every mutation; writes are atomic
// (tmp + fsync + rename) so a crash leaves either the old or the new
// complete snapshot on disk.
//
// # Usage
//
//	store, err := storage.NewStateStore()
//	state, err := store.Load()   // storage.ErrStateNotFound on first run
//	err = store.Save(state)
//
// # Storage Location
//
// The snapshot lives at ~/.lumino/state.json with 0600 permissions, since
// it contains the API credential.
package storage
