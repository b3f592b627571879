// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store implements the chat store, the single source of truth
// mutated by all UI actions.
//
// The store is an explicit state container: the application root constructs
// it and passes it to consumers. Data flow is unidirectional (store ->
// presentation for reads, presentation -> store for writes) and the full
// state snapshot is handed to the persister after every mutation.
//
// # Operations
//
//   - NewChat / SelectChat / DeleteChat / ClearAll: chat lifecycle
//   - AppendMessage / ToggleFavorite: chat mutation (silent no-op on
//     unknown ids)
//   - UpdateSettings: shallow-merge of a partial settings record
//   - ExportChat / ImportChat / ExportSettings / ImportSettings: snapshot
//     exchange with external storage; imports fail softly
//   - List: the derived display view (filter + search + sort)
//   - BeginTurn / CompleteTurn / SubmitTurn: one user turn against an
//     Exchanger, with a per-chat in-flight marker as the only backpressure
//
// # Concurrency
//
// All mutations are serialized by a mutex; reads return deep copies. The
// exchange is the only suspending operation and runs outside the lock, so
// different chats can have independent outstanding requests.
package store
