// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements argument parsing and the non-TUI command surface:
// an interactive REPL, chat listing, export/import, bulk deletion, and
// configuration management. All commands operate on the same store and
// persisted state as the TUI.
package cli
