// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the lumino-tui application.
//
// This package contains small, dependency-light helpers shared by the rest
// of the codebase:
//
//   - AtomicWriteFile: crash-safe file writes (tmp + fsync + rename)
//   - TruncateRunes / TruncateWidth: Unicode-safe string truncation
//   - PadRight: display-width padding for list layouts
//   - RelativeTime: short human-readable timestamps for the sidebar
package util
