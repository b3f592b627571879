// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles defines the color palette and Lip Gloss styles shared by
// the TUI and CLI surfaces. Colors are adaptive pairs; NewTheme pins the
// active variant to the configured theme instead of terminal detection.
package styles
