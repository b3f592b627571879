// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export converts chat records into portable files.
//
// Two formats are supported:
//
//   - JSON: a faithful dump of the chat record that the application can
//     re-import on another machine.
//   - Markdown: a human-readable transcript with optional metadata
//     frontmatter and per-message timestamps.
//
// Exporters implement the Exporter interface so new formats can be added
// without touching the file-writing plumbing in ExportToFile.
package export
