// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the full-screen terminal interface.
//
// The layout is a two-pane split: a sidebar listing chats (with search and
// an all/favorites filter) and a main pane showing the selected chat's
// transcript above a message composer. Assistant replies render as
// markdown via glamour; the theme follows the configured light/dark
// setting.
//
// One exchange may be outstanding per chat. Submitting in a busy chat is
// refused with a status-bar notice; switching to another chat and chatting
// there is always possible.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lumino-tui/internal/store"
)

// Run starts the interface and blocks until the user quits.
func Run(s *store.Store, exchanger store.Exchanger) error {
	p := tea.NewProgram(New(s, exchanger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
