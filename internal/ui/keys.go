// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the full-screen terminal interface for lumino.
//
// This file defines keyboard bindings for the interface along with the
// help text shown in the status bar.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the interface.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Select       key.Binding
	NewChat      key.Binding
	DeleteChat   key.Binding
	Favorite     key.Binding
	CycleFilter  key.Binding
	Search       key.Binding
	FocusNext    key.Binding
	Back         key.Binding
	Submit       key.Binding
	InsertBreak  key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous chat"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next chat"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open chat"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n", "n"),
			key.WithHelp("n/C-n", "new chat"),
		),
		DeleteChat: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "delete chat"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle favorite"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "all/favorites"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "ctrl+f"),
			key.WithHelp("/ or C-f", "search"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch focus"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back to list"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		InsertBreak: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("M-Enter", "newline"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewChat, k.Search, k.Favorite, k.FocusNext, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.FocusNext, k.Back},
		{k.NewChat, k.DeleteChat, k.Favorite, k.CycleFilter, k.Search},
		{k.Submit, k.InsertBreak, k.Help, k.Quit},
	}
}
