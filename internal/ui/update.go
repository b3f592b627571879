// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lumino-tui/internal/store"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case turnDoneMsg:
		m.store.CompleteTurn(msg.chatID, msg.reply, msg.err)
		m.status = ""
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		switch m.focus {
		case focusSidebar:
			return m.updateSidebar(msg)
		case focusSearch:
			return m.updateSearch(msg)
		case focusInput:
			return m.updateInput(msg)
		}
	}

	// Non-key messages (cursor blink and friends) go to the focused widget.
	return m.forward(msg)
}

// handleResize recomputes the layout for a new terminal size.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	mainWidth := m.width - sidebarWidth - 4
	if mainWidth < 20 {
		mainWidth = 20
	}
	// Header, input box, and status bar each take a fixed slice.
	viewportHeight := m.height - inputHeight - 6
	if viewportHeight < minViewportRows {
		viewportHeight = minViewportRows
	}

	if !m.ready {
		m.viewport = viewport.New(mainWidth, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = mainWidth
		m.viewport.Height = viewportHeight
	}

	m.input.SetWidth(mainWidth)
	m.search.Width = sidebarWidth - 6

	m.rebuildRenderer()
	m.refreshViewport()
	return m, nil
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m *Model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()

	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, m.keys.Select):
		if chat := m.selectedChat(); chat != nil {
			m.store.SelectChat(chat.ID)
			m.focusInputPane()
			m.refreshViewport()
		}

	case key.Matches(msg, m.keys.NewChat):
		m.store.NewChat()
		m.cursor = 0
		m.focusInputPane()
		m.refreshViewport()

	case key.Matches(msg, m.keys.DeleteChat):
		if chat := m.selectedChat(); chat != nil {
			m.store.DeleteChat(chat.ID)
			m.clampCursor()
			m.refreshViewport()
		}

	case key.Matches(msg, m.keys.Favorite):
		if chat := m.selectedChat(); chat != nil {
			m.store.ToggleFavorite(chat.ID)
		}

	case key.Matches(msg, m.keys.CycleFilter):
		if m.filter == store.FilterAll {
			m.filter = store.FilterFavorites
		} else {
			m.filter = store.FilterAll
		}
		m.cursor = 0

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.search.Focus()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.FocusNext):
		m.focusInputPane()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}

	return m, nil
}

// =============================================================================
// SEARCH
// =============================================================================

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.focus = focusSidebar
		m.clampCursor()
		return m, nil
	case "enter":
		m.search.Blur()
		m.focus = focusSidebar
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.clampCursor()
	return m, cmd
}

// =============================================================================
// INPUT
// =============================================================================

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	enterToSend := m.store.Settings().EnterToSend

	switch {
	case key.Matches(msg, m.keys.Back):
		m.input.Blur()
		m.focus = focusSidebar
		return m, nil

	case key.Matches(msg, m.keys.FocusNext):
		m.input.Blur()
		m.focus = focusSidebar
		return m, nil

	case key.Matches(msg, m.keys.InsertBreak):
		if enterToSend {
			m.input.InsertString("\n")
			return m, nil
		}
		return m, m.submitTurn()

	case key.Matches(msg, m.keys.Submit):
		if enterToSend {
			return m, m.submitTurn()
		}
		// Enter inserts a newline; fall through to the textarea.
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitTurn starts one exchange for the current chat. The submission path
// is disabled while that chat has a request in flight; other chats are
// unaffected.
func (m *Model) submitTurn() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}

	chatID := m.store.CurrentChatID()
	if chatID == "" {
		chatID = m.store.NewChat()
		m.cursor = 0
	}

	if err := m.store.BeginTurn(chatID, text); err != nil {
		if errors.Is(err, store.ErrChatBusy) {
			m.status = "Still waiting for the previous reply..."
		}
		return nil
	}

	m.input.Reset()
	m.status = ""
	m.refreshViewport()

	settings := m.store.Settings()
	exchanger := m.exchanger
	return func() tea.Msg {
		reply, err := exchanger.SendTurn(context.Background(), text, settings)
		return turnDoneMsg{chatID: chatID, reply: reply, err: err}
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) focusInputPane() {
	m.focus = focusInput
	m.search.Blur()
	m.input.Focus()
}

// forward routes non-key messages to the focused widget.
func (m *Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.focus {
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	case focusInput:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
