// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/lumino-tui/internal/model"
	"github.com/jeranaias/lumino-tui/internal/store"
	"github.com/jeranaias/lumino-tui/internal/ui/styles"
)

// focusArea identifies which pane receives keyboard input.
type focusArea int

const (
	focusSidebar focusArea = iota
	focusSearch
	focusInput
)

// Layout constants.
const (
	sidebarWidth    = 32
	inputHeight     = 3
	minViewportRows = 4
)

// turnDoneMsg carries the outcome of one exchange back into Update.
// The chat id is pinned at submission time so a reply lands in the chat
// that asked for it even if the user switched chats meanwhile.
type turnDoneMsg struct {
	chatID string
	reply  string
	err    error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea model for the full-screen interface.
type Model struct {
	store     *store.Store
	exchanger store.Exchanger
	theme     *styles.Theme
	keys      KeyMap

	search   textinput.Model
	input    textarea.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	filter   store.Filter
	cursor   int
	focus    focusArea
	showHelp bool
	status   string

	width  int
	height int
	ready  bool
}

// New creates the interface model over a store and an exchanger.
func New(s *store.Store, exchanger store.Exchanger) *Model {
	settings := s.Settings()
	theme := styles.NewTheme(settings.Theme)

	search := textinput.New()
	search.Placeholder = "Search chats..."
	search.Prompt = "/ "
	search.CharLimit = 120

	input := textarea.New()
	input.Placeholder = "Type a message..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(inputHeight)

	m := &Model{
		store:     s,
		exchanger: exchanger,
		theme:     theme,
		keys:      DefaultKeyMap(),
		search:    search,
		input:     input,
		filter:    store.FilterAll,
		focus:     focusSidebar,
	}

	if s.CurrentChatID() != "" {
		m.focus = focusInput
		m.input.Focus()
	}

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// visibleChats returns the sidebar's chat list under the active filter
// and search query.
func (m *Model) visibleChats() []*model.Chat {
	return m.store.List(m.filter, m.search.Value())
}

// clampCursor keeps the sidebar cursor inside the visible list.
func (m *Model) clampCursor() {
	n := len(m.visibleChats())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectedChat returns the chat under the sidebar cursor, or nil.
func (m *Model) selectedChat() *model.Chat {
	chats := m.visibleChats()
	if m.cursor < 0 || m.cursor >= len(chats) {
		return nil
	}
	return chats[m.cursor]
}

// rebuildRenderer recreates the markdown renderer for the current width
// and theme. Glamour word-wraps at render time, so the renderer must be
// rebuilt whenever the viewport width changes.
func (m *Model) rebuildRenderer() {
	style := "light"
	if m.theme.IsDark {
		style = "dark"
	}

	wrap := m.width - sidebarWidth - 10
	if wrap < 20 {
		wrap = 20
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = renderer
}

// renderMarkdown renders assistant content as markdown, falling back to
// the raw text when the renderer is unavailable.
func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}
