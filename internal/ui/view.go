// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lumino-tui/internal/model"
	"github.com/jeranaias/lumino-tui/internal/store"
	"github.com/jeranaias/lumino-tui/internal/util"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	main := m.renderMain()

	layout := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	return lipgloss.JoinVertical(lipgloss.Left, layout, m.renderStatusBar())
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m *Model) renderSidebar() string {
	var sb strings.Builder

	sb.WriteString(m.theme.SidebarHeader.Render("lumino"))
	sb.WriteString("\n")

	if m.filter == store.FilterFavorites {
		sb.WriteString(m.theme.FilterActive.Render("[favorites]"))
	} else {
		sb.WriteString(m.theme.FilterLabel.Render("[all chats]"))
	}
	sb.WriteString("\n")
	sb.WriteString(m.search.View())
	sb.WriteString("\n\n")

	chats := m.visibleChats()
	if len(chats) == 0 {
		sb.WriteString(m.theme.ChatItemMeta.Render("No chats yet."))
		sb.WriteString("\n")
		sb.WriteString(m.theme.ChatItemMeta.Render("Press n to start one."))
	}

	currentID := m.store.CurrentChatID()
	for i, chat := range chats {
		title := chat.TitlePreview(sidebarWidth - 8)

		mark := "  "
		if chat.Favorite {
			mark = m.theme.FavoriteMark.Render("* ")
		}
		busy := ""
		if m.store.InFlight(chat.ID) {
			busy = m.theme.Waiting.Render(" ~")
		}

		line := mark + title + busy
		switch {
		case i == m.cursor && m.focus != focusInput:
			line = m.theme.ChatItemSelected.Render(line)
		case chat.ID == currentID:
			line = m.theme.ChatItem.Bold(true).Render(line)
		default:
			line = m.theme.ChatItem.Render(line)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString("  " + m.theme.ChatItemMeta.Render(util.RelativeTime(chat.UpdatedTime())))
		sb.WriteString("\n")
	}

	style := m.theme.Sidebar
	if m.focus == focusSidebar || m.focus == focusSearch {
		style = m.theme.SidebarFocused
	}

	return style.
		Width(sidebarWidth).
		Height(m.height - 2).
		Render(sb.String())
}

// =============================================================================
// MAIN PANE
// =============================================================================

func (m *Model) renderMain() string {
	chat := m.store.CurrentChat()

	header := "No chat selected"
	if chat != nil {
		header = chat.Title
		if chat.Favorite {
			header = "* " + header
		}
	}

	inputStyle := m.theme.InputContainer
	if m.focus == focusInput {
		inputStyle = m.theme.InputFocused
	}

	parts := []string{
		m.theme.ChatHeader.Width(m.viewport.Width).Render(header),
		m.viewport.View(),
		inputStyle.Width(m.viewport.Width).Render(m.input.View()),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// refreshViewport rebuilds the transcript for the current chat and keeps
// the view pinned to the newest message when auto-scroll is on.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	chat := m.store.CurrentChat()
	if chat == nil {
		m.viewport.SetContent(m.theme.ChatItemMeta.Render("\n  Select a chat or press n to start a new one."))
		return
	}

	var sb strings.Builder
	for _, msg := range chat.Messages {
		sb.WriteString(m.renderMessage(msg))
		sb.WriteString("\n")
	}

	if m.store.InFlight(chat.ID) {
		sb.WriteString(m.theme.Waiting.Render("  waiting for reply..."))
		sb.WriteString("\n")
	}

	m.viewport.SetContent(sb.String())
	if m.store.Settings().AutoScroll {
		m.viewport.GotoBottom()
	}
}

// renderMessage renders a single message bubble. Assistant replies are
// markdown; user messages are shown verbatim.
func (m *Model) renderMessage(msg *model.Message) string {
	meta := m.theme.MessageMeta.Render(
		fmt.Sprintf("%s - %s", msg.Role.DisplayName(), util.RelativeTime(msg.Time())))

	if msg.Role == model.RoleAssistant {
		body := m.theme.AssistantBubble.Render(strings.TrimRight(m.renderMarkdown(msg.Content), "\n"))
		return meta + "\n" + body + "\n"
	}

	body := m.theme.UserBubble.Render(msg.Content)
	block := lipgloss.JoinVertical(lipgloss.Right, meta, body)
	return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, block) + "\n"
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m *Model) renderStatusBar() string {
	if m.status != "" {
		return m.theme.StatusBar.Width(m.width).Render(m.theme.ErrorStyle.Render(m.status))
	}

	if m.showHelp {
		var rows []string
		for _, group := range m.keys.FullHelp() {
			var parts []string
			for _, b := range group {
				parts = append(parts,
					m.theme.ShortcutKey.Render(b.Help().Key)+" "+m.theme.ShortcutDesc.Render(b.Help().Desc))
			}
			rows = append(rows, strings.Join(parts, "  "))
		}
		return m.theme.StatusBar.Width(m.width).Render(strings.Join(rows, "\n"))
	}

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts,
			m.theme.ShortcutKey.Render(b.Help().Key)+" "+m.theme.ShortcutDesc.Render(b.Help().Desc))
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}
