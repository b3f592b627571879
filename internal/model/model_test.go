// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages, and settings.
package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewMessage(RoleUser, "Hello")

	if msg.ID == "" {
		t.Error("Expected non-empty ID")
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.Content != "Hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "Hello")
	}
	if msg.Timestamp == 0 {
		t.Error("Expected non-zero timestamp")
	}
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewMessage(RoleUser, "x")
		if seen[msg.ID] {
			t.Fatalf("Duplicate message ID: %s", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewMessage(RoleUser, "line one\nline two")
	got := msg.Preview(50)
	if strings.Contains(got, "\n") {
		t.Errorf("Preview should be single-line, got %q", got)
	}
}

func TestRole_DisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("RoleUser display = %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != "Assistant" {
		t.Errorf("RoleAssistant display = %q", RoleAssistant.DisplayName())
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAssistant.Valid() {
		t.Error("Known roles should be valid")
	}
	if Role("system").Valid() {
		t.Error("Unknown role should be invalid")
	}
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestNewChat(t *testing.T) {
	chat := NewChat()

	if chat.ID == "" {
		t.Error("Expected non-empty ID")
	}
	if chat.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", chat.Title, DefaultTitle)
	}
	if !chat.IsEmpty() {
		t.Error("New chat should be empty")
	}
	if chat.Favorite {
		t.Error("New chat should not be favorite")
	}
	if chat.CreatedAt == 0 || chat.UpdatedAt == 0 {
		t.Error("Expected timestamps to be set")
	}
}

func TestChat_TitleFromFirstMessage(t *testing.T) {
	chat := NewChat()

	content := "What is the capital of France and why is it famous?"
	chat.AppendMessage(RoleUser, content)

	want := string([]rune(content)[:TitleRunes]) + "..."
	if chat.Title != want {
		t.Errorf("Title = %q, want %q", chat.Title, want)
	}

	// Subsequent messages never change the title
	chat.AppendMessage(RoleAssistant, "Paris, because of everything.")
	if chat.Title != want {
		t.Errorf("Title changed on second append: %q", chat.Title)
	}
}

func TestChat_TitleShortContent(t *testing.T) {
	chat := NewChat()
	chat.AppendMessage(RoleUser, "Hi")

	// The ellipsis is appended regardless of content length
	if chat.Title != "Hi..." {
		t.Errorf("Title = %q, want %q", chat.Title, "Hi...")
	}
}

func TestChat_TitlePreview(t *testing.T) {
	chat := NewChat()
	chat.Title = "A very long conversation title that keeps going"

	got := chat.TitlePreview(20)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("TitlePreview = %q, want trailing ellipsis", got)
	}
	if len([]rune(got)) > 20 {
		t.Errorf("TitlePreview = %q, wider than 20", got)
	}

	chat.Title = "Short"
	if got := chat.TitlePreview(20); got != "Short" {
		t.Errorf("TitlePreview = %q, want %q", got, "Short")
	}
}

func TestChat_AppendMessage_Order(t *testing.T) {
	chat := NewChat()
	chat.AppendMessage(RoleUser, "first")
	chat.AppendMessage(RoleAssistant, "second")
	chat.AppendMessage(RoleUser, "third")

	if chat.MessageCount() != 3 {
		t.Fatalf("MessageCount = %d, want 3", chat.MessageCount())
	}
	if chat.Messages[0].Content != "first" || chat.Messages[2].Content != "third" {
		t.Error("Messages not in insertion order")
	}
	if chat.LastMessage().Content != "third" {
		t.Errorf("LastMessage = %q, want %q", chat.LastMessage().Content, "third")
	}
}

func TestChat_ToggleFavorite(t *testing.T) {
	chat := NewChat()

	chat.ToggleFavorite()
	if !chat.Favorite {
		t.Error("Expected favorite after first toggle")
	}

	chat.ToggleFavorite()
	if chat.Favorite {
		t.Error("Expected toggle twice to restore original value")
	}
}

func TestChat_Clone(t *testing.T) {
	chat := NewChat()
	chat.AppendMessage(RoleUser, "original")

	clone := chat.Clone()
	clone.Messages[0].Content = "mutated"
	clone.Title = "mutated"

	if chat.Messages[0].Content != "original" {
		t.Error("Clone shares message storage with original")
	}
	if chat.Title == "mutated" {
		t.Error("Clone shares title with original")
	}
}

func TestChat_ReissueID(t *testing.T) {
	chat := NewChat()
	oldID := chat.ID
	chat.ReissueID()
	if chat.ID == oldID {
		t.Error("ReissueID should assign a new ID")
	}
}

// =============================================================================
// SETTINGS TESTS
// =============================================================================

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", s.Temperature)
	}
	if s.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want 1000", s.MaxTokens)
	}
	if s.Theme != ThemeLight {
		t.Errorf("Theme = %q, want %q", s.Theme, ThemeLight)
	}
	if !s.EnterToSend || !s.AutoScroll {
		t.Error("Expected enterToSend and autoScroll defaults to be true")
	}
	if s.Model == "" {
		t.Error("Expected a default model")
	}
}

func TestSettingsPatch_Apply_OnlyNamedFields(t *testing.T) {
	s := DefaultSettings()
	before := s

	temp := 0.2
	SettingsPatch{Temperature: &temp}.Apply(&s)

	if s.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", s.Temperature)
	}

	// Every other field is byte-identical to its prior value
	s.Temperature = before.Temperature
	if s != before {
		t.Error("Patch changed fields other than Temperature")
	}
}

func TestSettingsPatch_Apply_MultipleFields(t *testing.T) {
	s := DefaultSettings()

	theme := ThemeDark
	enter := false
	SettingsPatch{Theme: &theme, EnterToSend: &enter}.Apply(&s)

	if s.Theme != ThemeDark {
		t.Errorf("Theme = %q, want %q", s.Theme, ThemeDark)
	}
	if s.EnterToSend {
		t.Error("EnterToSend should be false")
	}
}

func TestSettings_MaskedAPIKey(t *testing.T) {
	s := Settings{}
	if s.MaskedAPIKey() != "[not set]" {
		t.Errorf("MaskedAPIKey = %q", s.MaskedAPIKey())
	}
	s.APIKey = "secret-key-value"
	if strings.Contains(s.MaskedAPIKey(), "secret") {
		t.Error("MaskedAPIKey must not expose key material")
	}
}

// =============================================================================
// APP STATE TESTS
// =============================================================================

func TestAppState_FindChat(t *testing.T) {
	st := NewAppState()
	chat := NewChat()
	st.Chats = append(st.Chats, chat)

	if st.FindChat(chat.ID) != chat {
		t.Error("FindChat should return the chat")
	}
	if st.FindChat("missing") != nil {
		t.Error("FindChat on unknown id should return nil")
	}
}

func TestAppState_CurrentChat(t *testing.T) {
	st := NewAppState()
	if st.CurrentChat() != nil {
		t.Error("Expected no current chat on empty state")
	}

	chat := NewChat()
	st.Chats = append(st.Chats, chat)
	st.CurrentChatID = chat.ID
	if st.CurrentChat() != chat {
		t.Error("CurrentChat should resolve the reference")
	}

	st.CurrentChatID = "dangling"
	if st.CurrentChat() != nil {
		t.Error("Dangling reference should resolve to nil")
	}
}

func TestAppState_Clone(t *testing.T) {
	st := NewAppState()
	chat := NewChat()
	chat.AppendMessage(RoleUser, "hello")
	st.Chats = append(st.Chats, chat)
	st.CurrentChatID = chat.ID

	clone := st.Clone()
	clone.Chats[0].Messages[0].Content = "mutated"
	clone.Settings.Temperature = 1.9

	if st.Chats[0].Messages[0].Content != "hello" {
		t.Error("Clone shares chats with original")
	}
	if st.Settings.Temperature == 1.9 {
		t.Error("Clone shares settings with original")
	}
}
