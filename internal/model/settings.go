// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages, and settings.
package model

// Theme values for Settings.Theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// FontSize values for Settings.FontSize.
const (
	FontSizeSmall  = "small"
	FontSizeMedium = "medium"
	FontSizeLarge  = "large"
)

// =============================================================================
// SETTINGS TYPE
// =============================================================================

// Settings is the process-wide configuration record. It is merged, not
// replaced, on update: unspecified fields retain their prior values.
//
// No validation is enforced here; out-of-range values are passed through to
// the exchange client uninterpreted.
type Settings struct {
	APIKey      string  `json:"apiKey"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
	Theme       string  `json:"theme"`
	FontSize    string  `json:"fontSize"`
	EnterToSend bool    `json:"enterToSend"`
	AutoScroll  bool    `json:"autoScroll"`
	Language    string  `json:"language"`
	Model       string  `json:"model"`
}

// DefaultSettings returns the settings used before any user customization.
func DefaultSettings() Settings {
	return Settings{
		Temperature: 0.7,
		MaxTokens:   1000,
		Theme:       ThemeLight,
		FontSize:    FontSizeMedium,
		EnterToSend: true,
		AutoScroll:  true,
		Language:    "english",
		Model:       "gemini-1.5-flash-latest",
	}
}

// =============================================================================
// SETTINGS PATCH
// =============================================================================

// SettingsPatch is a partial settings update. Nil fields are left untouched
// by Apply, giving shallow-merge semantics.
type SettingsPatch struct {
	APIKey      *string  `json:"apiKey,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"maxTokens,omitempty"`
	Theme       *string  `json:"theme,omitempty"`
	FontSize    *string  `json:"fontSize,omitempty"`
	EnterToSend *bool    `json:"enterToSend,omitempty"`
	AutoScroll  *bool    `json:"autoScroll,omitempty"`
	Language    *string  `json:"language,omitempty"`
	Model       *string  `json:"model,omitempty"`
}

// Apply merges the non-nil fields of the patch into s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.APIKey != nil {
		s.APIKey = *p.APIKey
	}
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
	}
	if p.MaxTokens != nil {
		s.MaxTokens = *p.MaxTokens
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.EnterToSend != nil {
		s.EnterToSend = *p.EnterToSend
	}
	if p.AutoScroll != nil {
		s.AutoScroll = *p.AutoScroll
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.Model != nil {
		s.Model = *p.Model
	}
}

// MaskedAPIKey returns a display-safe placeholder for the API key.
// SECURITY: Never expose key fragments in logs or UI.
func (s Settings) MaskedAPIKey() string {
	if s.APIKey == "" {
		return "[not set]"
	}
	return "[set]"
}
