// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/jeranaias/lumino-tui/internal/model"
)

func TestNewTheme_DarkFlag(t *testing.T) {
	if th := NewTheme(model.ThemeDark); !th.IsDark {
		t.Error("dark theme should set IsDark")
	}
	if th := NewTheme(model.ThemeLight); th.IsDark {
		t.Error("light theme should not set IsDark")
	}
}

func TestNewTheme_StylesInitialized(t *testing.T) {
	th := NewTheme(model.ThemeLight)

	if !th.ChatItemSelected.GetBold() {
		t.Error("ChatItemSelected should be bold")
	}
	if !th.SidebarHeader.GetBold() {
		t.Error("SidebarHeader should be bold")
	}
	if th.UserBubble.GetMarginLeft() == 0 {
		t.Error("UserBubble should be indented from the left")
	}
	if th.AssistantBubble.GetMarginRight() == 0 {
		t.Error("AssistantBubble should be indented from the right")
	}
}

func TestStatusIndicators_ASCIIOnly(t *testing.T) {
	for _, s := range []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
	} {
		for _, r := range s {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", s, r)
			}
		}
	}
}

func TestRenderHelpers_IncludeIndicator(t *testing.T) {
	if out := RenderSuccess("saved"); !strings.Contains(out, "[OK]") || !strings.Contains(out, "saved") {
		t.Errorf("RenderSuccess output missing indicator or message: %q", out)
	}
	if out := RenderError("boom"); !strings.Contains(out, "[X]") {
		t.Errorf("RenderError output missing indicator: %q", out)
	}
}
