// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/lumino-tui/internal/model"
)

func sampleChat() *model.Chat {
	chat := model.NewChat()
	chat.AppendMessage(model.RoleUser, "What is a goroutine?")
	chat.AppendMessage(model.RoleAssistant, "A goroutine is a lightweight thread managed by the Go runtime.")
	return chat
}

func TestJSONExporter_RoundTrip(t *testing.T) {
	chat := sampleChat()

	data, err := NewJSONExporter().Export(chat)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded model.Chat
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported JSON did not parse: %v", err)
	}
	if decoded.ID != chat.ID {
		t.Errorf("ID = %q, want %q", decoded.ID, chat.ID)
	}
	if decoded.Title != chat.Title {
		t.Errorf("Title = %q, want %q", decoded.Title, chat.Title)
	}
	if len(decoded.Messages) != 2 {
		t.Fatalf("Messages length = %d, want 2", len(decoded.Messages))
	}
	if decoded.Messages[0].Role != model.RoleUser {
		t.Errorf("first message role = %q, want %q", decoded.Messages[0].Role, model.RoleUser)
	}
}

func TestJSONExporter_NilChat(t *testing.T) {
	if _, err := NewJSONExporter().Export(nil); err == nil {
		t.Error("Export(nil) should return an error")
	}
}

func TestMarkdownExporter_Content(t *testing.T) {
	chat := sampleChat()

	data, err := NewMarkdownExporter(nil).Export(chat)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"[User]",
		"[Assistant]",
		"What is a goroutine?",
		"lightweight thread",
		"## Conversation",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestMarkdownExporter_NoMetadata(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeMetadata = false
	opts.IncludeTimestamps = false

	data, err := NewMarkdownExporter(opts).Export(sampleChat())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := string(data)

	if strings.Contains(out, "## Chat Information") {
		t.Error("metadata section present despite IncludeMetadata=false")
	}
	if strings.Contains(out, "<sub>") {
		t.Error("timestamps present despite IncludeTimestamps=false")
	}
}

func TestMarkdownExporter_EmptyChat(t *testing.T) {
	chat := model.NewChat()
	if _, err := NewMarkdownExporter(nil).Export(chat); err == nil {
		t.Error("exporting a chat with no messages should fail")
	}
}

func TestMarkdownExporter_EscapesTitle(t *testing.T) {
	chat := sampleChat()
	chat.Title = "C# *tricks* [part 1]"

	data, err := NewMarkdownExporter(nil).Export(chat)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(string(data), `# C\# \*tricks\* \[part 1\]`) {
		t.Errorf("title not escaped in heading:\n%s", data)
	}
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputDir = dir
	opts.OpenAfterExport = false

	chat := sampleChat()
	chat.Title = "a/b:c*d?"

	path, err := ExportToFile(chat, NewJSONExporter(), opts)
	if err != nil {
		t.Fatalf("ExportToFile() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("output dir = %q, want %q", filepath.Dir(path), dir)
	}
	base := filepath.Base(path)
	if strings.ContainsAny(base, `/\:*?"<>| `) {
		t.Errorf("filename %q contains unsanitized characters", base)
	}
	if !strings.HasSuffix(base, ".json") {
		t.Errorf("filename %q missing .json extension", base)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file not readable: %v", err)
	}
}

func TestExportJSONAndMarkdown(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputDir = dir

	chat := sampleChat()

	jsonPath, err := ExportJSON(chat, opts)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if !strings.HasSuffix(jsonPath, ".json") {
		t.Errorf("ExportJSON path = %q, want .json extension", jsonPath)
	}

	mdPath, err := ExportMarkdown(chat, opts)
	if err != nil {
		t.Fatalf("ExportMarkdown() error = %v", err)
	}
	if !strings.HasSuffix(mdPath, ".md") {
		t.Errorf("ExportMarkdown path = %q, want .md extension", mdPath)
	}

	data, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read exported markdown: %v", err)
	}
	if !strings.Contains(string(data), "What is a goroutine?") {
		t.Error("exported markdown missing message content")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "hello_world"},
		{"a/b\\c", "a-b-c"},
		{"", "chat"},
		{"tabs\there", "tabs_here"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilename_TruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := sanitizeFilename(long)
	if len([]rune(got)) > 50 {
		t.Errorf("sanitized length = %d, want <= 50", len([]rune(got)))
	}
}
