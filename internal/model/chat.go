// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats, messages, and settings.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/lumino-tui/internal/util"
)

// TitleRunes is the number of leading characters of the first message used
// to derive a chat title.
const TitleRunes = 30

// DefaultTitle is the title of a chat before its first message arrives.
const DefaultTitle = "New Chat"

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat holds a titled, ordered thread of messages with metadata.
// Messages are append-only; insertion order is display order.
type Chat struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Messages  []*Message `json:"messages"`
	CreatedAt int64      `json:"createdAt"`
	UpdatedAt int64      `json:"updatedAt"`
	Favorite  bool       `json:"favorite"`
}

// NewChat creates a new empty chat with a generated ID.
func NewChat() *Chat {
	now := NowMillis()
	return &Chat{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		Messages:  make([]*Message, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AppendMessage creates and appends a new message, refreshing UpdatedAt.
// The title is derived from the first message's content the moment the chat
// transitions from zero to one message; later messages never change it.
func (c *Chat) AppendMessage(role Role, content string) *Message {
	msg := NewMessage(role, content)
	if len(c.Messages) == 0 {
		c.Title = TitleFromContent(content)
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = NowMillis()
	return msg
}

// TitleFromContent derives a chat title from message content: the first
// TitleRunes characters plus an ellipsis.
func TitleFromContent(content string) string {
	runes := []rune(content)
	if len(runes) > TitleRunes {
		runes = runes[:TitleRunes]
	}
	return string(runes) + "..."
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Chat) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages.
func (c *Chat) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Chat) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// FAVORITE / TIMESTAMPS
// =============================================================================

// ToggleFavorite flips the favorite flag and refreshes UpdatedAt.
// Bumping UpdatedAt on a metadata change affects the favorites-first sort
// order; this reproduces the observed behavior of the original client.
func (c *Chat) ToggleFavorite() {
	c.Favorite = !c.Favorite
	c.UpdatedAt = NowMillis()
}

// CreatedTime returns CreatedAt as a time.Time.
func (c *Chat) CreatedTime() time.Time {
	return time.UnixMilli(c.CreatedAt)
}

// UpdatedTime returns UpdatedAt as a time.Time.
func (c *Chat) UpdatedTime() time.Time {
	return time.UnixMilli(c.UpdatedAt)
}

// =============================================================================
// SERIALIZATION HELPERS
// =============================================================================

// Preview returns a short single-line preview of the chat's last message.
func (c *Chat) Preview(maxRunes int) string {
	last := c.LastMessage()
	if last == nil {
		return ""
	}
	return last.Preview(maxRunes)
}

// Clone creates a deep copy of the chat.
func (c *Chat) Clone() *Chat {
	clone := &Chat{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Favorite:  c.Favorite,
		Messages:  make([]*Message, len(c.Messages)),
	}
	for i, msg := range c.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}
	return clone
}

// ReissueID assigns a fresh ID to the chat. Used on import so an ingested
// snapshot can never collide with existing data.
func (c *Chat) ReissueID() {
	c.ID = uuid.NewString()
}

// TitlePreview returns the title truncated to a display width for lists.
func (c *Chat) TitlePreview(maxWidth int) string {
	return util.TruncateWidth(c.Title, maxWidth)
}
