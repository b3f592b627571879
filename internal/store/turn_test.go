// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store implements the chat store, the single source of truth
// mutated by all UI actions.
package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/lumino-tui/internal/model"
)

// mockExchanger returns a canned reply or error, and can block until
// released to simulate an outstanding request.
type mockExchanger struct {
	reply   string
	err     error
	release chan struct{} // nil means return immediately

	mu    sync.Mutex
	calls []string
}

func (m *mockExchanger) SendTurn(ctx context.Context, text string, _ model.Settings) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if m.release != nil {
		<-m.release
	}
	return m.reply, m.err
}

func TestSubmitTurn_Success(t *testing.T) {
	s := New(nil, nil)
	id := s.NewChat()

	exch := &mockExchanger{reply: "Hello"}
	err := s.SubmitTurn(context.Background(), exch, id, "Hi")
	require.NoError(t, err)

	chat := s.Chat(id)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, model.RoleUser, chat.Messages[0].Role)
	assert.Equal(t, "Hi", chat.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, chat.Messages[1].Role)
	assert.Equal(t, "Hello", chat.Messages[1].Content)

	assert.False(t, s.InFlight(id), "marker must be released after the turn")
}

func TestSubmitTurn_RequestFailedAppendsApology(t *testing.T) {
	s := New(nil, nil)
	id := s.NewChat()

	exch := &mockExchanger{err: errors.New("status 500")}
	err := s.SubmitTurn(context.Background(), exch, id, "Hi")
	require.NoError(t, err, "exchange failures are absorbed, not surfaced")

	chat := s.Chat(id)
	require.Len(t, chat.Messages, 2, "exactly two new messages: user text then apology")
	assert.Equal(t, model.RoleUser, chat.Messages[0].Role)
	assert.Equal(t, "Hi", chat.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, chat.Messages[1].Role)
	assert.Equal(t, ErrorReply, chat.Messages[1].Content)
}

func TestSubmitTurn_UnknownChat(t *testing.T) {
	s := New(nil, nil)
	err := s.SubmitTurn(context.Background(), &mockExchanger{}, "unknown", "Hi")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestSubmitTurn_SendsOnlyLatestMessage(t *testing.T) {
	s := New(nil, nil)
	id := s.NewChat()

	exch := &mockExchanger{reply: "ok"}
	require.NoError(t, s.SubmitTurn(context.Background(), exch, id, "first"))
	require.NoError(t, s.SubmitTurn(context.Background(), exch, id, "second"))

	// Each exchange carries only the latest user text, no prior turns.
	assert.Equal(t, []string{"first", "second"}, exch.calls)
}

func TestBeginTurn_BusyBlocksSameChatOnly(t *testing.T) {
	s := New(nil, nil)
	busy := s.NewChat()
	other := s.NewChat()

	require.NoError(t, s.BeginTurn(busy, "hello"))
	assert.True(t, s.InFlight(busy))

	// Second submission against the same chat is rejected
	assert.ErrorIs(t, s.BeginTurn(busy, "again"), ErrChatBusy)

	// A different chat may have its own outstanding request
	require.NoError(t, s.BeginTurn(other, "independent"))
	assert.True(t, s.InFlight(other))
}

func TestCompleteTurn_ReleasesMarker(t *testing.T) {
	s := New(nil, nil)
	id := s.NewChat()

	require.NoError(t, s.BeginTurn(id, "hello"))
	s.CompleteTurn(id, "world", nil)

	assert.False(t, s.InFlight(id))
	chat := s.Chat(id)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "world", chat.Messages[1].Content)
}

func TestCompleteTurn_ChatDeletedMidFlight(t *testing.T) {
	s := New(nil, nil)
	id := s.NewChat()

	require.NoError(t, s.BeginTurn(id, "hello"))
	s.DeleteChat(id)
	s.CompleteTurn(id, "late reply", nil)

	assert.False(t, s.InFlight(id))
	assert.Nil(t, s.Chat(id), "deleted chat must not be resurrected")
}

func TestSubmitTurn_ConcurrentChatsDoNotCrossBlock(t *testing.T) {
	s := New(nil, nil)
	first := s.NewChat()
	second := s.NewChat()

	release := make(chan struct{})
	slow := &mockExchanger{reply: "slow", release: release}
	fast := &mockExchanger{reply: "fast"}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.SubmitTurn(context.Background(), slow, first, "long running")
	}()

	// Wait until the first chat is marked in flight
	for !s.InFlight(first) {
		time.Sleep(time.Millisecond)
	}

	// The second chat completes while the first is still outstanding
	require.NoError(t, s.SubmitTurn(context.Background(), fast, second, "quick"))
	assert.Equal(t, "fast", s.Chat(second).Messages[1].Content)

	close(release)
	<-done
	assert.Equal(t, "slow", s.Chat(first).Messages[1].Content)
}
