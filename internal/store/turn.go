// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store implements the chat store, the single source of truth
// mutated by all UI actions.
package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/lumino-tui/internal/model"
)

// ErrorReply is the fixed assistant-voiced message appended when an exchange
// fails for any reason. The user never sees a raw error.
const ErrorReply = "Sorry, I encountered an error processing your request. Please try again."

// Exchanger performs one request/response cycle with the external
// generative-text service for one user turn.
type Exchanger interface {
	SendTurn(ctx context.Context, latestUserText string, settings model.Settings) (string, error)
}

// Turn orchestration errors.
var (
	// ErrChatNotFound indicates the chat id did not resolve.
	ErrChatNotFound = errors.New("chat not found")

	// ErrChatBusy indicates the chat already has an outstanding exchange.
	// The submission path is disabled while a request is in flight; this is
	// the only backpressure mechanism, there is no queue.
	ErrChatBusy = errors.New("chat has a request in flight")
)

// =============================================================================
// TURN ORCHESTRATION
// =============================================================================

// InFlight reports whether a chat has an outstanding exchange. The marker is
// kept per chat id so two different chats may have independent outstanding
// requests without cross-blocking.
func (s *Store) InFlight(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[chatID]
}

// BeginTurn appends the user's message to the chat and marks the chat
// in flight. It fails with ErrChatNotFound or ErrChatBusy; on success the
// caller must eventually call CompleteTurn to append the assistant's reply
// and release the marker.
func (s *Store) BeginTurn(chatID, userText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.FindChat(chatID) == nil {
		return ErrChatNotFound
	}
	if s.inFlight[chatID] {
		return ErrChatBusy
	}

	s.inFlight[chatID] = true
	s.appendMessageLocked(chatID, model.RoleUser, userText)
	return nil
}

// CompleteTurn appends the outcome of an exchange and releases the in-flight
// marker. A failed exchange (either failure kind) is converted into the
// fixed ErrorReply as if it were the assistant's reply. If the chat was
// deleted while the request was outstanding, the result is discarded.
func (s *Store) CompleteTurn(chatID, reply string, exchangeErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, chatID)

	if s.state.FindChat(chatID) == nil {
		return
	}

	if exchangeErr != nil {
		log.Warn().Err(exchangeErr).Str("chat", chatID).Msg("exchange failed")
		s.appendMessageLocked(chatID, model.RoleAssistant, ErrorReply)
		return
	}
	s.appendMessageLocked(chatID, model.RoleAssistant, reply)
}

// SubmitTurn runs one full user turn synchronously: append the user message,
// issue the exchange, and append the assistant's reply (or the fixed error
// message on failure). Control returns only after the exchange resolves.
//
// The returned error is non-nil only for submission-path problems
// (ErrChatNotFound, ErrChatBusy); exchange failures are absorbed into the
// conversation per the error handling contract.
func (s *Store) SubmitTurn(ctx context.Context, exchanger Exchanger, chatID, userText string) error {
	if err := s.BeginTurn(chatID, userText); err != nil {
		return err
	}

	// The exchange runs outside the lock; other chats stay fully usable
	// while this one waits.
	reply, err := exchanger.SendTurn(ctx, userText, s.Settings())
	s.CompleteTurn(chatID, reply, err)
	return nil
}
