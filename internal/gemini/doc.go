// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the exchange client for the Google generative
// language API.
//
// # Exchange contract
//
// SendTurn builds one generateContent request from the latest user message
// and the current generation parameters, and extracts the reply text from
// candidates[0].content.parts[0].text.
//
// Two recoverable failure kinds exist at this boundary:
//
//   - ErrRequestFailed: transport error, non-success HTTP status, or
//     deadline expiry
//   - ErrMalformedResponse: success status with an unexpected body shape
//
// Callers are expected to treat both identically (the store converts either
// into a synthetic assistant message). There is no retry, no backoff, and no
// partial-response handling.
package gemini
