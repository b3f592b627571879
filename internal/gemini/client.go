// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the exchange client for the Google generative
// language API.
//
// One user turn maps to exactly one outbound generateContent request. Every
// call is stateless from the remote service's perspective: only the latest
// user message is sent, never prior turns.
package gemini

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/lumino-tui/internal/model"
)

// Configuration constants for the generative language API.
const (
	// DefaultBaseURL is the base URL for the generative language API.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout bounds a single exchange. On expiry the exchange
	// resolves as a request failure instead of hanging the submission path.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// Fixed sampling parameters sent with every request.
	topP = 0.8
	topK = 40

	// Fixed content-safety threshold sent with every request.
	safetyCategory  = "HARM_CATEGORY_HARASSMENT"
	safetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client for all exchange requests.
// SECURITY: TLS 1.2 minimum, verification required.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	// Per-request timeouts are applied via context.
}

// Error variables for the two recoverable exchange failure kinds.
var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("API key not configured")

	// ErrRequestFailed indicates a transport error or non-success HTTP status.
	ErrRequestFailed = errors.New("API request failed")

	// ErrMalformedResponse indicates a success status with an unexpected
	// body shape (missing candidates[0].content.parts[0].text).
	ErrMalformedResponse = errors.New("malformed API response")
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// Part is one piece of request or response content.
type Part struct {
	Text string `json:"text"`
}

// Content is an ordered list of parts.
type Content struct {
	Parts []Part `json:"parts"`
}

// SafetySetting is one content-safety threshold category.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// GenerationConfig carries the sampling parameters for a request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

// GenerateRequest is the body of a generateContent call.
type GenerateRequest struct {
	Contents         []Content        `json:"contents"`
	SafetySettings   []SafetySetting  `json:"safetySettings"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// Candidate is one generated reply in a response.
type Candidate struct {
	Content Content `json:"content"`
}

// GenerateResponse is the success body of a generateContent call.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// ReplyText extracts the first candidate's first content part's text.
// Returns false when the field is absent.
func (r *GenerateResponse) ReplyText() (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return "", false
	}
	return parts[0].Text, true
}

// =============================================================================
// CLIENT
// =============================================================================

// Client issues generateContent exchanges. The zero value is not usable;
// construct with NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates an exchange client with the default endpoint and timeout.
func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: sharedHTTPClient,
		timeout:    DefaultTimeout,
	}
}

// WithBaseURL sets a custom base URL. Used by tests to point at a mock server.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimSuffix(u, "/")
	return c
}

// WithTimeout sets the per-exchange deadline.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// SendTurn sends the latest user text as a single-message exchange and
// returns the assistant's reply text.
//
// The credential and model are read from settings on every call, so settings
// changes take effect on the next turn without reconstructing the client.
// Generation parameters are passed through uninterpreted; the remote service
// is the validator.
//
// Failures are one of ErrRequestFailed (transport error, non-success status,
// or deadline expiry) and ErrMalformedResponse (success status, unexpected
// body shape).
func (c *Client) SendTurn(ctx context.Context, latestUserText string, settings model.Settings) (string, error) {
	if settings.APIKey == "" {
		return "", fmt.Errorf("%w: set the API key in settings or the environment", ErrNotConfigured)
	}

	// Explicit deadline so a hung request resolves as a failure instead of
	// blocking the submission path indefinitely.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqBody := GenerateRequest{
		Contents: []Content{
			{Parts: []Part{{Text: latestUserText}}},
		},
		SafetySettings: []SafetySetting{
			{Category: safetyCategory, Threshold: safetyThreshold},
		},
		GenerationConfig: GenerationConfig{
			Temperature:     settings.Temperature,
			MaxOutputTokens: settings.MaxTokens,
			TopP:            topP,
			TopK:            topK,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	// The credential is passed as a query parameter per the API contract.
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(settings.Model), url.QueryEscape(settings.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// SECURITY: never log the URL, it carries the credential.
		log.Warn().Str("model", settings.Model).Dur("duration", time.Since(start)).
			Err(err).Msg("exchange transport failure")
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	log.Debug().Str("model", settings.Model).Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).Str("key", keyFingerprint(settings.APIKey)).
		Msg("exchange response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a bounded amount so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	text, ok := genResp.ReplyText()
	if !ok {
		return "", fmt.Errorf("%w: missing candidate text", ErrMalformedResponse)
	}
	return text, nil
}

// keyFingerprint returns a short SHA-256 fingerprint of the API key for
// logging. SECURITY: never log key fragments, only the fingerprint.
func keyFingerprint(key string) string {
	if key == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:4])
}
