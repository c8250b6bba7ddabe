// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/narrative-engine/internal/httputil"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

const (
	completionsPath    = "/v1/chat/completions"
	defaultBaseURL     = "http://localhost:1234"
	defaultTimeout     = 90 * time.Second
	defaultMaxTokens   = 400
	defaultTemperature = 0.2
)

// OpenAIBackend calls an OpenAI-compatible chat-completions endpoint. LM
// Studio exposes this API locally without authentication; remote endpoints
// take a bearer token.
type OpenAIBackend struct {
	BaseURL     string
	Model       string
	APIKey      string
	UserAgent   string
	MaxTokens   int
	Temperature float64
	MaxRetries  int
	Client      *http.Client

	// Debug, when set, receives the raw reply content before parsing.
	Debug io.Writer
}

// NewOpenAIBackend builds a backend from configuration, applying defaults
// for anything unset.
func NewOpenAIBackend(cfg types.GenerationConfig) *OpenAIBackend {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := defaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	return &OpenAIBackend{
		BaseURL:     baseURL,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		UserAgent:   cfg.UserAgent,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		MaxRetries:  cfg.MaxRetries,
		Client:      &http.Client{Timeout: timeout},
	}
}

// Chat-completions API JSON structures.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Narrate sends the structured payload and returns the parsed claimed
// output. Transport failures and non-200 statuses are fatal for the request;
// a malformed reply body degrades through ParseRawNarrative instead.
func (b *OpenAIBackend) Narrate(ctx context.Context, req Request) (types.RawNarrative, error) {
	userContent, err := renderUserContent(req)
	if err != nil {
		return types.RawNarrative{}, err
	}

	body := chatRequest{
		Model: b.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		Temperature: b.Temperature,
		MaxTokens:   b.MaxTokens,
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return types.RawNarrative{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+completionsPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return types.RawNarrative{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if b.UserAgent != "" {
		httpReq.Header.Set("User-Agent", b.UserAgent)
	}
	if b.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+b.APIKey)
	}

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, httpReq, b.MaxRetries)
	if err != nil {
		return types.RawNarrative{}, fmt.Errorf("calling generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return types.RawNarrative{}, fmt.Errorf("generation service returned %d: %s", resp.StatusCode, string(respBody))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return types.RawNarrative{}, fmt.Errorf("decoding generation response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return types.RawNarrative{}, fmt.Errorf("generation service returned no choices")
	}

	content := cResp.Choices[0].Message.Content
	if b.Debug != nil {
		fmt.Fprintf(b.Debug, "raw generation reply:\n%s\n", content)
	}
	return ParseRawNarrative(content), nil
}
