// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/narrative-engine/internal/httputil"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

const (
	completionsPath    = "/v1/chat/completions"
	defaultBaseURL     = "http://localhost:1234"
	defaultTimeout     = 60 * time.Second
	defaultTemperature = 0.2
)

// quotedStringRe recovers candidates from a reply that is not valid JSON.
var quotedStringRe = regexp.MustCompile(`"([^"]+)"`)

// LLMProvider proposes synonyms through an OpenAI-compatible chat endpoint,
// the same service the generation stage talks to.
type LLMProvider struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float64
	MaxTokens   int
	Client      *http.Client
}

// NewLLMProvider builds a provider from generation configuration.
func NewLLMProvider(cfg types.GenerationConfig) *LLMProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 256
	}
	temperature := defaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	return &LLMProvider{
		BaseURL:     baseURL,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Client:      &http.Client{Timeout: timeout},
	}
}

func suggestPrompt(term, senseHint string) string {
	if senseHint == "" {
		senseHint = "project-defined sense"
	}
	return "You are expanding a controlled lexicon. " +
		"Return ONLY a JSON array (no preface text) of English synonyms or morphological variants " +
		fmt.Sprintf("for the word '%s' in the specific sense: '%s'. ", term, senseHint) +
		"Rules: 1) lowercase single tokens preferred; short tokens only; " +
		"2) no punctuation or emojis; 3) avoid multi-word phrases unless unavoidable; " +
		"4) do NOT invent new senses; 5) 8-15 items."
}

// Suggest asks the service for candidates. The reply is parsed tolerantly:
// a JSON array, an object with a "results" or "synonyms" key, or as a last
// resort the quoted strings in the text.
func (p *LLMProvider) Suggest(ctx context.Context, term, senseHint string) ([]string, error) {
	body := map[string]any{
		"model": p.Model,
		"messages": []map[string]string{
			{"role": "system", "content": "Return only valid JSON. No commentary."},
			{"role": "user", "content": suggestPrompt(term, senseHint)},
		},
		"temperature": p.Temperature,
		"max_tokens":  p.MaxTokens,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling suggestion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+completionsPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating suggestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("calling suggestion service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("suggestion service returned %d: %s", resp.StatusCode, string(respBody))
	}

	var cResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return nil, fmt.Errorf("decoding suggestion response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return nil, fmt.Errorf("suggestion service returned no choices")
	}

	return parseCandidates(cResp.Choices[0].Message.Content), nil
}

func parseCandidates(content string) []string {
	var arr []string
	if err := json.Unmarshal([]byte(content), &arr); err == nil {
		return lowerAll(arr)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		for _, key := range []string{"results", "synonyms"} {
			if raw, ok := obj[key]; ok {
				if err := json.Unmarshal(raw, &arr); err == nil {
					return lowerAll(arr)
				}
			}
		}
		return nil
	}

	for _, m := range quotedStringRe.FindAllStringSubmatch(content, -1) {
		arr = append(arr, m[1])
	}
	return lowerAll(arr)
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
