// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

func testRequest() Request {
	return Request{
		EventBrief:    "the player presses a button",
		AllowedTokens: []string{"PadInit", "PadGetState"},
		Passages: []types.Quote{
			{ID: "pad.init.p3", Text: "PadInit prepares the controller library."},
		},
	}
}

func chatReply(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestOpenAIBackendNarrate(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatReply(`{"narrative":"I call PadInit.","citationsUsed":["pad.init.p3"],"tokensUsed":["PadInit"]}`)))
	}))
	defer ts.Close()

	b := NewOpenAIBackend(types.GenerationConfig{
		BaseURL: ts.URL,
		Model:   "test-model",
		APIKey:  "sk-test",
	})

	got, err := b.Narrate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Narrate() error: %v", err)
	}

	if gotPath != completionsPath {
		t.Errorf("request path = %q, want %q", gotPath, completionsPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotBody.Model != "test-model" {
		t.Errorf("model = %q, want test-model", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Fatalf("messages = %+v, want system then user", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[1].Content, `"AllowedTokens":["PadInit","PadGetState"]`) {
		t.Errorf("user message missing allowed tokens: %s", gotBody.Messages[1].Content)
	}
	if !strings.Contains(gotBody.Messages[1].Content, `"NarrativeTask"`) {
		t.Errorf("user message missing task statement: %s", gotBody.Messages[1].Content)
	}

	if got.Narrative != "I call PadInit." {
		t.Errorf("Narrative = %q", got.Narrative)
	}
	if len(got.CitationsUsed) != 1 || got.CitationsUsed[0] != "pad.init.p3" {
		t.Errorf("CitationsUsed = %v", got.CitationsUsed)
	}
	if got.ParseError != "" {
		t.Errorf("unexpected parse error %q", got.ParseError)
	}
}

func TestOpenAIBackendNoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(chatReply(`{"narrative":"n","citationsUsed":[],"tokensUsed":[]}`)))
	}))
	defer ts.Close()

	b := NewOpenAIBackend(types.GenerationConfig{BaseURL: ts.URL, Model: "m"})
	if _, err := b.Narrate(context.Background(), testRequest()); err != nil {
		t.Fatalf("Narrate() error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want none for a local endpoint", gotAuth)
	}
}

func TestOpenAIBackendFatalStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer ts.Close()

	b := NewOpenAIBackend(types.GenerationConfig{BaseURL: ts.URL, Model: "missing"})
	_, err := b.Narrate(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected an error for a 404 reply")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error should carry status and body, got %v", err)
	}
}

func TestOpenAIBackendNoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	b := NewOpenAIBackend(types.GenerationConfig{BaseURL: ts.URL, Model: "m"})
	_, err := b.Narrate(context.Background(), testRequest())
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Errorf("expected a no-choices error, got %v", err)
	}
}

func TestOpenAIBackendTolerantParse(t *testing.T) {
	// A prose-wrapped reply still yields a usable result.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(chatReply("Here you go: {\"narrative\":\"I poll the pad.\",\"citationsUsed\":[],\"tokensUsed\":[\"PadGetState\"]} Hope that helps!")))
	}))
	defer ts.Close()

	b := NewOpenAIBackend(types.GenerationConfig{BaseURL: ts.URL, Model: "m"})
	got, err := b.Narrate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Narrate() error: %v", err)
	}
	if got.Narrative != "I poll the pad." {
		t.Errorf("Narrative = %q", got.Narrative)
	}
	if got.ParseError != "" {
		t.Errorf("unexpected parse error %q", got.ParseError)
	}
}

func TestNewOpenAIBackendDefaults(t *testing.T) {
	b := NewOpenAIBackend(types.GenerationConfig{Model: "m"})
	if b.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", b.BaseURL, defaultBaseURL)
	}
	if b.MaxTokens != defaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", b.MaxTokens, defaultMaxTokens)
	}
	if b.Temperature != defaultTemperature {
		t.Errorf("Temperature = %v, want %v", b.Temperature, defaultTemperature)
	}
	if b.Client == nil || b.Client.Timeout != defaultTimeout {
		t.Error("client timeout default not applied")
	}
}

func TestNewOpenAIBackendGreedySampling(t *testing.T) {
	// An explicit zero is a real setting, not an unset field.
	zero := 0.0
	b := NewOpenAIBackend(types.GenerationConfig{Model: "m", Temperature: &zero})
	if b.Temperature != 0 {
		t.Errorf("Temperature = %v, want 0", b.Temperature)
	}
}
