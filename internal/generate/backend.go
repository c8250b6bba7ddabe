// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate is the generation-service boundary. It carries the
// allowed-token list, the selected evidence passages, and the event brief to
// an OpenAI-compatible chat-completions endpoint (LM Studio by default) and
// parses the service's claimed narrative back out.
// See docs/ARCHITECTURE § Generation.
package generate

import (
	"context"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// Request is the structured payload for one generation call.
type Request struct {
	// EventBrief is the original free-text event description.
	EventBrief string `json:"EventBrief"`

	// AllowedTokens is the dependency-ordered vocabulary ceiling for the
	// generated text.
	AllowedTokens []string `json:"AllowedTokens"`

	// Passages are the (id, text) evidence pairs the narrative may cite.
	Passages []types.Quote `json:"Passages"`
}

// Backend abstracts the generation service so tests can supply a mock.
type Backend interface {
	Narrate(ctx context.Context, req Request) (types.RawNarrative, error)
}
