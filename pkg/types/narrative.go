// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RawNarrative is the generation service's claimed output before repair
// and linting. The three JSON fields mirror the service contract.
type RawNarrative struct {
	// Narrative is the generated text.
	Narrative string `json:"narrative" yaml:"narrative"`

	// CitationsUsed lists passage ids the service claims to have cited.
	CitationsUsed []string `json:"citationsUsed" yaml:"citations_used"`

	// TokensUsed lists vocabulary symbols the service claims to have used.
	TokensUsed []string `json:"tokensUsed" yaml:"tokens_used"`

	// ParseError marks a malformed service response. When set, the other
	// fields are empty and the request degrades rather than fails.
	ParseError string `json:"parse_error,omitempty" yaml:"parse_error,omitempty"`
}

// NarrativeResult is the externally visible artifact of one request.
type NarrativeResult struct {
	// Narrative is the repaired generated text (or the fixed fallback).
	Narrative string `json:"narrative" yaml:"narrative"`

	// CitationsUsed lists citation ids surviving repair.
	CitationsUsed []string `json:"citations_used" yaml:"citations_used"`

	// TokensUsed lists vocabulary symbols the service claims to have used.
	TokensUsed []string `json:"tokens_used" yaml:"tokens_used"`

	// Valid is true iff no lint violation fired.
	Valid bool `json:"valid" yaml:"valid"`

	// Issues itemizes lint violations. Empty when Valid.
	Issues []string `json:"issues,omitempty" yaml:"issues,omitempty"`

	// Fallback is true when the pipeline short-circuited to the canned
	// narrative without calling the generation service.
	Fallback bool `json:"fallback,omitempty" yaml:"fallback,omitempty"`

	// ParseError carries a generation-response parse failure, if any.
	ParseError string `json:"parse_error,omitempty" yaml:"parse_error,omitempty"`

	// Diagnostic echoes of the intermediate sets, for observability.
	Activated     []string `json:"activated_tokens" yaml:"activated_tokens"`
	AllowedTokens []string `json:"allowed_tokens" yaml:"allowed_tokens"`
	ProvidedIDs   []string `json:"provided_ids" yaml:"provided_ids"`
}
