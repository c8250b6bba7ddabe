package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "narrative-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// VocabularyConfig holds settings for the vocabulary store and lexicon.
type VocabularyConfig struct {
	// DataDir is the directory holding symbols.yaml, relations.yaml, and
	// lexicon.yaml.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// CorpusConfig holds settings for the passage corpus and evidence selection.
type CorpusConfig struct {
	// DataDir is the directory holding passages.yaml.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// IndexDir is the directory for the SQLite corpus index (default
	// DataDir/index).
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxQuotes is the evidence quota per request (default 4).
	MaxQuotes int `json:"max_quotes" yaml:"max_quotes"`

	// MaxResults is the default maximum number of corpus search results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// GenerationConfig holds settings for the generation service boundary.
type GenerationConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the OpenAI-compatible endpoint base
	// (default "http://localhost:1234").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the model identifier passed through to the service.
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against remote endpoints. Empty for a local
	// LM Studio instance.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts on 429/503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxTokens caps the generated completion length (default 400).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature is the sampling temperature. Nil means the default (0.2);
	// an explicit zero requests greedy sampling.
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// PipelineConfig groups all stage configurations for one request cycle.
type PipelineConfig struct {
	Vocabulary VocabularyConfig `json:"vocabulary" yaml:"vocabulary"`
	Corpus     CorpusConfig     `json:"corpus" yaml:"corpus"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
}
