// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads the static passage corpus and selects evidence
// passages under the event-minimal policy.
// See docs/ARCHITECTURE § Evidence.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

const passagesFile = "passages.yaml"

// Load reads passages.yaml from dataDir, preserving corpus order. Duplicate
// passage ids are a structural fault in the data file.
func Load(dataDir string) ([]types.Passage, error) {
	path := filepath.Join(dataDir, passagesFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading passages: %w", err)
	}

	var passages []types.Passage
	if err := yaml.Unmarshal(data, &passages); err != nil {
		return nil, fmt.Errorf("parsing passages: %w", err)
	}

	seen := make(map[string]bool, len(passages))
	for _, p := range passages {
		if p.ID == "" {
			return nil, fmt.Errorf("passage with empty id in %s", passagesFile)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate passage id %q in %s", p.ID, passagesFile)
		}
		seen[p.ID] = true
	}

	return passages, nil
}

// Quotes strips passages down to the (id, text) pairs handed to the
// generation service.
func Quotes(passages []types.Passage) []types.Quote {
	quotes := make([]types.Quote, len(passages))
	for i, p := range passages {
		quotes[i] = types.Quote{ID: p.ID, Text: p.Text}
	}
	return quotes
}

// IDs returns the passage identifiers in order.
func IDs(passages []types.Passage) []string {
	ids := make([]string, len(passages))
	for i, p := range passages {
		ids[i] = p.ID
	}
	return ids
}
