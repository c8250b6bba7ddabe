// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

const (
	lexiconFile = "lexicon.yaml"
	backupFile  = "lexicon.backup.yaml"
)

// MergeLex2Neutral adds accepted lexemes to the lexicon. Every new lexeme
// maps to an existing set of neutral tags; a proposal referencing a tag
// absent from neutral2sdk is refused, since an unreachable tag could never
// activate a symbol. Existing entries gain the union of their tags, sorted.
func MergeLex2Neutral(m types.LexiconMap, additions map[string][]string) (types.LexiconMap, error) {
	valid := make(map[string]bool, len(m.Neutral2SDK))
	for tag := range m.Neutral2SDK {
		valid[tag] = true
	}

	if m.Lex2Neutral == nil {
		m.Lex2Neutral = map[string][]string{}
	}

	for lexeme, tags := range additions {
		for _, tag := range tags {
			if !valid[tag] {
				return m, fmt.Errorf("refusing to add %q: neutral tag %q does not exist", lexeme, tag)
			}
		}
		set := make(map[string]bool, len(tags))
		for _, t := range m.Lex2Neutral[lexeme] {
			set[t] = true
		}
		for _, t := range tags {
			set[t] = true
		}
		merged := make([]string, 0, len(set))
		for t := range set {
			merged = append(merged, t)
		}
		sort.Strings(merged)
		m.Lex2Neutral[lexeme] = merged
	}
	return m, nil
}

// SaveLexicon writes the lexicon back to dataDir, preserving the previous
// version as lexicon.backup.yaml so a bad merge can be undone by hand.
func SaveLexicon(dataDir string, m types.LexiconMap) error {
	path := filepath.Join(dataDir, lexiconFile)

	if prev, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(filepath.Join(dataDir, backupFile), prev, 0o644); err != nil {
			return fmt.Errorf("writing lexicon backup: %w", err)
		}
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling lexicon: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing lexicon: %w", err)
	}
	return nil
}
