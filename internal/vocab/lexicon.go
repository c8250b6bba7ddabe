// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

import (
	"fmt"
	"path/filepath"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// Lexicon is the immutable surface-word mapping: lexeme → neutral tags and
// neutral tag → candidate symbols. It decouples input words from vocabulary
// symbols so neither side names the other directly.
type Lexicon struct {
	Map types.LexiconMap
}

// NewLexicon wraps an already-parsed lexicon map.
func NewLexicon(m types.LexiconMap) *Lexicon {
	return &Lexicon{Map: m}
}

// LoadLexicon reads lexicon.yaml from dataDir. A missing lexicon is fatal:
// without it no input word can activate a symbol.
func LoadLexicon(dataDir string) (*Lexicon, error) {
	var m types.LexiconMap
	if err := readYAML(filepath.Join(dataDir, lexiconFile), &m); err != nil {
		return nil, fmt.Errorf("loading lexicon: %w", err)
	}
	return NewLexicon(m), nil
}

// NeutralTags returns the neutral tags for a lowercase lexeme. Unknown
// lexemes return nil.
func (l *Lexicon) NeutralTags(lexeme string) []string {
	return l.Map.Lex2Neutral[lexeme]
}

// CandidateSymbols returns the vocabulary symbols a neutral tag maps to.
// The caller is responsible for filtering through the Store, since the lexicon
// may reference symbols absent from the current vocabulary.
func (l *Lexicon) CandidateSymbols(tag string) []string {
	return l.Map.Neutral2SDK[tag]
}
