// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

import (
	"fmt"
	"sort"
)

// ValidateLexicon cross-checks the lexicon against the vocabulary store and
// returns one message per inconsistency, sorted for stable output. An empty
// result means the data files are consistent.
//
// Two classes of faults are reported: a neutral2sdk entry naming a symbol
// that does not exist in the vocabulary, and a lex2neutral entry naming a
// neutral tag that has no neutral2sdk row.
func ValidateLexicon(lex *Lexicon, store *Store) []string {
	var issues []string

	tags := make([]string, 0, len(lex.Map.Neutral2SDK))
	for tag := range lex.Map.Neutral2SDK {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		for _, sym := range lex.Map.Neutral2SDK[tag] {
			if !store.Contains(sym) {
				issues = append(issues,
					fmt.Sprintf("neutral2sdk[%s] -> %q not in vocabulary", tag, sym))
			}
		}
	}

	lexemes := make([]string, 0, len(lex.Map.Lex2Neutral))
	for lexeme := range lex.Map.Lex2Neutral {
		lexemes = append(lexemes, lexeme)
	}
	sort.Strings(lexemes)

	for _, lexeme := range lexemes {
		var missing []string
		for _, tag := range lex.Map.Lex2Neutral[lexeme] {
			if _, ok := lex.Map.Neutral2SDK[tag]; !ok {
				missing = append(missing, tag)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			issues = append(issues,
				fmt.Sprintf("lex2neutral[%s] has unknown neutral tags: %v", lexeme, missing))
		}
	}

	return issues
}
