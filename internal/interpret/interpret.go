// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package interpret converts free event text into activated vocabulary
// symbols plus the set of input terms the lexicon cannot represent.
// See docs/ARCHITECTURE § Interpretation.
package interpret

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/narrative-engine/internal/vocab"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

// tokenRe splits lowercased text on any character outside [a-z0-9_].
var tokenRe = regexp.MustCompile(`[^a-z0-9_]+`)

// Tokenize lowercases text and splits it into tokens, discarding empty
// fragments. Duplicates are preserved for downstream counting.
func Tokenize(text string) []string {
	var tokens []string
	for _, t := range tokenRe.Split(strings.ToLower(text), -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Interpreter maps event text onto the controlled vocabulary. It holds only
// read-only tables and is safe to reuse across requests.
type Interpreter struct {
	store   *vocab.Store
	lexicon *vocab.Lexicon
}

// New builds an Interpreter over a loaded store and lexicon.
func New(store *vocab.Store, lexicon *vocab.Lexicon) *Interpreter {
	return &Interpreter{store: store, lexicon: lexicon}
}

// Interpret produces the activated-symbol set and the unrepresentable-term
// set for the given event text. There are no error conditions: unknown input
// simply yields empty or partial results, and re-running on the same text
// yields identical sets.
//
// A token is unrepresentable iff it yielded zero neutral tags, regardless of
// whether any candidate symbol survived the vocabulary filter.
func (in *Interpreter) Interpret(text string) types.Interpretation {
	tokens := Tokenize(text)

	neutral := make(map[string]bool)
	mapped := make(map[string]bool)
	for _, t := range tokens {
		tags := in.lexicon.NeutralTags(t)
		if len(tags) > 0 {
			mapped[t] = true
		}
		for _, tag := range tags {
			neutral[tag] = true
		}
	}

	// Gate lexicon candidates through the vocabulary store so the lexicon
	// cannot introduce symbols absent from the current vocabulary.
	activated := make(map[string]bool)
	for tag := range neutral {
		for _, sym := range in.lexicon.CandidateSymbols(tag) {
			if in.store.Contains(sym) {
				activated[sym] = true
			}
		}
	}

	unrep := make(map[string]bool)
	for _, t := range tokens {
		if !mapped[t] {
			unrep[t] = true
		}
	}

	return types.Interpretation{
		Activated:       sortedKeys(activated),
		Unrepresentable: sortedKeys(unrep),
	}
}

// Tableau groups interpreted symbols into observable rows (symbols with
// yields, shown as "symbol → domain-state") and callable rows (functions and
// literals without yields). Enum keys surface implicitly through observable
// rows and get no row of their own.
func (in *Interpreter) Tableau(activated []string) types.StateTableau {
	var tableau types.StateTableau
	sorted := append([]string(nil), activated...)
	sort.Strings(sorted)

	for _, sym := range sorted {
		if yields := in.store.Yields(sym); len(yields) > 0 {
			tableau.Observable = append(tableau.Observable,
				fmt.Sprintf("%s → %s", sym, yields[0]))
			continue
		}
		if kind, ok := in.store.Kind(sym); ok && kind != types.KindEnum {
			tableau.Callable = append(tableau.Callable, sym)
		}
	}
	return tableau
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
