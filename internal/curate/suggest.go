// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package curate grows the surface lexicon: it proposes synonym and
// morphological-variant lexemes for already-mapped terms and merges accepted
// proposals back into the lexicon table. See docs/ARCHITECTURE § Curation.
package curate

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// SynonymProvider proposes candidate lexemes for a seed term. The sense hint
// narrows the meaning when a word is ambiguous.
type SynonymProvider interface {
	Suggest(ctx context.Context, term, senseHint string) ([]string, error)
}

// candidateRe admits lowercase single tokens only. Proposals are merged into
// lexicon keys, which the interpreter matches against lowercased input.
var candidateRe = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Sanitize lowercases, trims, and filters candidates: tokens shorter than
// three characters, tokens with punctuation or spaces, and duplicates are
// dropped. Order of first occurrence is preserved.
func Sanitize(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		tok := strings.ToLower(strings.TrimSpace(c))
		if len(tok) < 3 || seen[tok] || !candidateRe.MatchString(tok) {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// Propose asks the provider for candidates and sanitizes the answer.
func Propose(ctx context.Context, provider SynonymProvider, term, senseHint string) ([]string, error) {
	raw, err := provider.Suggest(ctx, term, senseHint)
	if err != nil {
		return nil, err
	}
	return Sanitize(raw), nil
}

// HeuristicProvider works offline: a small static synonym table plus naive
// English morphology (-ed, -ing, -s variants).
type HeuristicProvider struct{}

var staticSynonyms = map[string][]string{
	"spill":      {"spilt", "spilling", "spills", "spilled", "splashed"},
	"pause":      {"pausing", "paused", "pauses", "halt", "break"},
	"disconnect": {"disconnected", "disconnecting", "unplug", "unplugged"},
	"shake":      {"shook", "shaking", "jolt", "bump", "bumped"},
}

func (HeuristicProvider) Suggest(_ context.Context, term, _ string) ([]string, error) {
	t := strings.ToLower(term)
	set := make(map[string]bool)
	for _, s := range staticSynonyms[t] {
		set[s] = true
	}
	if strings.HasSuffix(t, "e") && len(t) > 1 {
		set[t+"d"] = true
		set[t[:len(t)-1]+"ing"] = true
		set[t+"s"] = true
	} else {
		set[t+"ed"] = true
		set[t+"ing"] = true
		set[t+"s"] = true
	}

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}
