// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"github.com/pdiddy/narrative-engine/internal/vocab"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

// DefaultMaxQuotes is the evidence quota when the caller passes zero.
const DefaultMaxQuotes = 4

// SelectEventMinimal chooses up to maxQuotes distinct passages justifying
// the activated symbols and the prerequisites closure actually pulled in.
//
// Pass 1 scans the corpus in natural order and selects any non-backbone
// passage substantiating a symbol in T = activated ∪ closure(activated).
// Pass 2 fills remaining quota with backbone passages, admitting one only if
// it substantiates a prerequisite-only symbol; generic relevance alone never
// qualifies a backbone passage. Output order is selection order.
//
// An empty result is valid. The only error is a requires cycle surfaced by
// closure computation.
func SelectEventMinimal(passages []types.Passage, activated []string, store *vocab.Store, maxQuotes int) ([]types.Passage, error) {
	if maxQuotes <= 0 {
		maxQuotes = DefaultMaxQuotes
	}

	closure, err := store.Expand(activated)
	if err != nil {
		return nil, err
	}
	prereqOnly, err := store.PrereqOnly(activated)
	if err != nil {
		return nil, err
	}

	inClosure := make(map[string]bool, len(closure))
	for _, sym := range closure {
		inClosure[sym] = true
	}
	inPrereq := make(map[string]bool, len(prereqOnly))
	for _, sym := range prereqOnly {
		inPrereq[sym] = true
	}

	var chosen []types.Passage
	seen := make(map[string]bool)

	// Pass 1: specific evidence tied to anything in the closure.
	for _, p := range passages {
		if len(chosen) >= maxQuotes {
			return chosen, nil
		}
		if seen[p.ID] || p.IsBackbone() {
			continue
		}
		if substantiatesAny(p, inClosure) {
			chosen = append(chosen, p)
			seen[p.ID] = true
		}
	}

	// Pass 2: backbone passages, only to explain an actual prerequisite.
	for _, p := range passages {
		if len(chosen) >= maxQuotes {
			break
		}
		if seen[p.ID] || !p.IsBackbone() {
			continue
		}
		if substantiatesAny(p, inPrereq) {
			chosen = append(chosen, p)
			seen[p.ID] = true
		}
	}

	return chosen, nil
}

func substantiatesAny(p types.Passage, set map[string]bool) bool {
	for _, sym := range p.Symbols {
		if set[sym] {
			return true
		}
	}
	return false
}
