// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package narrative runs the full event-to-narrative pipeline: interpret the
// event text, expand prerequisites, select event-minimal evidence, call the
// generation service, then repair and lint the claimed output.
// See docs/ARCHITECTURE § Pipeline.
package narrative

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/narrative-engine/internal/corpus"
	"github.com/pdiddy/narrative-engine/internal/generate"
	"github.com/pdiddy/narrative-engine/internal/interpret"
	"github.com/pdiddy/narrative-engine/internal/lint"
	"github.com/pdiddy/narrative-engine/internal/vocab"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

// fallbackNarrative is returned when the event cannot be expressed in SDK
// terms at all. It carries no citations and counts as valid.
const fallbackNarrative = "No part of the PlayStation SDK vocabulary can be used to describe this event. " +
	"The input does not map to any known SDK concepts or tokens."

// Pipeline wires the stages together over one loaded data set.
type Pipeline struct {
	interp    *interpret.Interpreter
	store     *vocab.Store
	passages  []types.Passage
	backend   generate.Backend
	maxQuotes int

	// Progress is where step announcements go; defaults to io.Discard.
	Progress io.Writer
}

// New builds a pipeline. maxQuotes <= 0 selects the default evidence quota.
func New(store *vocab.Store, lexicon *vocab.Lexicon, passages []types.Passage, backend generate.Backend, maxQuotes int) *Pipeline {
	if maxQuotes <= 0 {
		maxQuotes = corpus.DefaultMaxQuotes
	}
	return &Pipeline{
		interp:    interpret.New(store, lexicon),
		store:     store,
		passages:  passages,
		backend:   backend,
		maxQuotes: maxQuotes,
		Progress:  io.Discard,
	}
}

// distinct counts the unique strings in a slice.
func distinct(items []string) int {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return len(set)
}

// Run turns one event description into a validated narrative.
//
// When nothing in the event activates a vocabulary symbol, or every distinct
// event token is unrepresentable, a fixed fallback narrative is returned
// instead of calling the generation service. Otherwise a failed lint does
// not error: the result carries Valid=false and the issue list so the caller
// can decide what to do with a non-conforming narrative.
func (p *Pipeline) Run(ctx context.Context, eventText string) (types.NarrativeResult, error) {
	fmt.Fprintln(p.Progress, "[1/5] interpreting event")
	interp := p.interp.Interpret(eventText)
	fmt.Fprintf(p.Progress, "      activated: %v\n", interp.Activated)
	fmt.Fprintf(p.Progress, "      unrepresentable: %v\n", interp.Unrepresentable)

	if len(interp.Activated) == 0 || distinct(interp.Unrepresentable) == distinct(interpret.Tokenize(eventText)) {
		fmt.Fprintln(p.Progress, "[2/5] nothing activated, returning fallback narrative")
		return types.NarrativeResult{
			Narrative:     fallbackNarrative,
			CitationsUsed: []string{},
			TokensUsed:    []string{},
			Valid:         true,
			Fallback:      true,
			Activated:     []string{},
			AllowedTokens: []string{},
			ProvidedIDs:   []string{},
		}, nil
	}

	fmt.Fprintln(p.Progress, "[2/5] expanding prerequisites")
	allowed, err := p.store.Expand(interp.Activated)
	if err != nil {
		return types.NarrativeResult{}, fmt.Errorf("expanding prerequisites: %w", err)
	}
	fmt.Fprintf(p.Progress, "      allowed: %v\n", allowed)

	fmt.Fprintln(p.Progress, "[3/5] selecting evidence passages")
	selected, err := corpus.SelectEventMinimal(p.passages, interp.Activated, p.store, p.maxQuotes)
	if err != nil {
		return types.NarrativeResult{}, fmt.Errorf("selecting passages: %w", err)
	}
	providedIDs := corpus.IDs(selected)
	fmt.Fprintf(p.Progress, "      passages: %v\n", providedIDs)

	fmt.Fprintln(p.Progress, "[4/5] calling generation service")
	raw, err := p.backend.Narrate(ctx, generate.Request{
		EventBrief:    eventText,
		AllowedTokens: allowed,
		Passages:      corpus.Quotes(selected),
	})
	if err != nil {
		return types.NarrativeResult{}, fmt.Errorf("generating narrative: %w", err)
	}

	fmt.Fprintln(p.Progress, "[5/5] repairing and linting output")
	raw = lint.Repair(raw, providedIDs)
	issues := lint.Lint(raw, allowed, providedIDs, interp.Unrepresentable)

	return types.NarrativeResult{
		Narrative:     raw.Narrative,
		CitationsUsed: raw.CitationsUsed,
		TokensUsed:    raw.TokensUsed,
		Valid:         len(issues) == 0,
		Issues:        issues,
		ParseError:    raw.ParseError,
		Activated:     interp.Activated,
		AllowedTokens: allowed,
		ProvidedIDs:   providedIDs,
	}, nil
}
