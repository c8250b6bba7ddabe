// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/corpus"
	"github.com/pdiddy/narrative-engine/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect and validate the vocabulary tables",
}

var vocabValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Cross-check the vocabulary, relation, lexicon, and passage tables",
	Long: `Validate loads all static tables and reports referential problems:
lexicon entries naming unknown neutral tags or symbols, relation edges over
unknown symbols, passages claiming to substantiate unknown symbols, and
cycles in the requires relation.`,
	RunE: runVocabValidate,
}

func init() {
	vocabCmd.AddCommand(vocabValidateCmd)
	rootCmd.AddCommand(vocabCmd)
}

func runVocabValidate(cmd *cobra.Command, args []string) error {
	dir := dataDir(cmd)

	store, err := vocab.LoadStore(dir)
	if err != nil {
		return err
	}
	lexicon, err := vocab.LoadLexicon(dir)
	if err != nil {
		return err
	}
	passages, err := corpus.Load(dir)
	if err != nil {
		return err
	}

	problems := vocab.ValidateLexicon(lexicon, store)

	graphSyms := make([]string, 0, len(store.Graph))
	for sym := range store.Graph {
		graphSyms = append(graphSyms, sym)
	}
	sort.Strings(graphSyms)
	for _, sym := range graphSyms {
		if !store.Contains(sym) {
			problems = append(problems, fmt.Sprintf("relation graph entry %q not in vocabulary", sym))
		}
		for _, r := range store.Requires(sym) {
			if !store.Contains(r) {
				problems = append(problems, fmt.Sprintf("%s requires unknown symbol %q", sym, r))
			}
		}
	}

	for _, p := range passages {
		for _, sym := range p.Symbols {
			if !store.Contains(sym) {
				problems = append(problems, fmt.Sprintf("passage %s substantiates unknown symbol %q", p.ID, sym))
			}
		}
	}

	// A cycle anywhere in the requires relation surfaces on expansion.
	if _, err := store.Expand(graphSyms); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Println(p)
		}
		return fmt.Errorf("%d validation problem(s)", len(problems))
	}

	fmt.Println("All tables are consistent.")
	return nil
}
