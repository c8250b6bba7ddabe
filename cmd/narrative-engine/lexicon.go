// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/curate"
	"github.com/pdiddy/narrative-engine/internal/vocab"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Grow and maintain the surface lexicon",
}

var lexiconSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Propose synonym lexemes for review and merge accepted ones",
	Long: `Suggest proposes synonym and morphological-variant lexemes for seed
terms already in the lexicon. Proposals come from the generation service, or
from offline morphology with --provider local. Accepted proposals inherit
the seed's neutral tags and are merged into lexicon.yaml with --apply; the
previous version is kept as lexicon.backup.yaml.`,
	RunE: runLexiconSuggest,
}

func init() {
	lexiconSuggestCmd.Flags().String("term", "", "seed lexeme (omit to batch over all lexicon keys)")
	lexiconSuggestCmd.Flags().String("sense", "", "sense hint for the model (default: the seed's neutral tags)")
	lexiconSuggestCmd.Flags().String("provider", "llm", "suggestion provider: llm or local")
	lexiconSuggestCmd.Flags().Bool("apply", false, "write accepted proposals to lexicon.yaml (with backup)")

	lexiconCmd.AddCommand(lexiconSuggestCmd)
	rootCmd.AddCommand(lexiconCmd)
}

func runLexiconSuggest(cmd *cobra.Command, args []string) error {
	dir := dataDir(cmd)
	lexicon, err := vocab.LoadLexicon(dir)
	if err != nil {
		return err
	}
	if len(lexicon.Map.Lex2Neutral) == 0 {
		return fmt.Errorf("no lexicon entries found; seed at least one before expansion")
	}

	providerName, _ := cmd.Flags().GetString("provider")
	var provider curate.SynonymProvider
	switch providerName {
	case "local":
		provider = curate.HeuristicProvider{}
	case "llm", "":
		provider = curate.NewLLMProvider(generationConfig())
	default:
		return fmt.Errorf("unknown provider %q: use llm or local", providerName)
	}

	term, _ := cmd.Flags().GetString("term")
	senseHint, _ := cmd.Flags().GetString("sense")

	var seeds []string
	if term != "" {
		if _, ok := lexicon.Map.Lex2Neutral[term]; !ok {
			return fmt.Errorf("seed %q is not in the lexicon", term)
		}
		seeds = []string{term}
	} else {
		for k := range lexicon.Map.Lex2Neutral {
			seeds = append(seeds, k)
		}
		sort.Strings(seeds)
	}

	existing := make(map[string]bool, len(lexicon.Map.Lex2Neutral))
	for k := range lexicon.Map.Lex2Neutral {
		existing[k] = true
	}

	reader := bufio.NewReader(os.Stdin)
	additions := map[string][]string{}

	for _, seed := range seeds {
		tags := lexicon.Map.Lex2Neutral[seed]
		hint := senseHint
		if hint == "" {
			hint = strings.Join(tags, ", ")
		}

		proposals, err := curate.Propose(context.Background(), provider, seed, hint)
		if err != nil {
			return fmt.Errorf("proposing for %q: %w", seed, err)
		}

		chosen, quit := selectProposals(reader, seed, tags, proposals, existing)
		if quit {
			break
		}
		for _, c := range chosen {
			additions[c] = tags
		}
	}

	if len(additions) == 0 {
		fmt.Println("Nothing selected.")
		return nil
	}

	fmt.Println("\nPlanned additions:")
	keys := make([]string, 0, len(additions))
	for k := range additions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-16s -> %v\n", k, additions[k])
	}

	apply, _ := cmd.Flags().GetBool("apply")
	if !apply {
		fmt.Println("\n(dry run) Use --apply to write changes.")
		return nil
	}

	merged, err := curate.MergeLex2Neutral(lexicon.Map, additions)
	if err != nil {
		return err
	}
	if err := curate.SaveLexicon(dir, merged); err != nil {
		return err
	}
	fmt.Printf("\nUpdated %s/lexicon.yaml (backup at %s/lexicon.backup.yaml)\n", dir, dir)
	return nil
}

// selectProposals shows proposals for one seed and reads index selections:
// "1 3-5" picks items, "all" takes everything new, ENTER takes nothing, "q"
// stops the whole batch.
func selectProposals(reader *bufio.Reader, seed string, tags, proposals []string, existing map[string]bool) (chosen []string, quit bool) {
	fmt.Printf("\n=== Term: %q -> tags %v\n", seed, tags)
	if len(proposals) == 0 {
		fmt.Println("No proposals.")
		return nil, false
	}

	fmt.Println("Proposed additions (indexes or ranges like '1 3-5', ENTER=none, 'all'=everything, 'q' quits):")
	for i, p := range proposals {
		mark := ""
		if existing[p] {
			mark = " (exists)"
		}
		fmt.Printf("  %2d. %s%s\n", i+1, p, mark)
	}
	fmt.Print("> ")

	line, _ := reader.ReadString('\n')
	sel := strings.ToLower(strings.TrimSpace(line))

	switch sel {
	case "q", "quit", "exit":
		return nil, true
	case "", "none":
		return nil, false
	case "all":
		for _, p := range proposals {
			if !existing[p] {
				chosen = append(chosen, p)
			}
		}
		return chosen, false
	}

	picks := map[int]bool{}
	for _, token := range strings.Fields(sel) {
		if a, b, ok := strings.Cut(token, "-"); ok {
			lo, errA := strconv.Atoi(a)
			hi, errB := strconv.Atoi(b)
			if errA == nil && errB == nil {
				for k := lo; k <= hi; k++ {
					picks[k] = true
				}
			}
		} else if k, err := strconv.Atoi(token); err == nil {
			picks[k] = true
		}
	}

	indexes := make([]int, 0, len(picks))
	for k := range picks {
		indexes = append(indexes, k)
	}
	sort.Ints(indexes)
	for _, k := range indexes {
		if k >= 1 && k <= len(proposals) && !existing[proposals[k-1]] {
			chosen = append(chosen, proposals[k-1])
		}
	}
	return chosen, false
}
