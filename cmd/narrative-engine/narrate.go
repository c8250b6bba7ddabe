// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/corpus"
	"github.com/pdiddy/narrative-engine/internal/generate"
	"github.com/pdiddy/narrative-engine/internal/narrative"
	"github.com/pdiddy/narrative-engine/internal/vocab"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Generate a validated SDK narrative for one event",
	Long: `Narrate runs the full pipeline for one event description: lexical
interpretation, prerequisite expansion, event-minimal passage selection,
generation, repair, and lint. The result is printed as JSON followed by the
bare narrative text.

With --event omitted the event description is read interactively.`,
	RunE: runNarrate,
}

func init() {
	narrateCmd.Flags().String("event", "", "event description (omit to be prompted)")
	narrateCmd.Flags().Int("max-quotes", 0, "evidence passage quota (0 = default 4)")
	narrateCmd.Flags().Bool("debug", false, "print per-stage progress and the raw service reply to stderr")

	rootCmd.AddCommand(narrateCmd)
}

func runNarrate(cmd *cobra.Command, args []string) error {
	eventText, _ := cmd.Flags().GetString("event")
	if eventText == "" {
		fmt.Fprint(os.Stderr, "Enter the event description: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading event description: %w", err)
		}
		eventText = strings.TrimSpace(line)
	}
	if eventText == "" {
		return fmt.Errorf("event description is empty")
	}

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

	maxQuotes, _ := cmd.Flags().GetInt("max-quotes")
	backend := generate.NewOpenAIBackend(generationConfig())

	p := narrative.New(store, lexicon, passages, backend, maxQuotes)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		p.Progress = os.Stderr
		backend.Debug = os.Stderr
	}

	result, err := p.Run(context.Background(), eventText)
	if err != nil {
		return err
	}

	return printNarrateResult(os.Stdout, os.Stderr, result)
}

// printNarrateResult writes the result JSON and the bare narrative. A failed
// lint is a reported property of the result, not a command failure, so it
// goes to stderr as a warning and the command still exits zero.
func printNarrateResult(stdout, stderr io.Writer, result types.NarrativeResult) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	fmt.Fprintln(stdout, "\n=== NARRATIVE ===")
	fmt.Fprintln(stdout, result.Narrative)

	if !result.Valid {
		fmt.Fprintf(stderr, "warning: narrative failed validation: %s\n", strings.Join(result.Issues, "; "))
	}
	return nil
}
