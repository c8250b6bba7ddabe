// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/interpret"
	"github.com/pdiddy/narrative-engine/internal/vocab"
)

var interpretCmd = &cobra.Command{
	Use:   "interpret [event text]",
	Short: "Show the lexical reading of an event without generating",
	Long: `Interpret tokenizes the event text, maps it through the lexicon, and
prints the activated vocabulary symbols, the unrepresentable tokens, the
expanded allowed-token list, and a state tableau grouping symbols by what
they expose.`,
	RunE: runInterpret,
}

func init() {
	interpretCmd.Flags().Bool("json", false, "output the interpretation as JSON")

	rootCmd.AddCommand(interpretCmd)
}

func runInterpret(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide the event text as arguments")
	}
	eventText := strings.Join(args, " ")

	dir := dataDir(cmd)
	store, err := vocab.LoadStore(dir)
	if err != nil {
		return err
	}
	lexicon, err := vocab.LoadLexicon(dir)
	if err != nil {
		return err
	}

	in := interpret.New(store, lexicon)
	interp := in.Interpret(eventText)

	allowed, err := store.Expand(interp.Activated)
	if err != nil {
		return err
	}
	tableau := in.Tableau(interp.Activated)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		out := struct {
			Activated       []string `json:"bag_of_api"`
			Unrepresentable []string `json:"unrepresentable"`
			AllowedTokens   []string `json:"allowed_tokens"`
			Observable      []string `json:"observable"`
			Callable        []string `json:"callable"`
		}{interp.Activated, interp.Unrepresentable, allowed, tableau.Observable, tableau.Callable}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Activated:       %v\n", interp.Activated)
	fmt.Printf("Unrepresentable: %v\n", interp.Unrepresentable)
	fmt.Printf("Allowed tokens:  %v\n", allowed)
	fmt.Println("\nState tableau:")
	for _, row := range tableau.Observable {
		fmt.Printf("  observable  %s\n", row)
	}
	for _, row := range tableau.Callable {
		fmt.Printf("  callable    %s\n", row)
	}
	return nil
}
