// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/corpus"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Index and search the passage collection",
	Long: `Corpus manages the SQLite full-text index over passages.yaml. The index
is an authoring aid: search it to find which passages substantiate a symbol
or mention a phrase. The narrate pipeline itself reads passages.yaml
directly and does not need the index.`,
}

// --- index subcommand ---

var corpusIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or refresh the full-text passage index",
	Long: `Index ingests passages.yaml into a SQLite database with FTS5 indexing.
Unchanged passages are skipped on subsequent runs.`,
	RunE: runCorpusIndex,
}

func runCorpusIndex(cmd *cobra.Command, args []string) error {
	cfg := corpusConfig(cmd)

	passages, err := corpus.Load(cfg.DataDir)
	if err != nil {
		return err
	}

	store, err := corpus.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Index(context.Background(), passages, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d, updated %d, skipped %d (%d total)\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Total())
	return nil
}

// --- search subcommand ---

var corpusSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the passage index with full-text search and filters",
	Long: `Search queries the passage index using FTS5 full-text search, a symbol
filter, a role filter, or a combination. Without a query, results come back
in corpus order.`,
	RunE: runCorpusSearch,
}

func runCorpusSearch(cmd *cobra.Command, args []string) error {
	cfg := corpusConfig(cmd)
	store, err := corpus.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := searchOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --symbol, or --role")
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []types.Passage, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-8s  %-24s  %s\n",
		"Rank", "ID", "Role", "Symbols", "Text")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, p := range results {
		role := string(p.Role)
		if role == "" {
			role = string(types.RoleConcept)
		}
		symbols := strings.Join(p.Symbols, ",")
		if len(symbols) > 24 {
			symbols = symbols[:21] + "..."
		}
		text := p.Text
		if len(text) > 40 {
			text = text[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-8s  %-24s  %s\n",
			i+1, p.ID, role, symbols, text)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- shared helpers ---

func corpusConfig(cmd *cobra.Command) types.CorpusConfig {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.CorpusConfig{
		DataDir:    dataDir(cmd),
		IndexDir:   indexDir,
		MaxResults: maxResults,
	}
}

func searchOptsFromFlags(cmd *cobra.Command, args []string) corpus.SearchOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	symbol, _ := cmd.Flags().GetString("symbol")
	role, _ := cmd.Flags().GetString("role")
	limit, _ := cmd.Flags().GetInt("limit")

	return corpus.SearchOptions{
		Query:      queryText,
		Symbol:     symbol,
		Role:       types.PassageRole(role),
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	corpusCmd.PersistentFlags().String("index-dir", "", "directory for the SQLite index (default: <data-dir>/index)")
	corpusCmd.PersistentFlags().Int("max-results", 20, "maximum number of search results")

	// Search flags.
	corpusSearchCmd.Flags().String("query", "", "full-text search query")
	corpusSearchCmd.Flags().String("symbol", "", "filter by substantiated symbol")
	corpusSearchCmd.Flags().String("role", "", "filter by role: backbone or concept")
	corpusSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	corpusSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Wire subcommands.
	corpusCmd.AddCommand(corpusIndexCmd)
	corpusCmd.AddCommand(corpusSearchCmd)

	rootCmd.AddCommand(corpusCmd)
}
