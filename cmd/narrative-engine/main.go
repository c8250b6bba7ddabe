// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the narrative-engine CLI.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/narrative-engine/internal/secrets"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the narrative-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "narrative-engine",
	Short: "Event-minimal PlayStation SDK narratives from free-text events",
	Long: `narrative-engine turns free-text event descriptions into short first-person
narratives told strictly in PlayStation SDK vocabulary. An event is
interpreted against a controlled lexicon, prerequisites are expanded over the
requires relation, a minimal set of evidence passages is selected, and a
local language model writes the narrative under a vocabulary ceiling and a
citation contract. The output is repaired and linted before it is shown.

Each stage is reachable on its own: interpret shows the lexical reading,
vocab validates the static tables, corpus indexes and searches the passage
collection, and lexicon grows the surface vocabulary.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./narrative-engine.yaml or ~/.config/narrative-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the vocabulary and passage tables (default: ./data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("narrative-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "narrative-engine"))
		}
	}

	viper.SetEnvPrefix("NARRATIVE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// dataDir resolves the data directory: flag, then config file, then ./data.
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		return dir
	}
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir
	}
	return "data"
}

// generationConfig resolves the generation-service settings: config file
// values with the API key falling back to .secrets/generation-api-key.
func generationConfig() types.GenerationConfig {
	cfg := types.GenerationConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("generation.timeout"),
			UserAgent: "narrative-engine/" + version,
		},
		BaseURL:    viper.GetString("generation.base_url"),
		Model:      viper.GetString("generation.model"),
		APIKey:     secretDefault("generation-api-key", viper.GetString("generation.api_key")),
		MaxRetries: viper.GetInt("generation.max_retries"),
		MaxTokens:  viper.GetInt("generation.max_tokens"),
	}
	// An absent temperature stays nil so the backend default applies; an
	// explicit zero in the config means greedy sampling.
	if viper.IsSet("generation.temperature") {
		t := viper.GetFloat64("generation.temperature")
		cfg.Temperature = &t
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
