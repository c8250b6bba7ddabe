// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab loads the static vocabulary tables (the legal SDK symbol
// sets, the requires/yields relation graph, and the surface lexicon) and
// computes the requires closure over them.
//
// All tables are loaded once at process start and are read-only afterwards.
// See docs/ARCHITECTURE § Vocabulary.
package vocab

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

const (
	symbolsFile   = "symbols.yaml"
	relationsFile = "relations.yaml"
	lexiconFile   = "lexicon.yaml"
)

// Store is the immutable vocabulary store: symbol sets plus the relation
// graph, with membership indexes built at load time.
type Store struct {
	Symbols types.SymbolSet
	Graph   types.RelationGraph

	functions map[string]bool
	literals  map[string]bool
	enums     map[string]bool
}

// NewStore builds a Store from already-parsed tables.
func NewStore(symbols types.SymbolSet, graph types.RelationGraph) *Store {
	s := &Store{
		Symbols:   symbols,
		Graph:     graph,
		functions: make(map[string]bool, len(symbols.Functions)),
		literals:  make(map[string]bool, len(symbols.Literals)),
		enums:     make(map[string]bool, len(symbols.Enums)),
	}
	for _, f := range symbols.Functions {
		s.functions[f] = true
	}
	for _, l := range symbols.Literals {
		s.literals[l] = true
	}
	for e := range symbols.Enums {
		s.enums[e] = true
	}
	return s
}

// LoadStore reads symbols.yaml and relations.yaml from dataDir. Missing or
// malformed files are fatal: no request can be served without them.
func LoadStore(dataDir string) (*Store, error) {
	var symbols types.SymbolSet
	if err := readYAML(filepath.Join(dataDir, symbolsFile), &symbols); err != nil {
		return nil, fmt.Errorf("loading symbols: %w", err)
	}

	var graph types.RelationGraph
	if err := readYAML(filepath.Join(dataDir, relationsFile), &graph); err != nil {
		return nil, fmt.Errorf("loading relations: %w", err)
	}

	return NewStore(symbols, graph), nil
}

// Contains reports whether sym is a legal vocabulary symbol: a function, a
// literal, or an enumeration key.
func (s *Store) Contains(sym string) bool {
	return s.functions[sym] || s.literals[sym] || s.enums[sym]
}

// Kind returns the symbol's kind. The boolean is false for unknown symbols.
func (s *Store) Kind(sym string) (types.SymbolKind, bool) {
	switch {
	case s.functions[sym]:
		return types.KindFunction, true
	case s.literals[sym]:
		return types.KindLiteral, true
	case s.enums[sym]:
		return types.KindEnum, true
	}
	return "", false
}

// Requires returns the symbol's requires edges in declared order. Symbols
// absent from the graph have no prerequisites.
func (s *Store) Requires(sym string) []string {
	return s.Graph[sym].Requires
}

// Yields returns the symbol's yields edges in declared order.
func (s *Store) Yields(sym string) []string {
	return s.Graph[sym].Yields
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}
