// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SymbolKind partitions the vocabulary into its three disjoint kinds.
type SymbolKind string

const (
	KindFunction SymbolKind = "function"
	KindLiteral  SymbolKind = "literal"
	KindEnum     SymbolKind = "enum"
)

// SymbolSet is the static vocabulary definition loaded from symbols.yaml.
// A symbol's identity is its spelling; some spellings are not plain
// identifiers (e.g. "VSync(0)", "PAD_STATE_*") and are treated as opaque
// strings throughout.
type SymbolSet struct {
	// Functions lists callable SDK function names.
	Functions []string `json:"functions" yaml:"functions"`

	// Literals lists literal constant spellings.
	Literals []string `json:"literals" yaml:"literals"`

	// Enums maps an enumeration key to its member spellings.
	Enums map[string][]string `json:"enums" yaml:"enums"`
}

// Relation holds the outgoing edges of one symbol in the relation graph.
type Relation struct {
	// Requires lists symbols that must precede this one in any narrative
	// order. The relation must be acyclic.
	Requires []string `json:"requires" yaml:"requires"`

	// Yields lists domain-state identifiers this symbol produces
	// (e.g. "PadGetState" yields "PAD_STATE_*").
	Yields []string `json:"yields" yaml:"yields"`
}

// RelationGraph maps a symbol to its requires/yields edges.
type RelationGraph map[string]Relation

// LexiconMap is the static bidirectional lexicon loaded from lexicon.yaml.
// Both directions are many-to-many.
type LexiconMap struct {
	// Lex2Neutral maps a lowercase surface lexeme to neutral semantic tags.
	Lex2Neutral map[string][]string `json:"lex2neutral" yaml:"lex2neutral"`

	// Neutral2SDK maps a neutral tag to candidate vocabulary symbols.
	Neutral2SDK map[string][]string `json:"neutral2sdk" yaml:"neutral2sdk"`
}

// Interpretation is the per-request output of the lexical interpreter.
type Interpretation struct {
	// Activated is the sorted set of vocabulary symbols reachable from the
	// input text through the lexicon ("bag of API").
	Activated []string `json:"bag_of_api" yaml:"bag_of_api"`

	// Unrepresentable is the sorted set of distinct input tokens that
	// yielded no neutral tag.
	Unrepresentable []string `json:"unrepresentable" yaml:"unrepresentable"`
}

// StateTableau groups interpreted symbols by what they expose.
type StateTableau struct {
	// Observable lists "symbol → domain-state" rows for symbols with yields.
	Observable []string `json:"observable" yaml:"observable"`

	// Callable lists functions and literals without yields.
	Callable []string `json:"callable" yaml:"callable"`
}
