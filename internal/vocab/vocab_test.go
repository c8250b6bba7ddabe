// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

const testSymbolsYAML = `functions:
  - PadInit
  - PadGetState
literals:
  - "VSync(0)"
enums:
  "PAD_STATE_*":
    - PadStateStable
    - PadStateDiscon
`

const testRelationsYAML = `PadGetState:
  requires: [PadInit]
  yields: ["PAD_STATE_*"]
PadInit:
  requires: []
`

const testLexiconYAML = `lex2neutral:
  controller: [input_device]
  unplugged: [device_removed]
neutral2sdk:
  input_device: [PadInit, PadGetState]
  device_removed: [PadGetState]
`

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		symbolsFile:   testSymbolsYAML,
		relationsFile: testRelationsYAML,
		lexiconFile:   testLexiconYAML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadStore(t *testing.T) {
	dir := writeDataDir(t)

	s, err := LoadStore(dir)
	if err != nil {
		t.Fatalf("LoadStore() error: %v", err)
	}

	wantContains := map[string]bool{
		"PadInit":        true,
		"PadGetState":    true,
		"VSync(0)":       true,
		"PAD_STATE_*":    true,
		"PadStateStable": false, // enum members are not symbols themselves
		"coffee":         false,
	}
	for sym, want := range wantContains {
		if got := s.Contains(sym); got != want {
			t.Errorf("Contains(%q) = %v, want %v", sym, got, want)
		}
	}

	if got := s.Requires("PadGetState"); !reflect.DeepEqual(got, []string{"PadInit"}) {
		t.Errorf("Requires(PadGetState) = %v, want [PadInit]", got)
	}
	if got := s.Yields("PadGetState"); !reflect.DeepEqual(got, []string{"PAD_STATE_*"}) {
		t.Errorf("Yields(PadGetState) = %v, want [PAD_STATE_*]", got)
	}
}

func TestKind(t *testing.T) {
	dir := writeDataDir(t)
	s, err := LoadStore(dir)
	if err != nil {
		t.Fatalf("LoadStore() error: %v", err)
	}

	tests := []struct {
		sym  string
		want types.SymbolKind
		ok   bool
	}{
		{"PadInit", types.KindFunction, true},
		{"VSync(0)", types.KindLiteral, true},
		{"PAD_STATE_*", types.KindEnum, true},
		{"spill", "", false},
	}
	for _, tt := range tests {
		got, ok := s.Kind(tt.sym)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Kind(%q) = (%q, %v), want (%q, %v)", tt.sym, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadStoreMissingFile(t *testing.T) {
	_, err := LoadStore(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("LoadStore() on missing directory: want error, got nil")
	}
}

func TestLoadLexicon(t *testing.T) {
	dir := writeDataDir(t)

	lex, err := LoadLexicon(dir)
	if err != nil {
		t.Fatalf("LoadLexicon() error: %v", err)
	}

	if got := lex.NeutralTags("controller"); !reflect.DeepEqual(got, []string{"input_device"}) {
		t.Errorf("NeutralTags(controller) = %v, want [input_device]", got)
	}
	if got := lex.NeutralTags("coffee"); got != nil {
		t.Errorf("NeutralTags(coffee) = %v, want nil", got)
	}
	if got := lex.CandidateSymbols("input_device"); !reflect.DeepEqual(got, []string{"PadInit", "PadGetState"}) {
		t.Errorf("CandidateSymbols(input_device) = %v, want [PadInit PadGetState]", got)
	}
}

func TestValidateLexicon(t *testing.T) {
	store := NewStore(types.SymbolSet{
		Functions: []string{"PadInit"},
	}, nil)

	tests := []struct {
		name string
		lex  types.LexiconMap
		want []string
	}{
		{
			name: "consistent",
			lex: types.LexiconMap{
				Lex2Neutral: map[string][]string{"controller": {"input_device"}},
				Neutral2SDK: map[string][]string{"input_device": {"PadInit"}},
			},
			want: nil,
		},
		{
			name: "symbol absent from vocabulary",
			lex: types.LexiconMap{
				Neutral2SDK: map[string][]string{"input_device": {"PadBogus"}},
			},
			want: []string{`neutral2sdk[input_device] -> "PadBogus" not in vocabulary`},
		},
		{
			name: "lexeme references unknown neutral tag",
			lex: types.LexiconMap{
				Lex2Neutral: map[string][]string{"controller": {"ghost_tag"}},
				Neutral2SDK: map[string][]string{"input_device": {"PadInit"}},
			},
			want: []string{"lex2neutral[controller] has unknown neutral tags: [ghost_tag]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateLexicon(NewLexicon(tt.lex), store)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateLexicon() = %v, want %v", got, tt.want)
			}
		})
	}
}
