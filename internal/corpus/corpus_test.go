// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, passagesFile), []byte(content), 0o644); err != nil {
		t.Fatalf("writing passages: %v", err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeCorpus(t, `- id: pad.init.p3
  text: PadInit prepares the pad system.
  symbols: [PadInit]
- id: boot.backbone.p1
  text: General boot sequence overview.
  symbols: [PadInit, CdInit]
  role: backbone
`)

	passages, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(passages) != 2 {
		t.Fatalf("loaded %d passages, want 2", len(passages))
	}
	// Corpus order must survive loading: selection depends on it.
	if passages[0].ID != "pad.init.p3" || passages[1].ID != "boot.backbone.p1" {
		t.Errorf("corpus order not preserved: %v", IDs(passages))
	}
	if !passages[1].IsBackbone() {
		t.Errorf("passage %q should be backbone", passages[1].ID)
	}
	if passages[0].IsBackbone() {
		t.Errorf("passage %q should not be backbone", passages[0].ID)
	}
}

func TestLoadDuplicateID(t *testing.T) {
	dir := writeCorpus(t, `- id: pad.init.p3
  text: one
- id: pad.init.p3
  text: two
`)

	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate passage id") {
		t.Fatalf("Load() error = %v, want duplicate id error", err)
	}
}

func TestLoadEmptyID(t *testing.T) {
	dir := writeCorpus(t, `- text: orphan passage
`)

	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "empty id") {
		t.Fatalf("Load() error = %v, want empty id error", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("Load() on empty directory: want error, got nil")
	}
}

func TestQuotesAndIDs(t *testing.T) {
	passages := []types.Passage{
		{ID: "a", Text: "alpha", Symbols: []string{"PadInit"}},
		{ID: "b", Text: "beta", Role: types.RoleBackbone},
	}

	quotes := Quotes(passages)
	if len(quotes) != 2 || quotes[0] != (types.Quote{ID: "a", Text: "alpha"}) {
		t.Errorf("Quotes() = %v", quotes)
	}

	ids := IDs(passages)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs() = %v", ids)
	}
}
