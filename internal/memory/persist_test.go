package memory_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dcastano/memvault/internal/memory"
)

// ─── Round-trip ──────────────────────────────────────────────────────────────

func TestPersistence_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	s, err := memory.Open(memory.Config{Path: path})
	if err != nil {
		t.Fatal(err)
	}

	d := addDecision(t, s, "Use PostgreSQL", "database")
	if _, err := s.AddConvention(memory.AddConventionParams{
		Category: "errors", Rule: "wrap with %w", Enforced: true,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddNote(memory.AddNoteParams{Title: "note", Content: "body"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpsertContext("env", "prod", "runtime env"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddItem(memory.AddItemParams{Title: "item", Content: "c"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpdateDecisionStatus(d.ID, memory.StatusDeprecated, ""); err != nil {
		t.Fatal(err)
	}

	want := s.Snapshot()

	reopened, err := memory.Open(memory.Config{Path: path})
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got := reopened.Snapshot()

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

// ─── On-disk layout ──────────────────────────────────────────────────────────

func TestPersistence_StableSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	s, err := memory.Open(memory.Config{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	addDecision(t, s, "Use PostgreSQL")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("backing file is not a JSON object: %v", err)
	}
	for _, key := range []string{"decisions", "conventions", "notes", "context", "items", "last_modified"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("backing file missing %q", key)
		}
	}
}

func TestPersistence_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "memory.json")
	s, err := memory.Open(memory.Config{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	addDecision(t, s, "first write creates dirs")

	if _, err := os.Stat(path); err != nil {
		t.Errorf("backing file not created: %v", err)
	}
}

// ─── Atomicity ───────────────────────────────────────────────────────────────

func TestPersistence_NoTempFileResidue(t *testing.T) {
	dir := t.TempDir()
	s, err := memory.Open(memory.Config{Path: filepath.Join(dir, "memory.json")})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		addDecision(t, s, "decision")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the backing file", len(entries))
	}
}

// TestPersistence_DestinationNeverPartial simulates the crash window: an
// interrupted save is modeled by a temp file that never got renamed. The
// destination must still hold the complete previous version.
func TestPersistence_DestinationNeverPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memory.json")
	s, err := memory.Open(memory.Config{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	addDecision(t, s, "committed")

	// A stray temp file (crash before rename) must not affect loading.
	if err := os.WriteFile(filepath.Join(dir, "memory.json.tmp-123"), []byte("{garb"), 0o600); err != nil {
		t.Fatal(err)
	}

	reopened, err := memory.Open(memory.Config{Path: path})
	if err != nil {
		t.Fatalf("reopen with stray temp file: %v", err)
	}
	if n := len(reopened.Snapshot().Decisions); n != 1 {
		t.Errorf("decisions = %d, want 1", n)
	}
}
