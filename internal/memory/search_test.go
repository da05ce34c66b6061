package memory_test

import (
	"errors"
	"testing"

	"github.com/dcastano/memvault/internal/memory"
)

// seedStore fills a store with one record per collection for search tests.
func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	s := newTestStore(t)

	if _, err := s.AddDecision(memory.AddDecisionParams{
		Title:       "Use PostgreSQL",
		Description: "Chose PG for JSON support",
		Rationale:   "Team familiarity",
		Tags:        []string{"database"},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddConvention(memory.AddConventionParams{
		Category: "testing",
		Rule:     "table-driven tests for parsers",
		Enforced: true,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddNote(memory.AddNoteParams{
		Title:   "Migration checklist",
		Content: "run backups before schema changes",
		Tags:    []string{"ops"},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpsertContext("primary_db", "postgresql 16", "main datastore"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddItem(memory.AddItemParams{
		Title:   "Connection pool tuning",
		Content: "pgbouncer settings for prod",
		Type:    "config",
		Tags:    []string{"database"},
		Project: "billing",
	}); err != nil {
		t.Fatal(err)
	}
	return s
}

// ─── Term matching ───────────────────────────────────────────────────────────

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	s := seedStore(t)

	// Lowercase partial term must find the decision titled "Use PostgreSQL".
	matches, err := s.Search("postgres", memory.SearchOptions{})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	var collections []memory.Collection
	for _, m := range matches {
		collections = append(collections, m.Collection)
	}
	// "postgres" appears in the decision title and the context value.
	want := []memory.Collection{memory.CollectionDecisions, memory.CollectionContext}
	if len(matches) != 2 {
		t.Fatalf("matches = %v, want collections %v", collections, want)
	}
	for i, c := range want {
		if matches[i].Collection != c {
			t.Errorf("match[%d].Collection = %s, want %s", i, matches[i].Collection, c)
		}
	}
}

func TestSearch_AppearsExactlyOnce(t *testing.T) {
	s := newTestStore(t)
	// Term in multiple fields of the same record must yield one match.
	d, err := s.AddDecision(memory.AddDecisionParams{
		Title:       "Caching with Redis",
		Description: "Redis for session caching",
		Rationale:   "Redis is already deployed",
	})
	if err != nil {
		t.Fatal(err)
	}

	matches, err := s.Search("redis", memory.SearchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].ID != d.ID {
		t.Errorf("matches = %+v, want exactly one for %s", matches, d.ID)
	}
}

func TestSearch_TagExactMatch(t *testing.T) {
	s := seedStore(t)

	// The term "database" matches the decision and item by exact tag.
	matches, err := s.Search("database", memory.SearchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	got := map[memory.Collection]bool{}
	for _, m := range matches {
		got[m.Collection] = true
	}
	if !got[memory.CollectionDecisions] || !got[memory.CollectionItems] {
		t.Errorf("tag search collections = %v, want decisions and items", got)
	}
}

func TestSearch_NoMatchesIsEmptyNotError(t *testing.T) {
	s := seedStore(t)

	matches, err := s.Search("kubernetes", memory.SearchOptions{})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if matches == nil {
		t.Error("no matches returned nil, want empty slice")
	}
	if len(matches) != 0 {
		t.Errorf("matches = %+v, want none", matches)
	}
}

// ─── Scope and filters ───────────────────────────────────────────────────────

func TestSearch_ScopeSingleCollection(t *testing.T) {
	s := seedStore(t)

	matches, err := s.Search("postgres", memory.SearchOptions{
		Scope: string(memory.CollectionContext),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].Collection != memory.CollectionContext {
		t.Errorf("scoped matches = %+v, want one context hit", matches)
	}
}

func TestSearch_InvalidScope(t *testing.T) {
	s := seedStore(t)
	_, err := s.Search("x", memory.SearchOptions{Scope: "blobs"})
	var verr *memory.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("invalid scope = %v, want ValidationError", err)
	}
}

func TestSearch_TagFilter(t *testing.T) {
	s := seedStore(t)

	// Empty term with a tag filter lists everything carrying the tag.
	matches, err := s.Search("", memory.SearchOptions{Tag: "database"})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("tag-filtered matches = %+v, want 2", matches)
	}
	for _, m := range matches {
		if m.Collection == memory.CollectionConventions || m.Collection == memory.CollectionContext {
			t.Errorf("tag filter leaked into untagged collection %s", m.Collection)
		}
	}
}

func TestSearch_TypeAndProjectFilters(t *testing.T) {
	s := seedStore(t)

	matches, err := s.Search("", memory.SearchOptions{Type: "config"})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0].Collection != memory.CollectionItems {
		t.Errorf("type filter = %+v, want the one config item", matches)
	}

	matches, err = s.Search("", memory.SearchOptions{Project: "billing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("project filter = %+v, want one item", matches)
	}

	matches, err = s.Search("", memory.SearchOptions{Project: "frontend"})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("unknown project = %+v, want none", matches)
	}
}

// ─── Ordering ────────────────────────────────────────────────────────────────

func TestSearch_PreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	var ids []string
	for _, title := range []string{"alpha cache", "beta cache", "gamma cache"} {
		d, err := s.AddDecision(memory.AddDecisionParams{Title: title, Description: "d"})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, d.ID)
	}

	matches, err := s.Search("cache", memory.SearchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("matches = %d, want 3", len(matches))
	}
	for i, id := range ids {
		if matches[i].ID != id {
			t.Errorf("match[%d].ID = %s, want %s (insertion order)", i, matches[i].ID, id)
		}
	}
}

func TestSearch_Limit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.AddNote(memory.AddNoteParams{Title: "cache note", Content: "c"}); err != nil {
			t.Fatal(err)
		}
	}

	matches, err := s.Search("cache", memory.SearchOptions{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Errorf("limited matches = %d, want 2", len(matches))
	}
}
