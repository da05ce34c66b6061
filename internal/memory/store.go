package memory

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ─── Params ──────────────────────────────────────────────────────────────────

// AddDecisionParams holds the input for recording a new decision.
type AddDecisionParams struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Rationale   string   `json:"rationale"`
	Tags        []string `json:"tags,omitempty"`
}

// AddConventionParams holds the input for recording a new convention.
type AddConventionParams struct {
	Category string   `json:"category"`
	Rule     string   `json:"rule"`
	Examples []string `json:"examples,omitempty"`
	Enforced bool     `json:"enforced"`
}

// AddNoteParams holds the input for recording a new note.
type AddNoteParams struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// AddItemParams holds the input for recording a new generic item.
type AddItemParams struct {
	Type    string   `json:"type,omitempty"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
	Project string   `json:"project,omitempty"`
}

// UpdateItemParams holds partial update fields for an item. Nil fields are
// left unchanged.
type UpdateItemParams struct {
	Type    *string   `json:"type,omitempty"`
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
	Project *string   `json:"project,omitempty"`
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the single source of truth for all collections. It is an explicit
// instance — construct one with Open and pass it to whatever needs it; there
// is no package-level state, so tests can run many independent stores.
//
// A surrounding single-threaded dispatcher is the expected caller, but the
// store is safe for concurrent use anyway: a RWMutex serializes the whole
// read-state → mutate → persist sequence of every write, and readers see
// either the pre- or post-state of a mutation, never an intermediate one.
type Store struct {
	mu   sync.RWMutex
	path string
	data Memory
}

// Open loads the store from cfg.Path, bootstrapping an empty store when the
// file does not exist yet. A corrupt file fails with CorruptStoreError unless
// cfg.DiscardCorrupt is set, in which case the store starts empty and the
// corrupt file is replaced on the next save.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, &ValidationError{Field: "path", Reason: "must not be empty"}
	}

	data, err := loadMemory(cfg.Path)
	if err != nil {
		var corrupt *CorruptStoreError
		if cfg.DiscardCorrupt && errors.As(err, &corrupt) {
			data = emptyMemory()
		} else {
			return nil, fmt.Errorf("memory: open: %w", err)
		}
	}

	return &Store{path: cfg.Path, data: data}, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a consistent, point-in-time deep copy of the full store.
// Mutating the returned value has no effect on the store.
func (s *Store) Snapshot() Memory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

// commit persists next and, only on success, installs it as the current
// state. On a PersistenceError the store keeps serving the previous committed
// version — the failed mutation never becomes visible. Callers must hold the
// write lock.
func (s *Store) commit(next Memory) error {
	next.LastModified = time.Now().UTC()
	if err := saveMemory(s.path, next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// ─── Decisions ───────────────────────────────────────────────────────────────

// AddDecision records a new decision with status active, a fresh ID, and the
// current timestamp, and persists before returning.
func (s *Store) AddDecision(p AddDecisionParams) (Decision, error) {
	if strings.TrimSpace(p.Title) == "" {
		return Decision{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.Description) == "" {
		return Decision{}, &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := Decision{
		ID:          NewID(),
		Title:       p.Title,
		Description: p.Description,
		Rationale:   p.Rationale,
		CreatedAt:   time.Now().UTC(),
		Tags:        normalizeTags(p.Tags),
		Status:      StatusActive,
	}

	next := s.data.clone()
	next.Decisions = append(next.Decisions, d)
	if err := s.commit(next); err != nil {
		return Decision{}, err
	}
	return d, nil
}

// UpdateDecisionStatus transitions a decision to a new status. Moving to
// superseded requires supersededBy to name an existing decision; any other
// status clears the superseded-by pointer.
func (s *Store) UpdateDecisionStatus(id string, status DecisionStatus, supersededBy string) (Decision, error) {
	if !ValidStatus(status) {
		return Decision{}, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()

	idx := -1
	for i := range next.Decisions {
		if next.Decisions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Decision{}, &NotFoundError{Collection: CollectionDecisions, ID: id}
	}

	if status == StatusSuperseded {
		if supersededBy == "" {
			return Decision{}, &ValidationError{
				Field:  "superseded_by",
				Reason: "required when status is superseded",
			}
		}
		found := false
		for i := range next.Decisions {
			if next.Decisions[i].ID == supersededBy {
				found = true
				break
			}
		}
		if !found {
			return Decision{}, &ValidationError{
				Field:  "superseded_by",
				Reason: fmt.Sprintf("no decision with id %q", supersededBy),
			}
		}
		next.Decisions[idx].SupersededBy = supersededBy
	} else {
		next.Decisions[idx].SupersededBy = ""
	}
	next.Decisions[idx].Status = status

	if err := s.commit(next); err != nil {
		return Decision{}, err
	}
	return next.Decisions[idx], nil
}

// GetDecision retrieves a decision by ID.
func (s *Store) GetDecision(id string) (Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.data.Decisions {
		if d.ID == id {
			d.Tags = cloneStrings(d.Tags)
			return d, nil
		}
	}
	return Decision{}, &NotFoundError{Collection: CollectionDecisions, ID: id}
}

// ─── Conventions ─────────────────────────────────────────────────────────────

// AddConvention records a new convention and persists before returning.
func (s *Store) AddConvention(p AddConventionParams) (Convention, error) {
	if strings.TrimSpace(p.Category) == "" {
		return Convention{}, &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.Rule) == "" {
		return Convention{}, &ValidationError{Field: "rule", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := Convention{
		ID:       NewID(),
		Category: p.Category,
		Rule:     p.Rule,
		Examples: cloneStrings(p.Examples),
		Enforced: p.Enforced,
	}

	next := s.data.clone()
	next.Conventions = append(next.Conventions, c)
	if err := s.commit(next); err != nil {
		return Convention{}, err
	}
	return c, nil
}

// ─── Notes ───────────────────────────────────────────────────────────────────

// AddNote records a new note and persists before returning.
func (s *Store) AddNote(p AddNoteParams) (Note, error) {
	if strings.TrimSpace(p.Title) == "" {
		return Note{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := Note{
		ID:        NewID(),
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: time.Now().UTC(),
		Tags:      normalizeTags(p.Tags),
	}

	next := s.data.clone()
	next.Notes = append(next.Notes, n)
	if err := s.commit(next); err != nil {
		return Note{}, err
	}
	return n, nil
}

// GetNote retrieves a note by ID.
func (s *Store) GetNote(id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.data.Notes {
		if n.ID == id {
			n.Tags = cloneStrings(n.Tags)
			return n, nil
		}
	}
	return Note{}, &NotFoundError{Collection: CollectionNotes, ID: id}
}

// ─── Context ─────────────────────────────────────────────────────────────────

// UpsertContext sets a context key. An existing key is replaced in place,
// keeping its position in the list; a new key is appended.
func (s *Store) UpsertContext(key, value, description string) (ContextEntry, error) {
	if strings.TrimSpace(key) == "" {
		return ContextEntry{}, &ValidationError{Field: "key", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := ContextEntry{
		Key:         key,
		Value:       value,
		Description: description,
		LastUpdated: time.Now().UTC(),
	}

	next := s.data.clone()
	replaced := false
	for i := range next.Context {
		if next.Context[i].Key == key {
			next.Context[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		next.Context = append(next.Context, entry)
	}

	if err := s.commit(next); err != nil {
		return ContextEntry{}, err
	}
	return entry, nil
}

// GetContext retrieves a context entry by key.
func (s *Store) GetContext(key string) (ContextEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.data.Context {
		if e.Key == key {
			return e, nil
		}
	}
	return ContextEntry{}, &NotFoundError{Collection: CollectionContext, ID: key}
}

// ─── Items ───────────────────────────────────────────────────────────────────

// AddItem records a new generic item. Type defaults to "note" and project to
// "general" when omitted.
func (s *Store) AddItem(p AddItemParams) (Item, error) {
	if strings.TrimSpace(p.Title) == "" {
		return Item{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.Content) == "" {
		return Item{}, &ValidationError{Field: "content", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	it := Item{
		ID:        NewID(),
		Type:      p.Type,
		Title:     p.Title,
		Content:   p.Content,
		Tags:      normalizeTags(p.Tags),
		Project:   p.Project,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if it.Type == "" {
		it.Type = "note"
	}
	if it.Project == "" {
		it.Project = "general"
	}

	next := s.data.clone()
	next.Items = append(next.Items, it)
	if err := s.commit(next); err != nil {
		return Item{}, err
	}
	return it, nil
}

// UpdateItem applies a partial update to an item and refreshes its
// updated-at timestamp.
func (s *Store) UpdateItem(id string, p UpdateItemParams) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()

	idx := -1
	for i := range next.Items {
		if next.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Item{}, &NotFoundError{Collection: CollectionItems, ID: id}
	}

	it := &next.Items[idx]
	if p.Type != nil {
		it.Type = *p.Type
	}
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return Item{}, &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		it.Title = *p.Title
	}
	if p.Content != nil {
		if strings.TrimSpace(*p.Content) == "" {
			return Item{}, &ValidationError{Field: "content", Reason: "must not be empty"}
		}
		it.Content = *p.Content
	}
	if p.Tags != nil {
		it.Tags = normalizeTags(*p.Tags)
	}
	if p.Project != nil {
		it.Project = *p.Project
	}
	it.UpdatedAt = time.Now().UTC()

	if err := s.commit(next); err != nil {
		return Item{}, err
	}
	return next.Items[idx], nil
}

// GetItem retrieves an item by ID.
func (s *Store) GetItem(id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.data.Items {
		if it.ID == id {
			it.Tags = cloneStrings(it.Tags)
			return it, nil
		}
	}
	return Item{}, &NotFoundError{Collection: CollectionItems, ID: id}
}

// ─── Delete ──────────────────────────────────────────────────────────────────

// Delete removes the record with the given id (or key, for context) from a
// collection. It reports whether a record was removed; absence is a normal
// false result, not an error. Deleting a decision that other decisions
// reference via superseded_by leaves those references dangling.
func (s *Store) Delete(collection Collection, idOrKey string) (bool, error) {
	if !ValidCollection(collection) {
		return false, &ValidationError{
			Field:  "collection",
			Reason: fmt.Sprintf("unknown collection %q", collection),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	removed := false

	switch collection {
	case CollectionDecisions:
		next.Decisions, removed = deleteByID(next.Decisions, idOrKey, func(d Decision) string { return d.ID })
	case CollectionConventions:
		next.Conventions, removed = deleteByID(next.Conventions, idOrKey, func(c Convention) string { return c.ID })
	case CollectionNotes:
		next.Notes, removed = deleteByID(next.Notes, idOrKey, func(n Note) string { return n.ID })
	case CollectionContext:
		next.Context, removed = deleteByID(next.Context, idOrKey, func(e ContextEntry) string { return e.Key })
	case CollectionItems:
		next.Items, removed = deleteByID(next.Items, idOrKey, func(it Item) string { return it.ID })
	}

	if !removed {
		return false, nil
	}
	if err := s.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

// deleteByID removes the first record whose identifier matches, preserving
// the order of the rest.
func deleteByID[T any](records []T, id string, idOf func(T) string) ([]T, bool) {
	for i, r := range records {
		if idOf(r) == id {
			return append(records[:i], records[i+1:]...), true
		}
	}
	return records, false
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// normalizeTags trims, de-duplicates, and drops empty tags, preserving first
// occurrence order.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}
