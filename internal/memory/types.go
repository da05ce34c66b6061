// Package memory implements the persistent project-memory store for memvault.
//
// The store holds five typed collections — decisions, conventions, notes,
// context entries, and generic items — in a single JSON document on disk.
// Every mutating operation rewrites the whole document atomically before it
// reports success (write-through), so the file on disk always reflects the
// last operation the caller was told succeeded.
package memory

import "time"

// DecisionStatus is the lifecycle state of a Decision.
type DecisionStatus string

// Decision lifecycle states.
const (
	StatusActive     DecisionStatus = "active"
	StatusSuperseded DecisionStatus = "superseded"
	StatusDeprecated DecisionStatus = "deprecated"
)

// ValidStatus reports whether s is a known decision status.
func ValidStatus(s DecisionStatus) bool {
	switch s {
	case StatusActive, StatusSuperseded, StatusDeprecated:
		return true
	}
	return false
}

// Decision records an architectural or design decision.
//
// SupersededBy is only set while Status is StatusSuperseded and points at the
// Decision that replaced this one. Deleting the referenced Decision leaves the
// pointer dangling on purpose: deletes never cascade and never repair
// references, so readers must tolerate a SupersededBy that no longer resolves.
type Decision struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Rationale    string         `json:"rationale"`
	CreatedAt    time.Time      `json:"created_at"`
	Tags         []string       `json:"tags,omitempty"`
	Status       DecisionStatus `json:"status"`
	SupersededBy string         `json:"superseded_by,omitempty"`
}

// Convention records a coding convention or team rule.
type Convention struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Rule     string   `json:"rule"`
	Examples []string `json:"examples,omitempty"`
	Enforced bool     `json:"enforced"`
}

// Note is a free-form piece of project knowledge.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags,omitempty"`
}

// ContextEntry is a keyed value in the project context. Keys are unique:
// writing an existing key replaces the entry in place (upsert), preserving
// its position in the list.
type ContextEntry struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

// Item is the generic record variant: a typed, tagged entry scoped to a
// project. It is the only collection that carries type and project fields,
// and the only append-only collection that supports partial updates.
type Item struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	Project   string    `json:"project"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Memory is the aggregate root: everything the store knows, exactly as it is
// serialized to disk. Collection field names are the stable on-disk schema.
type Memory struct {
	Decisions    []Decision     `json:"decisions"`
	Conventions  []Convention   `json:"conventions"`
	Notes        []Note         `json:"notes"`
	Context      []ContextEntry `json:"context"`
	Items        []Item         `json:"items"`
	LastModified time.Time      `json:"last_modified"`
}

// Collection names a typed grouping of records. These values double as the
// "collection" argument of tools and as the origin tag on search matches.
type Collection string

// Store collections, in the fixed order used for all-scope search results.
const (
	CollectionDecisions   Collection = "decisions"
	CollectionConventions Collection = "conventions"
	CollectionNotes       Collection = "notes"
	CollectionContext     Collection = "context"
	CollectionItems       Collection = "items"
)

// Collections returns every collection in the documented fixed order.
func Collections() []Collection {
	return []Collection{
		CollectionDecisions,
		CollectionConventions,
		CollectionNotes,
		CollectionContext,
		CollectionItems,
	}
}

// ValidCollection reports whether c names a known collection.
func ValidCollection(c Collection) bool {
	switch c {
	case CollectionDecisions, CollectionConventions, CollectionNotes,
		CollectionContext, CollectionItems:
		return true
	}
	return false
}

// clone returns a deep copy of the Memory. Record structs contain slices
// (tags, examples), so element-wise copies are needed to keep snapshots
// independent of later mutations.
func (m Memory) clone() Memory {
	out := Memory{LastModified: m.LastModified}

	if m.Decisions != nil {
		out.Decisions = make([]Decision, len(m.Decisions))
		for i, d := range m.Decisions {
			d.Tags = cloneStrings(d.Tags)
			out.Decisions[i] = d
		}
	}
	if m.Conventions != nil {
		out.Conventions = make([]Convention, len(m.Conventions))
		for i, c := range m.Conventions {
			c.Examples = cloneStrings(c.Examples)
			out.Conventions[i] = c
		}
	}
	if m.Notes != nil {
		out.Notes = make([]Note, len(m.Notes))
		for i, n := range m.Notes {
			n.Tags = cloneStrings(n.Tags)
			out.Notes[i] = n
		}
	}
	if m.Context != nil {
		out.Context = make([]ContextEntry, len(m.Context))
		copy(out.Context, m.Context)
	}
	if m.Items != nil {
		out.Items = make([]Item, len(m.Items))
		for i, it := range m.Items {
			it.Tags = cloneStrings(it.Tags)
			out.Items[i] = it
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
