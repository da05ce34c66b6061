package memory

import "strings"

// ScopeAll searches every collection. Results are grouped in the fixed
// collection order (decisions, conventions, notes, context, items) so that
// ties across collections are deterministic.
const ScopeAll = "all"

// SearchOptions holds the scope and filters for a search.
type SearchOptions struct {
	// Scope is ScopeAll or the name of a single collection.
	Scope string `json:"scope,omitempty"`
	// Tag restricts results to records carrying the tag (exact,
	// case-insensitive). Applies to decisions, notes, and items.
	Tag string `json:"tag,omitempty"`
	// Type restricts item results to a single item type.
	Type string `json:"type,omitempty"`
	// Project restricts item results to a single project.
	Project string `json:"project,omitempty"`
	// Limit caps the number of matches; 0 means no cap.
	Limit int `json:"limit,omitempty"`
}

// Match is one search hit, tagged with its originating collection. ID holds
// the record id, or the key for context entries.
type Match struct {
	Collection Collection `json:"collection"`
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Snippet    string     `json:"snippet,omitempty"`
	Record     any        `json:"record"`
}

// Search scans the store for records whose searchable fields contain term
// (case-insensitive substring) or whose tags match it exactly. Filters
// narrow the candidate set before the term is applied. Each matching record
// appears exactly once, in collection insertion order; no matches is a
// normal empty result, not an error.
func (s *Store) Search(term string, opts SearchOptions) ([]Match, error) {
	scope := opts.Scope
	if scope == "" {
		scope = ScopeAll
	}
	if scope != ScopeAll && !ValidCollection(Collection(scope)) {
		return nil, &ValidationError{Field: "scope", Reason: "unknown collection " + scope}
	}

	snap := s.Snapshot()
	needle := strings.ToLower(strings.TrimSpace(term))

	matches := []Match{}
	add := func(c Collection, id, title, snippet string, record any) {
		if opts.Limit > 0 && len(matches) >= opts.Limit {
			return
		}
		matches = append(matches, Match{
			Collection: c,
			ID:         id,
			Title:      title,
			Snippet:    snippet,
			Record:     record,
		})
	}
	inScope := func(c Collection) bool {
		return scope == ScopeAll || scope == string(c)
	}

	// Tag filter excludes collections without tags; type/project filters
	// exclude everything but items.
	tagOnly := opts.Tag != ""
	itemsOnly := opts.Type != "" || opts.Project != ""

	if inScope(CollectionDecisions) && !itemsOnly {
		for _, d := range snap.Decisions {
			if tagOnly && !hasTag(d.Tags, opts.Tag) {
				continue
			}
			if matchAny(needle, d.Tags, d.Title, d.Description, d.Rationale) {
				add(CollectionDecisions, d.ID, d.Title, snippet(d.Description), d)
			}
		}
	}

	if inScope(CollectionConventions) && !itemsOnly && !tagOnly {
		for _, c := range snap.Conventions {
			if matchAny(needle, nil, c.Category, c.Rule) {
				add(CollectionConventions, c.ID, c.Category, snippet(c.Rule), c)
			}
		}
	}

	if inScope(CollectionNotes) && !itemsOnly {
		for _, n := range snap.Notes {
			if tagOnly && !hasTag(n.Tags, opts.Tag) {
				continue
			}
			if matchAny(needle, n.Tags, n.Title, n.Content) {
				add(CollectionNotes, n.ID, n.Title, snippet(n.Content), n)
			}
		}
	}

	if inScope(CollectionContext) && !itemsOnly && !tagOnly {
		for _, e := range snap.Context {
			if matchAny(needle, nil, e.Key, e.Value, e.Description) {
				add(CollectionContext, e.Key, e.Key, snippet(e.Value), e)
			}
		}
	}

	if inScope(CollectionItems) {
		for _, it := range snap.Items {
			if tagOnly && !hasTag(it.Tags, opts.Tag) {
				continue
			}
			if opts.Type != "" && !strings.EqualFold(it.Type, opts.Type) {
				continue
			}
			if opts.Project != "" && !strings.EqualFold(it.Project, opts.Project) {
				continue
			}
			if matchAny(needle, it.Tags, it.Title, it.Content) {
				add(CollectionItems, it.ID, it.Title, snippet(it.Content), it)
			}
		}
	}

	return matches, nil
}

// matchAny reports whether needle is a substring of any field or an exact
// match of any tag. An empty needle matches everything, so filter-only
// searches (tag, type, project) work without a term.
func matchAny(needle string, tags []string, fields ...string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	for _, t := range tags {
		if strings.EqualFold(t, needle) {
			return true
		}
	}
	return false
}

// hasTag reports an exact, case-insensitive tag match.
func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// snippetLen caps the preview text carried on a Match.
const snippetLen = 160

// snippet truncates s for use as a match preview.
func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= snippetLen {
		return s
	}
	return s[:snippetLen] + "…"
}
