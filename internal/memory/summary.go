package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Summary caps, fixed by contract: the digest always shows at most the five
// most recent decisions and the first ten enforced conventions.
const (
	recentDecisionCap     = 5
	enforcedConventionCap = 10
)

// SummaryCounts holds per-collection record counts.
type SummaryCounts struct {
	Decisions   int `json:"decisions"`
	Conventions int `json:"conventions"`
	Notes       int `json:"notes"`
	Context     int `json:"context"`
	Items       int `json:"items"`
}

// Summary is a compact read-side projection of the store: counts, the most
// recent decisions, the active (enforced) conventions, and the full context
// list. Building it never mutates the store and costs one linear pass.
type Summary struct {
	Counts              SummaryCounts  `json:"counts"`
	RecentDecisions     []Decision     `json:"recent_decisions"`
	EnforcedConventions []Convention   `json:"enforced_conventions"`
	Context             []ContextEntry `json:"context"`
	LastModified        time.Time      `json:"last_modified"`
}

// Summarize builds the store digest from a consistent snapshot.
func (s *Store) Summarize() Summary {
	snap := s.Snapshot()

	sum := Summary{
		Counts: SummaryCounts{
			Decisions:   len(snap.Decisions),
			Conventions: len(snap.Conventions),
			Notes:       len(snap.Notes),
			Context:     len(snap.Context),
			Items:       len(snap.Items),
		},
		RecentDecisions:     []Decision{},
		EnforcedConventions: []Convention{},
		Context:             snap.Context,
		LastModified:        snap.LastModified,
	}
	if sum.Context == nil {
		sum.Context = []ContextEntry{}
	}

	// Most recent decisions first. Insertion order already tracks creation
	// time, so sorting is only a tie-breaker for imported data.
	recent := make([]Decision, len(snap.Decisions))
	copy(recent, snap.Decisions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentDecisionCap {
		recent = recent[:recentDecisionCap]
	}
	sum.RecentDecisions = recent

	for _, c := range snap.Conventions {
		if !c.Enforced {
			continue
		}
		sum.EnforcedConventions = append(sum.EnforcedConventions, c)
		if len(sum.EnforcedConventions) == enforcedConventionCap {
			break
		}
	}

	return sum
}

// FormatSummary renders the digest as markdown for the memory://summary
// resource and the memory_summary tool.
func FormatSummary(sum Summary) string {
	var b strings.Builder
	b.WriteString("# Project Memory Summary\n\n")

	fmt.Fprintf(&b, "**Decisions:** %d · **Conventions:** %d · **Notes:** %d · **Context keys:** %d · **Items:** %d\n\n",
		sum.Counts.Decisions, sum.Counts.Conventions, sum.Counts.Notes, sum.Counts.Context, sum.Counts.Items)
	fmt.Fprintf(&b, "Last modified: %s\n", sum.LastModified.Format(time.RFC3339))

	if len(sum.RecentDecisions) > 0 {
		b.WriteString("\n## Recent Decisions\n")
		for _, d := range sum.RecentDecisions {
			status := string(d.Status)
			if d.SupersededBy != "" {
				status += " by " + d.SupersededBy
			}
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", d.Title, status, snippet(d.Description))
		}
	}

	if len(sum.EnforcedConventions) > 0 {
		b.WriteString("\n## Enforced Conventions\n")
		for _, c := range sum.EnforcedConventions {
			fmt.Fprintf(&b, "- [%s] %s\n", c.Category, snippet(c.Rule))
		}
	}

	if len(sum.Context) > 0 {
		b.WriteString("\n## Project Context\n")
		for _, e := range sum.Context {
			fmt.Fprintf(&b, "- **%s** = %s\n", e.Key, snippet(e.Value))
		}
	}

	return b.String()
}
