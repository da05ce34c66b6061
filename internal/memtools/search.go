package memtools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultSearchLimit caps search responses unless the caller asks for more.
const defaultSearchLimit = 20

// SearchTool handles the search_memory MCP tool.
type SearchTool struct {
	store *memory.Store
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(store *memory.Store) *SearchTool {
	return &SearchTool{store: store}
}

// Definition returns the MCP tool definition for search_memory.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_memory",
		mcp.WithDescription(
			"Search project memory by keyword with optional filters. Matching is "+
				"case-insensitive substring over titles, descriptions, content, rules, and "+
				"values, plus exact tag match. An empty result means nothing matched — "+
				"try broader terms or drop filters.",
		),
		mcp.WithString("term",
			mcp.Description("Keyword to search for (may be empty when using filters)"),
		),
		mcp.WithString("scope",
			mcp.Description("Collection to search: decisions, conventions, notes, context, items, or all (default: all)"),
		),
		mcp.WithString("tag",
			mcp.Description("Filter by exact tag"),
		),
		mcp.WithString("type",
			mcp.Description("Filter items by type"),
		),
		mcp.WithString("project",
			mcp.Description("Filter items by project"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum results to return (default: %d)", defaultSearchLimit)),
		),
	)
}

// Handle processes the search_memory tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	matches, err := t.store.Search(req.GetString("term", ""), memory.SearchOptions{
		Scope:   req.GetString("scope", memory.ScopeAll),
		Tag:     req.GetString("tag", ""),
		Type:    req.GetString("type", ""),
		Project: req.GetString("project", ""),
		Limit:   intArg(req, "limit", defaultSearchLimit),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText("No matches."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d match(es):\n\n", len(matches))
	for _, m := range matches {
		fmt.Fprintf(&b, "- [%s] %s (%s)", m.Collection, m.Title, m.ID)
		if m.Snippet != "" {
			fmt.Fprintf(&b, ": %s", m.Snippet)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
