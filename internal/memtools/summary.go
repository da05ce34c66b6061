package memtools

import (
	"context"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// SummaryTool handles the memory_summary MCP tool.
type SummaryTool struct {
	store *memory.Store
}

// NewSummaryTool creates a SummaryTool.
func NewSummaryTool(store *memory.Store) *SummaryTool {
	return &SummaryTool{store: store}
}

// Definition returns the MCP tool definition for memory_summary.
func (t *SummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("memory_summary",
		mcp.WithDescription(
			"Get a compact overview of project memory: record counts per collection, "+
				"the most recent decisions, enforced conventions, and current context. "+
				"Use this at the start of a session to load project state.",
		),
	)
}

// Handle processes the memory_summary tool call.
func (t *SummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(memory.FormatSummary(t.store.Summarize())), nil
}
