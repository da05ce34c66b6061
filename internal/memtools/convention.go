package memtools

import (
	"context"
	"fmt"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// AddConventionTool handles the add_convention MCP tool.
type AddConventionTool struct {
	store *memory.Store
}

// NewAddConventionTool creates an AddConventionTool.
func NewAddConventionTool(store *memory.Store) *AddConventionTool {
	return &AddConventionTool{store: store}
}

// Definition returns the MCP tool definition for add_convention.
func (t *AddConventionTool) Definition() mcp.Tool {
	return mcp.NewTool("add_convention",
		mcp.WithDescription(
			"Record a coding convention or team rule. Conventions keep the codebase "+
				"consistent — include examples to make them actionable.",
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category: naming, structure, testing, style, etc."),
		),
		mcp.WithString("rule",
			mcp.Required(),
			mcp.Description("The rule itself — what to do and why"),
		),
		mcp.WithString("examples",
			mcp.Description("Comma-separated code examples demonstrating the convention"),
		),
		mcp.WithBoolean("enforced",
			mcp.Description("Whether the rule is actively enforced (default: false)"),
		),
	)
}

// Handle processes the add_convention tool call.
func (t *AddConventionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	rule := req.GetString("rule", "")
	if category == "" {
		return mcp.NewToolResultError("'category' is required"), nil
	}
	if rule == "" {
		return mcp.NewToolResultError("'rule' is required"), nil
	}

	c, err := t.store.AddConvention(memory.AddConventionParams{
		Category: category,
		Rule:     rule,
		Examples: splitList(req.GetString("examples", "")),
		Enforced: boolArg(req, "enforced", false),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record convention: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Convention recorded in category %q (ID: %s)", c.Category, c.ID)), nil
}
