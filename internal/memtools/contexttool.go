package memtools

import (
	"context"
	"fmt"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// SetContextTool handles the set_context MCP tool.
type SetContextTool struct {
	store *memory.Store
}

// NewSetContextTool creates a SetContextTool.
func NewSetContextTool(store *memory.Store) *SetContextTool {
	return &SetContextTool{store: store}
}

// Definition returns the MCP tool definition for set_context.
func (t *SetContextTool) Definition() mcp.Tool {
	return mcp.NewTool("set_context",
		mcp.WithDescription(
			"Store a key-value pair in project context. Writing an existing key "+
				"replaces its value — context keys are unique.",
		),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Context key (e.g. 'deploy_target')"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("Context value"),
		),
		mcp.WithString("description",
			mcp.Description("What this key means"),
		),
	)
}

// Handle processes the set_context tool call.
func (t *SetContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := req.GetString("key", "")
	if key == "" {
		return mcp.NewToolResultError("'key' is required"), nil
	}

	e, err := t.store.UpsertContext(key, req.GetString("value", ""), req.GetString("description", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set context: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Context set: %s = %s", e.Key, e.Value)), nil
}

// ─── GetContextTool ─────────────────────────────────────────────────────────

// GetContextTool handles the get_context MCP tool.
type GetContextTool struct {
	store *memory.Store
}

// NewGetContextTool creates a GetContextTool.
func NewGetContextTool(store *memory.Store) *GetContextTool {
	return &GetContextTool{store: store}
}

// Definition returns the MCP tool definition for get_context.
func (t *GetContextTool) Definition() mcp.Tool {
	return mcp.NewTool("get_context",
		mcp.WithDescription("Retrieve project context: one entry by key, or all entries when key is omitted."),
		mcp.WithString("key",
			mcp.Description("Specific key to retrieve (empty for all)"),
		),
	)
}

// Handle processes the get_context tool call.
func (t *GetContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := req.GetString("key", "")

	if key == "" {
		return jsonResult(t.store.Snapshot().Context)
	}

	e, err := t.store.GetContext(key)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get context: %v", err)), nil
	}
	return jsonResult(e)
}
