package memtools

import (
	"context"
	"fmt"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// AddItemTool handles the add_item MCP tool.
type AddItemTool struct {
	store *memory.Store
}

// NewAddItemTool creates an AddItemTool.
func NewAddItemTool(store *memory.Store) *AddItemTool {
	return &AddItemTool{store: store}
}

// Definition returns the MCP tool definition for add_item.
func (t *AddItemTool) Definition() mcp.Tool {
	return mcp.NewTool("add_item",
		mcp.WithDescription(
			"Add a generic memory item — a snippet, PRD, pattern, config, or "+
				"troubleshooting entry — typed, tagged, and scoped to a project.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short descriptive title"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Full content/description"),
		),
		mcp.WithString("type",
			mcp.Description("Type of item: note, prd, snippet, pattern, config, troubleshooting (default: note)"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags for categorization"),
		),
		mcp.WithString("project",
			mcp.Description("Associated project name (default: general)"),
		),
	)
}

// Handle processes the add_item tool call.
func (t *AddItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	content := req.GetString("content", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}
	if content == "" {
		return mcp.NewToolResultError("'content' is required"), nil
	}

	it, err := t.store.AddItem(memory.AddItemParams{
		Title:   title,
		Content: content,
		Type:    req.GetString("type", ""),
		Tags:    splitList(req.GetString("tags", "")),
		Project: req.GetString("project", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add item: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Item %q created (ID: %s, type: %s, project: %s)",
		it.Title, it.ID, it.Type, it.Project)), nil
}

// ─── UpdateItemTool ─────────────────────────────────────────────────────────

// UpdateItemTool handles the update_item MCP tool.
type UpdateItemTool struct {
	store *memory.Store
}

// NewUpdateItemTool creates an UpdateItemTool.
func NewUpdateItemTool(store *memory.Store) *UpdateItemTool {
	return &UpdateItemTool{store: store}
}

// Definition returns the MCP tool definition for update_item.
func (t *UpdateItemTool) Definition() mcp.Tool {
	return mcp.NewTool("update_item",
		mcp.WithDescription("Update an existing memory item. Only the provided fields change."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("ID of the item to update"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("content",
			mcp.Description("New content"),
		),
		mcp.WithString("type",
			mcp.Description("New type"),
		),
		mcp.WithString("tags",
			mcp.Description("New comma-separated tag list (replaces existing tags)"),
		),
		mcp.WithString("project",
			mcp.Description("New project"),
		),
	)
}

// Handle processes the update_item tool call.
func (t *UpdateItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	var p memory.UpdateItemParams
	args := req.GetArguments()
	if v, ok := args["title"].(string); ok {
		p.Title = &v
	}
	if v, ok := args["content"].(string); ok {
		p.Content = &v
	}
	if v, ok := args["type"].(string); ok {
		p.Type = &v
	}
	if v, ok := args["tags"].(string); ok {
		tags := splitList(v)
		p.Tags = &tags
	}
	if v, ok := args["project"].(string); ok {
		p.Project = &v
	}

	it, err := t.store.UpdateItem(id, p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update item: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Item %q updated (ID: %s)", it.Title, it.ID)), nil
}

// ─── GetItemTool ────────────────────────────────────────────────────────────

// GetItemTool handles the get_item MCP tool.
type GetItemTool struct {
	store *memory.Store
}

// NewGetItemTool creates a GetItemTool.
func NewGetItemTool(store *memory.Store) *GetItemTool {
	return &GetItemTool{store: store}
}

// Definition returns the MCP tool definition for get_item.
func (t *GetItemTool) Definition() mcp.Tool {
	return mcp.NewTool("get_item",
		mcp.WithDescription("Retrieve a memory item by its ID, with full untruncated content."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("ID of the item to retrieve"),
		),
	)
}

// Handle processes the get_item tool call.
func (t *GetItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	it, err := t.store.GetItem(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get item: %v", err)), nil
	}
	return jsonResult(it)
}
