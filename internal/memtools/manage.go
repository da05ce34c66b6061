package memtools

import (
	"context"
	"fmt"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// DeleteTool handles the delete_record MCP tool.
type DeleteTool struct {
	store *memory.Store
}

// NewDeleteTool creates a DeleteTool.
func NewDeleteTool(store *memory.Store) *DeleteTool {
	return &DeleteTool{store: store}
}

// Definition returns the MCP tool definition for delete_record.
func (t *DeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_record",
		mcp.WithDescription(
			"Delete a record from project memory by collection and ID. For the context "+
				"collection, pass the context key instead of an ID. Deleting a record that "+
				"does not exist is not an error.",
		),
		mcp.WithString("collection",
			mcp.Required(),
			mcp.Description("Collection to delete from: decisions, conventions, notes, context, or items"),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("ID of the record (or context key)"),
		),
	)
}

// Handle processes the delete_record tool call.
func (t *DeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collection := req.GetString("collection", "")
	if collection == "" {
		return mcp.NewToolResultError("collection is required"), nil
	}
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	removed, err := t.store.Delete(memory.Collection(collection), id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete record: %v", err)), nil
	}
	if !removed {
		return mcp.NewToolResultText(fmt.Sprintf("No record %q in %s.", id, collection)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted %q from %s.", id, collection)), nil
}
