package memtools

import (
	"context"
	"fmt"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// AddNoteTool handles the add_note MCP tool.
type AddNoteTool struct {
	store *memory.Store
}

// NewAddNoteTool creates an AddNoteTool.
func NewAddNoteTool(store *memory.Store) *AddNoteTool {
	return &AddNoteTool{store: store}
}

// Definition returns the MCP tool definition for add_note.
func (t *AddNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("add_note",
		mcp.WithDescription(
			"Add a general note to project memory. Notes capture context, meeting "+
				"outcomes, research findings — anything that isn't a decision or convention.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title"),
		),
		mcp.WithString("content",
			mcp.Description("Note content (markdown supported)"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags for organization"),
		),
	)
}

// Handle processes the add_note tool call.
func (t *AddNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	n, err := t.store.AddNote(memory.AddNoteParams{
		Title:   title,
		Content: req.GetString("content", ""),
		Tags:    splitList(req.GetString("tags", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save note: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Note saved: %q (ID: %s)", n.Title, n.ID)), nil
}
