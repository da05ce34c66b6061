package memtools

import (
	"context"
	"fmt"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// RememberDecisionTool handles the remember_decision MCP tool.
type RememberDecisionTool struct {
	store *memory.Store
}

// NewRememberDecisionTool creates a RememberDecisionTool.
func NewRememberDecisionTool(store *memory.Store) *RememberDecisionTool {
	return &RememberDecisionTool{store: store}
}

// Definition returns the MCP tool definition for remember_decision.
func (t *RememberDecisionTool) Definition() mcp.Tool {
	return mcp.NewTool("remember_decision",
		mcp.WithDescription(
			"Store an architectural or design decision for future reference. "+
				"Use this to record technology choices, patterns, or any significant project direction.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short title for the decision"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Detailed description of what was decided"),
		),
		mcp.WithString("rationale",
			mcp.Description("Why this decision was made"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags for categorization (e.g. 'database, performance')"),
		),
	)
}

// Handle processes the remember_decision tool call.
func (t *RememberDecisionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	description := req.GetString("description", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}
	if description == "" {
		return mcp.NewToolResultError("'description' is required"), nil
	}

	d, err := t.store.AddDecision(memory.AddDecisionParams{
		Title:       title,
		Description: description,
		Rationale:   req.GetString("rationale", ""),
		Tags:        splitList(req.GetString("tags", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to record decision: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Decision recorded: %q (ID: %s)", d.Title, d.ID)), nil
}

// ─── UpdateDecisionStatusTool ───────────────────────────────────────────────

// UpdateDecisionStatusTool handles the update_decision_status MCP tool.
type UpdateDecisionStatusTool struct {
	store *memory.Store
}

// NewUpdateDecisionStatusTool creates an UpdateDecisionStatusTool.
func NewUpdateDecisionStatusTool(store *memory.Store) *UpdateDecisionStatusTool {
	return &UpdateDecisionStatusTool{store: store}
}

// Definition returns the MCP tool definition for update_decision_status.
func (t *UpdateDecisionStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("update_decision_status",
		mcp.WithDescription(
			"Change the lifecycle status of a recorded decision. "+
				"Marking a decision superseded requires the ID of the decision that replaces it.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("ID of the decision to update"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status: active, superseded, or deprecated"),
		),
		mcp.WithString("superseded_by",
			mcp.Description("ID of the replacing decision (required when status is superseded)"),
		),
	)
}

// Handle processes the update_decision_status tool call.
func (t *UpdateDecisionStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	status := req.GetString("status", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	if status == "" {
		return mcp.NewToolResultError("'status' is required"), nil
	}

	d, err := t.store.UpdateDecisionStatus(id, memory.DecisionStatus(status), req.GetString("superseded_by", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update decision: %v", err)), nil
	}

	msg := fmt.Sprintf("Decision %q is now %s", d.Title, d.Status)
	if d.SupersededBy != "" {
		msg += fmt.Sprintf(" (superseded by %s)", d.SupersededBy)
	}
	return mcp.NewToolResultText(msg), nil
}
