// Package resources implements MCP resource handlers for the memory store.
//
// Resources provide read-only views of stored memory that the host can
// consume for context. They use URI-based addressing (memory://...)
// following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages the memory:// resource endpoints.
type Handler struct {
	store *memory.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store *memory.Store) *Handler {
	return &Handler{store: store}
}

// ─── Collection resources ───────────────────────────────────────────────────

// DecisionsResource returns the MCP resource definition for all decisions.
func (h *Handler) DecisionsResource() mcp.Resource {
	return mcp.NewResource(
		"memory://decisions",
		"Project Decisions",
		mcp.WithResourceDescription("All recorded architectural and design decisions"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleDecisions returns every decision as JSON.
func (h *Handler) HandleDecisions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.store.Snapshot().Decisions)
}

// ConventionsResource returns the MCP resource definition for all conventions.
func (h *Handler) ConventionsResource() mcp.Resource {
	return mcp.NewResource(
		"memory://conventions",
		"Coding Conventions",
		mcp.WithResourceDescription("All recorded coding conventions and team rules"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleConventions returns every convention as JSON.
func (h *Handler) HandleConventions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.store.Snapshot().Conventions)
}

// NotesResource returns the MCP resource definition for all notes.
func (h *Handler) NotesResource() mcp.Resource {
	return mcp.NewResource(
		"memory://notes",
		"Project Notes",
		mcp.WithResourceDescription("All recorded project notes"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleNotes returns every note as JSON.
func (h *Handler) HandleNotes(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.store.Snapshot().Notes)
}

// ContextResource returns the MCP resource definition for project context.
func (h *Handler) ContextResource() mcp.Resource {
	return mcp.NewResource(
		"memory://context",
		"Project Context",
		mcp.WithResourceDescription("Current project context key-value pairs"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleContext returns every context entry as JSON.
func (h *Handler) HandleContext(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.store.Snapshot().Context)
}

// ItemsResource returns the MCP resource definition for generic items.
func (h *Handler) ItemsResource() mcp.Resource {
	return mcp.NewResource(
		"memory://items",
		"Memory Items",
		mcp.WithResourceDescription("All generic memory items (snippets, PRDs, patterns, configs)"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleItems returns every item as JSON.
func (h *Handler) HandleItems(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.store.Snapshot().Items)
}

// SummaryResource returns the MCP resource definition for the memory digest.
func (h *Handler) SummaryResource() mcp.Resource {
	return mcp.NewResource(
		"memory://summary",
		"Memory Summary",
		mcp.WithResourceDescription("Markdown digest: counts, recent decisions, enforced conventions, context"),
		mcp.WithMIMEType("text/markdown"),
	)
}

// HandleSummary returns the markdown summary of the store.
func (h *Handler) HandleSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     memory.FormatSummary(h.store.Summarize()),
		},
	}, nil
}

// ─── By-ID resources ────────────────────────────────────────────────────────

// DecisionTemplate returns the resource template for a single decision.
func (h *Handler) DecisionTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"memory://decisions/{id}",
		"Decision by ID",
		mcp.WithTemplateDescription("A single recorded decision, looked up by its ID"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleDecision returns one decision by the ID embedded in the URI.
func (h *Handler) HandleDecision(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(req.Params.URI, "memory://decisions/")
	d, err := h.store.GetDecision(id)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, d)
}

// NoteTemplate returns the resource template for a single note.
func (h *Handler) NoteTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"memory://notes/{id}",
		"Note by ID",
		mcp.WithTemplateDescription("A single note, looked up by its ID"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleNote returns one note by the ID embedded in the URI.
func (h *Handler) HandleNote(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(req.Params.URI, "memory://notes/")
	n, err := h.store.GetNote(id)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, n)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// jsonResource wraps v as an indented JSON resource payload.
func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("resources: marshaling %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
