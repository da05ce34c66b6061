// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it opens the memory store and injects it
// into the tools, prompts, and resources that depend on it. No business
// logic lives here — only wiring.
package server

import (
	"fmt"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/dcastano/memvault/internal/memtools"
	"github.com/dcastano/memvault/internal/prompts"
	"github.com/dcastano/memvault/internal/resources"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
func New() (*server.MCPServer, error) {
	store, err := memory.Open(memory.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("server: opening memory store: %w", err)
	}
	return NewWithStore(store), nil
}

// NewWithStore builds the server around an already-open store.
// Split out so tests can wire a temp-dir store.
func NewWithStore(store *memory.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"memvault",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	rememberDecision := memtools.NewRememberDecisionTool(store)
	s.AddTool(rememberDecision.Definition(), rememberDecision.Handle)

	updateStatus := memtools.NewUpdateDecisionStatusTool(store)
	s.AddTool(updateStatus.Definition(), updateStatus.Handle)

	addConvention := memtools.NewAddConventionTool(store)
	s.AddTool(addConvention.Definition(), addConvention.Handle)

	addNote := memtools.NewAddNoteTool(store)
	s.AddTool(addNote.Definition(), addNote.Handle)

	addItem := memtools.NewAddItemTool(store)
	s.AddTool(addItem.Definition(), addItem.Handle)

	updateItem := memtools.NewUpdateItemTool(store)
	s.AddTool(updateItem.Definition(), updateItem.Handle)

	getItem := memtools.NewGetItemTool(store)
	s.AddTool(getItem.Definition(), getItem.Handle)

	setContext := memtools.NewSetContextTool(store)
	s.AddTool(setContext.Definition(), setContext.Handle)

	getContext := memtools.NewGetContextTool(store)
	s.AddTool(getContext.Definition(), getContext.Handle)

	search := memtools.NewSearchTool(store)
	s.AddTool(search.Definition(), search.Handle)

	deleteRecord := memtools.NewDeleteTool(store)
	s.AddTool(deleteRecord.Definition(), deleteRecord.Handle)

	summary := memtools.NewSummaryTool(store)
	s.AddTool(summary.Definition(), summary.Handle)

	// --- Register prompts ---

	decisionPrompt := prompts.NewDecisionPrompt()
	s.AddPrompt(decisionPrompt.Definition(), decisionPrompt.Handle)

	conventionPrompt := prompts.NewConventionPrompt()
	s.AddPrompt(conventionPrompt.Definition(), conventionPrompt.Handle)

	contextReview := prompts.NewContextReviewPrompt()
	s.AddPrompt(contextReview.Definition(), contextReview.Handle)

	onboarding := prompts.NewOnboardingPrompt()
	s.AddPrompt(onboarding.Definition(), onboarding.Handle)

	// --- Register resources ---

	rh := resources.NewHandler(store)
	s.AddResource(rh.DecisionsResource(), rh.HandleDecisions)
	s.AddResource(rh.ConventionsResource(), rh.HandleConventions)
	s.AddResource(rh.NotesResource(), rh.HandleNotes)
	s.AddResource(rh.ContextResource(), rh.HandleContext)
	s.AddResource(rh.ItemsResource(), rh.HandleItems)
	s.AddResource(rh.SummaryResource(), rh.HandleSummary)
	s.AddResourceTemplate(rh.DecisionTemplate(), rh.HandleDecision)
	s.AddResourceTemplate(rh.NoteTemplate(), rh.HandleNote)

	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to use the memory server.
func serverInstructions() string {
	return `You have access to memvault, a persistent project-memory MCP server.
Memory survives across sessions — use it so project knowledge is never lost.

## WHEN TO WRITE MEMORY

Proactively store memory when the user:
- Makes or confirms an architectural/technology choice -> remember_decision
- States a rule about how code should be written -> add_convention
- Shares project facts worth keeping (environments, versions, endpoints) -> set_context
- Produces anything reusable: snippets, PRDs, patterns, troubleshooting steps -> add_item
- Mentions context, meeting outcomes, or findings with no better home -> add_note

When a new decision replaces an old one, record the new decision first,
then mark the old one superseded with update_decision_status.

## WHEN TO READ MEMORY

- At the START of a session: call memory_summary to load project state
- Before proposing a technology or pattern: search_memory for prior decisions
  so you do not contradict what the team already chose
- When asked "how do we do X here": search_memory with scope=conventions

## GROUND RULES

- Never invent memory contents — only report what the tools return
- An empty search result means nothing is stored; say so and offer to record
- Keep titles short and searchable; put detail in descriptions and content
- Use tags consistently so later searches can filter`
}
