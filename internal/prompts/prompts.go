// Package prompts implements MCP prompt handlers for the memory server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DecisionPrompt handles the decision-template MCP prompt.
// It walks the AI through capturing a well-formed decision record.
type DecisionPrompt struct{}

// NewDecisionPrompt creates a DecisionPrompt.
func NewDecisionPrompt() *DecisionPrompt {
	return &DecisionPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *DecisionPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("decision-template",
		mcp.WithPromptDescription(
			"Record an architectural decision with full context. "+
				"Guides you through title, description, rationale, and tags "+
				"so the decision stays useful months later.",
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("What the decision is about (e.g. 'database choice')"),
		),
	)
}

// Handle processes the decision-template prompt request.
func (p *DecisionPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := "this decision"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["topic"]; ok && v != "" {
			topic = v
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Record decision: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to record a project decision about %s.\n\n"+
						"Please:\n"+
						"1. Ask me what was decided (this becomes the title and description)\n"+
						"2. Ask me why — what alternatives were considered and what tipped the scales (rationale)\n"+
						"3. Suggest 2-3 tags based on the topic\n"+
						"4. Run `remember_decision` with the collected fields\n"+
						"5. If this replaces an earlier decision, run `update_decision_status` to mark the old one superseded",
					topic,
				)),
			},
		},
	}, nil
}

// ─── ConventionPrompt ───────────────────────────────────────────────────────

// ConventionPrompt handles the convention-template MCP prompt.
type ConventionPrompt struct{}

// NewConventionPrompt creates a ConventionPrompt.
func NewConventionPrompt() *ConventionPrompt {
	return &ConventionPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ConventionPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("convention-template",
		mcp.WithPromptDescription(
			"Capture a coding convention with concrete examples. "+
				"A rule without examples is a rule nobody follows.",
		),
	)
}

// Handle processes the convention-template prompt request.
func (p *ConventionPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Record a coding convention",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"I want to record a coding convention for this project.\n\n" +
						"Please:\n" +
						"1. Ask me for the category (naming, structure, testing, style, ...)\n" +
						"2. Ask me to state the rule in one or two sentences\n" +
						"3. Ask for at least one concrete code example showing the rule applied\n" +
						"4. Ask whether the rule is actively enforced (linted or reviewed) or just preferred\n" +
						"5. Run `add_convention` with the collected fields",
				),
			},
		},
	}, nil
}

// ─── ContextReviewPrompt ────────────────────────────────────────────────────

// ContextReviewPrompt handles the context-review MCP prompt.
// It drives a periodic sweep of stored context for stale entries.
type ContextReviewPrompt struct{}

// NewContextReviewPrompt creates a ContextReviewPrompt.
func NewContextReviewPrompt() *ContextReviewPrompt {
	return &ContextReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ContextReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("context-review",
		mcp.WithPromptDescription(
			"Review stored project context for stale or outdated entries. "+
				"Run this periodically — context that no longer reflects reality "+
				"is worse than no context at all.",
		),
	)
}

// Handle processes the context-review prompt request.
func (p *ContextReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Review project context",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `get_context` to fetch all stored project context.\n\n" +
						"Then:\n" +
						"1. Show me each entry with its key, value, and last update time\n" +
						"2. Flag entries that look stale (old timestamps, values that contradict recent decisions)\n" +
						"3. For each flagged entry, ask me whether to update it (`set_context`) or remove it (`delete_record` on the context collection)\n" +
						"4. Apply the changes I confirm",
				),
			},
		},
	}, nil
}

// ─── OnboardingPrompt ───────────────────────────────────────────────────────

// OnboardingPrompt handles the onboarding-guide MCP prompt.
// It assembles stored memory into a newcomer-friendly briefing.
type OnboardingPrompt struct{}

// NewOnboardingPrompt creates an OnboardingPrompt.
func NewOnboardingPrompt() *OnboardingPrompt {
	return &OnboardingPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *OnboardingPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("onboarding-guide",
		mcp.WithPromptDescription(
			"Generate an onboarding briefing for someone new to the project, "+
				"assembled from stored decisions, conventions, and context.",
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Optional area to emphasize (e.g. 'backend', 'testing')"),
		),
	)
}

// Handle processes the onboarding-guide prompt request.
func (p *OnboardingPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := ""
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["focus"]; ok && v != "" {
			focus = fmt.Sprintf("\n\nEmphasize anything related to: %s.", v)
		}
	}

	return &mcp.GetPromptResult{
		Description: "Project onboarding briefing",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `memory_summary`, then read the `memory://decisions`, "+
						"`memory://conventions`, and `memory://context` resources.\n\n"+
						"From those, write an onboarding briefing for a developer joining the project:\n"+
						"1. What the project is and its current state (from context)\n"+
						"2. The key active decisions and why they were made\n"+
						"3. The conventions they must follow, enforced ones first, with examples\n"+
						"4. Open questions or deprecated decisions they should know about"+
						focus,
				),
			},
		},
	}, nil
}
