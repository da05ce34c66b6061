package memtools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dcastano/memvault/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Test helpers ---

// newTestStore opens a store backed by a file in a fresh temp dir.
func newTestStore(t *testing.T) *memory.Store {
	t.Helper()
	store, err := memory.Open(memory.Config{Path: filepath.Join(t.TempDir(), "memory.json")})
	if err != nil {
		t.Fatalf("setup: open store: %v", err)
	}
	return store
}

// makeReq builds a CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- RememberDecisionTool tests ---

func TestRememberDecisionTool_Definition(t *testing.T) {
	tool := NewRememberDecisionTool(newTestStore(t))
	def := tool.Definition()

	if def.Name != "remember_decision" {
		t.Errorf("name = %q, want remember_decision", def.Name)
	}
}

func TestRememberDecisionTool_Handle(t *testing.T) {
	store := newTestStore(t)
	tool := NewRememberDecisionTool(store)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"title":       "Use PostgreSQL",
		"description": "All persistent storage goes through PostgreSQL.",
		"rationale":   "ACID compliance required.",
		"tags":        "database, architecture",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "Use PostgreSQL") {
		t.Error("result should contain the decision title")
	}

	// Verify the record landed in the store with parsed tags.
	mem := store.Snapshot()
	if len(mem.Decisions) != 1 {
		t.Fatalf("decisions count = %d, want 1", len(mem.Decisions))
	}
	d := mem.Decisions[0]
	if len(d.Tags) != 2 || d.Tags[0] != "database" || d.Tags[1] != "architecture" {
		t.Errorf("tags = %v, want [database architecture]", d.Tags)
	}
	if !strings.Contains(text, d.ID) {
		t.Error("result should contain the assigned ID")
	}
}

func TestRememberDecisionTool_Handle_MissingTitle(t *testing.T) {
	tool := NewRememberDecisionTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"description": "no title given",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for missing title")
	}
}

func TestRememberDecisionTool_Handle_MissingDescription(t *testing.T) {
	tool := NewRememberDecisionTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"title": "no description given",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for missing description")
	}
}

// --- UpdateDecisionStatusTool tests ---

func TestUpdateDecisionStatusTool_Handle(t *testing.T) {
	store := newTestStore(t)
	old, err := store.AddDecision(memory.AddDecisionParams{Title: "Use REST", Description: "REST API"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	repl, err := store.AddDecision(memory.AddDecisionParams{Title: "Use gRPC", Description: "gRPC API"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	tool := NewUpdateDecisionStatusTool(store)
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"id":            old.ID,
		"status":        "superseded",
		"superseded_by": repl.ID,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "superseded") {
		t.Error("result should mention the new status")
	}
	if !strings.Contains(text, repl.ID) {
		t.Error("result should mention the replacing decision ID")
	}
}

func TestUpdateDecisionStatusTool_Handle_UnknownID(t *testing.T) {
	tool := NewUpdateDecisionStatusTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"id":     "missing-id",
		"status": "deprecated",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for unknown decision ID")
	}
}

// --- AddConventionTool tests ---

func TestAddConventionTool_Handle(t *testing.T) {
	store := newTestStore(t)
	tool := NewAddConventionTool(store)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"category": "testing",
		"rule":     "Table-driven tests for validation logic",
		"examples": "func TestValidate(t *testing.T)",
		"enforced": true,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	mem := store.Snapshot()
	if len(mem.Conventions) != 1 {
		t.Fatalf("conventions count = %d, want 1", len(mem.Conventions))
	}
	if !mem.Conventions[0].Enforced {
		t.Error("convention should be enforced")
	}
}

func TestAddConventionTool_Handle_MissingRule(t *testing.T) {
	tool := NewAddConventionTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"category": "style",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for missing rule")
	}
}

// --- AddNoteTool tests ---

func TestAddNoteTool_Handle(t *testing.T) {
	store := newTestStore(t)
	tool := NewAddNoteTool(store)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"title":   "Deploy window",
		"content": "Deploys happen Tuesday mornings.",
		"tags":    "ops",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if len(store.Snapshot().Notes) != 1 {
		t.Fatal("note should be stored")
	}
}

// --- AddItemTool / UpdateItemTool / GetItemTool tests ---

func TestAddItemTool_Handle_Defaults(t *testing.T) {
	store := newTestStore(t)
	tool := NewAddItemTool(store)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"title":   "Retry helper",
		"content": "Exponential backoff wrapper.",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	mem := store.Snapshot()
	if len(mem.Items) != 1 {
		t.Fatalf("items count = %d, want 1", len(mem.Items))
	}
	it := mem.Items[0]
	if it.Type != "note" {
		t.Errorf("type = %q, want note", it.Type)
	}
	if it.Project != "general" {
		t.Errorf("project = %q, want general", it.Project)
	}
}

func TestUpdateItemTool_Handle_PartialUpdate(t *testing.T) {
	store := newTestStore(t)
	it, err := store.AddItem(memory.AddItemParams{Title: "Old title", Content: "body", Type: "snippet"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	tool := NewUpdateItemTool(store)
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"id":    it.ID,
		"title": "New title",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	got, err := store.GetItem(it.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Title != "New title" {
		t.Errorf("title = %q, want New title", got.Title)
	}
	if got.Type != "snippet" {
		t.Errorf("type = %q, want snippet (untouched)", got.Type)
	}
}

func TestGetItemTool_Handle(t *testing.T) {
	store := newTestStore(t)
	it, err := store.AddItem(memory.AddItemParams{Title: "Config layout", Content: "Use one file per env."})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	tool := NewGetItemTool(store)
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"id": it.ID}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "Config layout") || !strings.Contains(text, "Use one file per env.") {
		t.Error("result should contain full item content")
	}
}

func TestGetItemTool_Handle_UnknownID(t *testing.T) {
	tool := NewGetItemTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"id": "nope"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for unknown item ID")
	}
}

// --- SetContextTool / GetContextTool tests ---

func TestSetContextTool_Handle_Overwrite(t *testing.T) {
	store := newTestStore(t)
	tool := NewSetContextTool(store)

	for _, v := range []string{"staging", "production"} {
		result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
			"key":   "deploy_target",
			"value": v,
		}))
		if err != nil {
			t.Fatalf("Handle failed: %v", err)
		}
		if isErrorResult(result) {
			t.Fatalf("expected success, got error: %s", getResultText(result))
		}
	}

	mem := store.Snapshot()
	if len(mem.Context) != 1 {
		t.Fatalf("context count = %d, want 1", len(mem.Context))
	}
	if mem.Context[0].Value != "production" {
		t.Errorf("value = %q, want production", mem.Context[0].Value)
	}
}

func TestGetContextTool_Handle_AllAndByKey(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.UpsertContext("primary_db", "postgresql 16", ""); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := store.UpsertContext("deploy_target", "fly.io", ""); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tool := NewGetContextTool(store)

	// All entries.
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "primary_db") || !strings.Contains(text, "deploy_target") {
		t.Error("result should list all context keys")
	}

	// Single entry.
	result, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{"key": "primary_db"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text = getResultText(result)
	if !strings.Contains(text, "postgresql 16") {
		t.Error("result should contain the value for the requested key")
	}
	if strings.Contains(text, "deploy_target") {
		t.Error("single-key result should not include other keys")
	}
}

func TestGetContextTool_Handle_UnknownKey(t *testing.T) {
	tool := NewGetContextTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"key": "missing"}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for unknown context key")
	}
}

// --- SearchTool tests ---

func TestSearchTool_Handle(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.AddDecision(memory.AddDecisionParams{
		Title:       "Use PostgreSQL",
		Description: "Primary datastore.",
		Tags:        []string{"database"},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := store.AddNote(memory.AddNoteParams{Title: "Unrelated", Content: "cache warming"}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tool := NewSearchTool(store)
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"term": "postgres",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "Use PostgreSQL") {
		t.Error("result should contain the matching decision")
	}
	if strings.Contains(text, "Unrelated") {
		t.Error("result should not contain non-matching records")
	}
}

func TestSearchTool_Handle_NoMatches(t *testing.T) {
	tool := NewSearchTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"term": "zebra",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatal("empty search results are not an error")
	}
	if !strings.Contains(getResultText(result), "No matches") {
		t.Error("result should say no matches")
	}
}

func TestSearchTool_Handle_InvalidScope(t *testing.T) {
	tool := NewSearchTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"term":  "x",
		"scope": "widgets",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for invalid scope")
	}
}

func TestSearchTool_Handle_Limit(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := store.AddNote(memory.AddNoteParams{Title: "shared term note", Content: "body"}); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	tool := NewSearchTool(store)
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"term":  "shared term",
		"limit": float64(2),
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := getResultText(result)
	if !strings.HasPrefix(text, "2 match(es)") {
		t.Errorf("result should report 2 matches, got: %s", text)
	}
}

// --- DeleteTool tests ---

func TestDeleteTool_Handle(t *testing.T) {
	store := newTestStore(t)
	n, err := store.AddNote(memory.AddNoteParams{Title: "Scrap this", Content: "temp"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	tool := NewDeleteTool(store)
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"collection": "notes",
		"id":         n.ID,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "Deleted") {
		t.Error("result should confirm deletion")
	}
	if len(store.Snapshot().Notes) != 0 {
		t.Error("note should be gone from the store")
	}
}

func TestDeleteTool_Handle_MissingRecord(t *testing.T) {
	tool := NewDeleteTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"collection": "notes",
		"id":         "ghost",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatal("deleting a missing record is not an error")
	}
	if !strings.Contains(getResultText(result), "No record") {
		t.Error("result should report the record was not found")
	}
}

func TestDeleteTool_Handle_UnknownCollection(t *testing.T) {
	tool := NewDeleteTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"collection": "widgets",
		"id":         "x",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for unknown collection")
	}
}

// --- SummaryTool tests ---

func TestSummaryTool_Handle(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.AddDecision(memory.AddDecisionParams{Title: "Use PostgreSQL", Description: "datastore"}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := store.AddConvention(memory.AddConventionParams{Category: "testing", Rule: "table tests", Enforced: true}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := store.UpsertContext("primary_db", "postgresql 16", ""); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tool := NewSummaryTool(store)
	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	for _, want := range []string{"Use PostgreSQL", "table tests", "primary_db"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary should contain %q", want)
		}
	}
}

func TestSummaryTool_Handle_EmptyStore(t *testing.T) {
	tool := NewSummaryTool(newTestStore(t))

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatal("summary of empty store should succeed")
	}
}
