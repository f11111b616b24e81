package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/vitalog/internal/journal"
	"github.com/starford/vitalog/internal/testutil"
	"github.com/starford/vitalog/internal/timeline"
)

func testServer(t *testing.T) (*Server, *journal.Journal) {
	t.Helper()

	prefs := testutil.MemStore(t)
	data := testutil.Dataset(t, testutil.SampleInsights)
	jrnl := journal.New(prefs)
	tl := timeline.NewService(data, jrnl)
	return New(jrnl, tl, data), jrnl
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so the handler
	// functions are invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_timeline":
		result, err = srv.searchTimeline(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "add_note":
		result, err = srv.addNote(ctx, req)
	case "delete_note":
		result, err = srv.deleteNote(ctx, req)
	case "get_insights":
		result, err = srv.getInsights(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestAddAndListNotes(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "add_note", map[string]interface{}{
		"text": "Felt short of breath climbing stairs",
	})
	text := resultText(r)
	if !strings.HasPrefix(text, "created: note-") {
		t.Errorf("add result = %q", text)
	}

	r = callTool(t, srv, "list_notes", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Felt short of breath climbing stairs") {
		t.Errorf("list result = %q", resultText(r))
	}
}

func TestAddNoteEmptyText(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "add_note", map[string]interface{}{"text": "   "})
	if !r.IsError {
		t.Fatal("expected error result for whitespace-only note")
	}
	if resultText(r) != "note text is empty" {
		t.Errorf("error text = %q", resultText(r))
	}

	r = callTool(t, srv, "add_note", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error result for missing text argument")
	}
}

func TestDeleteNote(t *testing.T) {
	srv, jrnl := testServer(t)
	note, err := jrnl.Add("temporary")
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "delete_note", map[string]interface{}{"id": note.ID})
	if resultText(r) != "deleted: "+note.ID {
		t.Errorf("delete result = %q", resultText(r))
	}
	if len(jrnl.Notes()) != 0 {
		t.Error("note still present after delete")
	}

	// Unknown id is a no-op, not an error.
	r = callTool(t, srv, "delete_note", map[string]interface{}{"id": "note-unknown"})
	if r.IsError {
		t.Errorf("unknown id should not error: %q", resultText(r))
	}
}

func TestSearchTimeline(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "search_timeline", map[string]interface{}{"query": "chest"})
	text := resultText(r)
	if !strings.Contains(text, "ER Visit - Chest Pain") {
		t.Errorf("search result missing match: %q", text)
	}
	if strings.Contains(text, "Quarterly Bloodwork") {
		t.Errorf("search result contains non-match: %q", text)
	}

	r = callTool(t, srv, "search_timeline", map[string]interface{}{
		"types": "lab",
		"start": "2024-02-01",
		"end":   "2024-03-01",
	})
	text = resultText(r)
	if !strings.Contains(text, "Quarterly Bloodwork") {
		t.Errorf("filtered search missing lab event: %q", text)
	}
}

func TestGetInsights(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_insights", map[string]interface{}{})
	if resultText(r) != testutil.SampleInsights {
		t.Error("insights document not returned verbatim")
	}
}
