// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the health timeline and quick-note journal as tools for LLM
// integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/vitalog/internal/apperr"
	"github.com/starford/vitalog/internal/dataset"
	"github.com/starford/vitalog/internal/journal"
	"github.com/starford/vitalog/internal/timeline"
)

// Server wraps the MCP server with Vitalog tools.
type Server struct {
	mcp  *server.MCPServer
	jrnl *journal.Journal
	tl   *timeline.Service
	data *dataset.Store
}

// New creates a new MCP server with all Vitalog tools registered.
func New(jrnl *journal.Journal, tl *timeline.Service, data *dataset.Store) *Server {
	s := &Server{jrnl: jrnl, tl: tl, data: data}

	s.mcp = server.NewMCPServer(
		"Vitalog",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_timeline",
		mcp.WithDescription("Search the health timeline. Returns events grouped by date, newest first."),
		mcp.WithString("query", mcp.Description("Case-insensitive substring matched against title, description, provider and location")),
		mcp.WithString("types", mcp.Description("Comma-separated event kinds to keep (visit, lab, emergency, medication, note); empty keeps all")),
		mcp.WithString("start", mcp.Description("Inclusive start date, YYYY-MM-DD")),
		mcp.WithString("end", mcp.Description("Inclusive end date, YYYY-MM-DD")),
	), s.searchTimeline)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all quick notes, newest first."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Add a quick note to the journal. The note is timestamped now and appears on the timeline immediately."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Free-text note body")),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a quick note by id. Deleting an unknown id is a no-op."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id, e.g. note-<uuid>")),
	), s.deleteNote)

	s.mcp.AddTool(mcp.NewTool("get_insights",
		mcp.WithDescription("Return the raw insights dataset document (timeline events, diagnoses, medications, vitals, wearable metrics)."),
	), s.getInsights)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var c timeline.Criteria
	if q, err := req.RequireString("query"); err == nil {
		c.SearchQuery = q
	}
	if kinds, err := req.RequireString("types"); err == nil && kinds != "" {
		c.EventTypes = strings.Split(kinds, ",")
	}
	if start, err := req.RequireString("start"); err == nil {
		c.DateRange.Start = start
	}
	if end, err := req.RequireString("end"); err == nil {
		c.DateRange.End = end
	}

	view := s.tl.Build(c)
	out, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.jrnl.Notes(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.jrnl.Add(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if note == nil {
		return mcp.NewToolResultError(apperr.ErrEmptyNote.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", note.ID)), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.jrnl.Delete(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) getInsights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, _ := s.data.Raw()
	return mcp.NewToolResultText(string(raw)), nil
}
