package query_tools

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calq/internal/server"
	"github.com/teemow/calq/internal/strategy"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := strategy.NewResolver(strategy.NewRuleStrategy(), nil, logger)

	sc, err := server.NewServerContext(context.Background(), resolver, logger)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func queryRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

const sampleEvents = `[
	{"id":"e1","title":"Standup","start":"2025-04-16T10:00:00Z","end":"2025-04-16T10:30:00Z"},
	{"id":"e2","title":"Review","start":"2025-04-16T10:15:00Z","end":"2025-04-16T11:00:00Z","description":"Sprint review"}
]`

func TestRegisterQueryTools(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.1")
	sc := newTestServerContext(t)

	if err := RegisterQueryTools(s, sc); err != nil {
		t.Fatalf("RegisterQueryTools() error = %v", err)
	}
}

func TestHandleQuery_Overlap(t *testing.T) {
	sc := newTestServerContext(t)

	req := queryRequest(map[string]interface{}{
		"query":  "Do I have any overlapping meetings today?",
		"events": sampleEvents,
		"now":    "2025-04-16T08:00:00Z",
	})

	result, err := handleQuery(context.Background(), req, sc)
	if err != nil {
		t.Fatalf("handleQuery() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %+v", result)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Standup") || !strings.Contains(text, "Review") {
		t.Errorf("answer should mention both overlapping events, got %q", text)
	}
	if !strings.Contains(text, "Related events:") {
		t.Errorf("expected related events section, got %q", text)
	}
}

func TestHandleQuery_MissingQuery(t *testing.T) {
	sc := newTestServerContext(t)

	req := queryRequest(map[string]interface{}{
		"events": sampleEvents,
	})

	result, err := handleQuery(context.Background(), req, sc)
	if err != nil {
		t.Fatalf("handleQuery() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing query")
	}
}

func TestHandleQuery_InvalidEvents(t *testing.T) {
	sc := newTestServerContext(t)

	req := queryRequest(map[string]interface{}{
		"query":  "What meetings do I have today?",
		"events": "not json",
	})

	result, err := handleQuery(context.Background(), req, sc)
	if err != nil {
		t.Fatalf("handleQuery() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for invalid events payload")
	}
}

func TestHandleQuery_InvalidNow(t *testing.T) {
	sc := newTestServerContext(t)

	req := queryRequest(map[string]interface{}{
		"query":  "What meetings do I have today?",
		"events": sampleEvents,
		"now":    "yesterday-ish",
	})

	result, err := handleQuery(context.Background(), req, sc)
	if err != nil {
		t.Fatalf("handleQuery() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for invalid now value")
	}
}

func TestHandleQueryLive_MissingToken(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	sc := newTestServerContext(t)

	req := queryRequest(map[string]interface{}{
		"query":   "What meetings do I have today?",
		"account": "nosuchaccount",
	})

	result, err := handleQueryLive(context.Background(), req, sc)
	if err != nil {
		t.Fatalf("handleQueryLive() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result when no token exists for the account")
	}
}

func TestParseEvents(t *testing.T) {
	events, err := parseEvents(sampleEvents)
	if err != nil {
		t.Fatalf("parseEvents() error = %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "e1" || events[0].Title != "Standup" {
		t.Errorf("first event = %+v", events[0])
	}
	want := time.Date(2025, 4, 16, 10, 15, 0, 0, time.UTC)
	if !events[1].Start.Equal(want) {
		t.Errorf("second event start = %v, want %v", events[1].Start, want)
	}
	if events[1].Description != "Sprint review" {
		t.Errorf("second event description = %q", events[1].Description)
	}
}

func TestParseEvents_MissingID(t *testing.T) {
	events, err := parseEvents(`[{"title":"Standup","start":"2025-04-16T10:00:00Z","end":"2025-04-16T10:30:00Z"}]`)
	if err != nil {
		t.Fatalf("parseEvents() error = %v", err)
	}
	if events[0].ID != "event-0" {
		t.Errorf("ID = %q, want synthesized event-0", events[0].ID)
	}
}

func TestParseEvents_BadTimestamp(t *testing.T) {
	_, err := parseEvents(`[{"id":"e1","title":"Standup","start":"10am","end":"2025-04-16T10:30:00Z"}]`)
	if err == nil {
		t.Error("expected error for invalid start timestamp")
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	var sb strings.Builder
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}
