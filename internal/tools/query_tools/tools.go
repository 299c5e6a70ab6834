package query_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/calq/internal/calendar"
	"github.com/teemow/calq/internal/engine"
	"github.com/teemow/calq/internal/google"
	"github.com/teemow/calq/internal/instrumentation"
	"github.com/teemow/calq/internal/server"
	"github.com/teemow/calq/internal/tools/common"
)

// defaultLiveWindow is how far ahead calendar_query_live looks when the
// caller gives no explicit range.
const defaultLiveWindow = 7 * 24 * time.Hour

// eventPayload is the wire form of an event in the calendar_query events
// argument. Start and end are RFC3339 timestamps.
type eventPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	AllDay      bool   `json:"allDay,omitempty"`
	MeetingLink string `json:"meetingLink,omitempty"`
}

// RegisterQueryTools registers the calendar query tools with the MCP server
func RegisterQueryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	queryTool := mcp.NewTool("calendar_query",
		mcp.WithDescription("Answer a free-text question about a set of calendar events (overlaps, free slots, agendas, people, searches)"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The question to answer, e.g. 'Do I have any overlapping meetings today?'"),
		),
		mcp.WithString("events",
			mcp.Required(),
			mcp.Description(`JSON array of events: [{"id":"e1","title":"Standup","start":"2025-01-15T10:00:00Z","end":"2025-01-15T10:30:00Z"}]`),
		),
		mcp.WithString("now",
			mcp.Description("Reference time for 'today'/'tomorrow' resolution (RFC3339). Defaults to the current time."),
		),
	)

	s.AddTool(queryTool, common.InstrumentedToolHandler("calendar_query", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQuery(ctx, request, sc)
		}))

	liveTool := mcp.NewTool("calendar_query_live",
		mcp.WithDescription("Answer a free-text question against events fetched live from Google Calendar"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The question to answer"),
		),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (use 'primary' for primary calendar)"),
		),
		mcp.WithString("timeMin",
			mcp.Description("Start of the fetch window (RFC3339). Defaults to the start of today."),
		),
		mcp.WithString("timeMax",
			mcp.Description("End of the fetch window (RFC3339). Defaults to seven days from now."),
		),
	)

	s.AddTool(liveTool, common.InstrumentedToolHandlerWithService(
		"calendar_query_live", instrumentation.ServiceCalendar, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQueryLive(ctx, request, sc)
		}))

	return nil
}

func handleQuery(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, ok := args["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	eventsJSON, ok := args["events"].(string)
	if !ok || eventsJSON == "" {
		return mcp.NewToolResultError("events is required"), nil
	}

	events, err := parseEvents(eventsJSON)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid events payload: %v", err)), nil
	}

	now := time.Now()
	if nowStr, ok := args["now"].(string); ok && nowStr != "" {
		parsed, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid now format: %v", err)), nil
		}
		now = parsed
	}

	return answerQuery(ctx, sc, query, events, now)
}

func handleQueryLive(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, ok := args["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	account := common.GetAccountFromArgs(ctx, args)

	calendarID := "primary"
	if calIDVal, ok := args["calendarId"].(string); ok && calIDVal != "" {
		calendarID = calIDVal
	}

	now := time.Now()
	timeMin := now.Truncate(24 * time.Hour)
	if minStr, ok := args["timeMin"].(string); ok && minStr != "" {
		parsed, err := time.Parse(time.RFC3339, minStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMin format: %v", err)), nil
		}
		timeMin = parsed
	}

	timeMax := now.Add(defaultLiveWindow)
	if maxStr, ok := args["timeMax"].(string); ok && maxStr != "" {
		parsed, err := time.Parse(time.RFC3339, maxStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMax format: %v", err)), nil
		}
		timeMax = parsed
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := client.ListEvents(calendarID, timeMin, timeMax)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	return answerQuery(ctx, sc, query, events, now)
}

// answerQuery resolves the query through the configured strategies and
// formats the result, recording query metrics along the way.
func answerQuery(ctx context.Context, sc *server.ServerContext, query string, events []engine.Event, now time.Time) (*mcp.CallToolResult, error) {
	start := time.Now()
	intent := engine.Classify(query)

	spanCtx, span := instrumentation.StartQuerySpan(ctx,
		sc.Resolver().PrimaryName(),
		attribute.String(instrumentation.SpanAttrIntent, string(intent)),
	)
	result, strategyName, err := sc.Resolver().Answer(spanCtx, query, events, now)
	if err != nil {
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	span.End()

	if metrics := sc.Metrics(); metrics != nil {
		metrics.RecordQuery(ctx, string(intent), strategyName, instrumentation.StatusLabel(err), time.Since(start))
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to answer query: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(result.Answer)
	if len(result.RelatedEvents) > 0 {
		sb.WriteString("\n\nRelated events:\n")
		for _, e := range result.RelatedEvents {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", e.Title, e.ID))
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func parseEvents(payload string) ([]engine.Event, error) {
	var raw []eventPayload
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	events := make([]engine.Event, 0, len(raw))
	for i, p := range raw {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("event %d: invalid start: %w", i, err)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("event %d: invalid end: %w", i, err)
		}

		id := p.ID
		if id == "" {
			id = fmt.Sprintf("event-%d", i)
		}

		events = append(events, engine.Event{
			ID:          id,
			Title:       p.Title,
			Start:       start,
			End:         end,
			Location:    p.Location,
			Description: p.Description,
			AllDay:      p.AllDay,
			MeetingLink: p.MeetingLink,
		})
	}

	return events, nil
}

// getCalendarClient retrieves or creates a calendar client for the specified account
func getCalendarClient(ctx context.Context, account string, sc *server.ServerContext) (*calendar.Client, error) {
	client := sc.CalendarClientForAccount(account)
	if client != nil {
		return client, nil
	}

	if !calendar.HasTokenForAccount(account) {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}

	client, err := calendar.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
	}
	sc.SetCalendarClientForAccount(account, client)
	return client, nil
}
