// Package query_tools provides MCP tools for answering free-text calendar
// questions. calendar_query answers against events supplied by the caller,
// calendar_query_live fetches the events from Google Calendar first.
package query_tools
