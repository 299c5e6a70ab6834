// Package cmd implements the command-line interface for calq.
//
// This package provides the following commands:
//   - ask: Answer a free-text question about calendar events
//   - auth: Authorize read-only Google Calendar access via OAuth
//   - serve: Start the MCP server to provide calendar query tools for AI assistants
//   - version: Display version information
package cmd
