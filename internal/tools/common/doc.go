// Package common provides shared helpers for MCP tool implementations:
// account extraction from tool arguments and instrumented handler wrappers
// that record metrics, spans, and audit entries for every tool call.
package common
