// Package server provides the MCP server context, health checks, and the
// dedicated metrics server for the calq application.
//
// # Key Components
//
// ServerContext manages Google Calendar clients with lazy initialization and
// caching. It supports multiple accounts via the file-based token provider
// and carries the strategy resolver that answers calendar queries, together
// with the metrics recorder and audit logger.
//
// HealthChecker exposes /healthz and /readyz endpoints for Kubernetes
// probes. MetricsServer serves Prometheus metrics on a dedicated port so
// operational data stays off the main MCP transport.
package server
