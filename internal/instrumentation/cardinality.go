package instrumentation

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Query text, event titles, and person names must never become label values.
// Use the classified intent and the strategy name instead; both are bounded sets.

// StatusLabel converts an operation result into a bounded status label.
//
// Example:
//
//	StatusLabel(nil)          // "success"
//	StatusLabel(err)          // "error"
func StatusLabel(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// Common operation types for Google API metrics.
// Status and Service constants are defined in config.go.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationSearch = "search"
)
