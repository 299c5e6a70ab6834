// Package engine implements the rule-based calendar query engine.
//
// The engine answers free-text questions about a list of calendar events
// ("What meetings today?", "Am I free at 3pm?", "Do I have overlapping
// meetings?") without any external model call. A query is normalized,
// classified into one of a fixed set of intents, evaluated against the
// events, and rendered into a conversational markdown answer together with
// the set of events a UI should highlight.
//
// The engine is pure and stateless: every invocation receives its own query,
// event list, and reference time, and returns a self-contained result.
// Concurrent invocations need no coordination.
//
// Example usage:
//
//	result := engine.ProcessQuery("What meetings do I have today?", events, time.Now())
//	fmt.Println(result.Answer)
//	for _, e := range result.RelatedEvents {
//	    highlight(e.ID)
//	}
package engine
