package engine

import (
	"strings"
	"time"
)

// Source identifies the calendar provider an event came from. The engine
// treats it as opaque metadata and never branches on it.
type Source string

// Known event sources.
const (
	SourceGoogle Source = "google"
	SourceICal   Source = "ical"
)

// Event is a single, pre-expanded calendar event. Recurring events are
// assumed to be expanded into individual instances upstream. The engine
// assumes End >= Start but does not enforce it; overlap and free-slot math
// is undefined for malformed intervals.
type Event struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	Location    string
	Description string
	Source      Source
	AllDay      bool
	MeetingLink string
}

// placeholderDescription is the filler some providers insert for events
// without notes. It counts as "no agenda".
const placeholderDescription = "No description available"

// HasAgenda reports whether the event carries a real description. Blank
// descriptions and the provider placeholder both count as missing.
func (e Event) HasAgenda() bool {
	d := strings.TrimSpace(e.Description)
	return d != "" && d != placeholderDescription
}

// QueryResult is the answer to a single query: a formatted natural-language
// answer plus the events the caller should visually highlight. RelatedEvents
// may be empty; the answer never is.
type QueryResult struct {
	Answer        string
	RelatedEvents []Event
}

// Overlap is a pair of events whose time intervals intersect, together with
// the intersected range. An event can participate in more than one overlap.
type Overlap struct {
	First  Event
	Second Event
	Start  time.Time
	End    time.Time
}

// FreeSlot is a usable gap between busy intervals within the work window.
// Slots at or below the 30-minute visibility threshold are never reported.
type FreeSlot struct {
	Start time.Time
	End   time.Time
}
