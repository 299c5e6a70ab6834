package engine

import (
	"strings"
	"time"
)

// HighlightEvents re-derives, from the raw query, the subset of events a
// caller should visually emphasize. It runs a reduced set of the same intent
// checks (day windows, explicit date, weekday, next meeting, person,
// keywords) and unions the matches.
//
// This is deliberately a separate pass from the router: the textual answer
// and the highlight set are allowed to diverge. An overlap answer may name
// two specific events while the highlight pass picks today's events by its
// own rules. Collapsing the two passes changes observable highlighting
// behavior, so keep them apart.
func HighlightEvents(query string, events []Event, now time.Time) []Event {
	q := normalizeQuery(query)
	set := newEventSet()

	if date, ok := ParseExplicitDate(q, now.Location()); ok {
		set.add(eventsOnDay(events, date)...)
	}
	if target, ok := ResolveWeekday(q, now); ok {
		set.add(eventsOnDay(events, target)...)
	}
	if containsWord(q, "today") {
		set.add(eventsOnDay(events, now)...)
	}
	if containsWord(q, "tomorrow") {
		set.add(eventsOnDay(events, now.AddDate(0, 0, 1))...)
	}
	if strings.Contains(q, "next meeting") || strings.Contains(q, "next appointment") {
		if next := nextEvent(events, now); next != nil {
			set.add(*next)
		}
	}
	if name, ok := ExtractPersonName(q); ok {
		set.add(eventsMatchingText(events, name)...)
	}
	for _, kw := range ExtractKeywords(q) {
		set.add(eventsMatchingText(events, kw)...)
	}

	return set.events
}

// eventSet deduplicates events by ID while preserving insertion order.
type eventSet struct {
	seen   map[string]struct{}
	events []Event
}

func newEventSet() *eventSet {
	return &eventSet{seen: make(map[string]struct{})}
}

func (s *eventSet) add(events ...Event) {
	for _, e := range events {
		if _, ok := s.seen[e.ID]; ok {
			continue
		}
		s.seen[e.ID] = struct{}{}
		s.events = append(s.events, e)
	}
}
