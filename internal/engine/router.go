package engine

import (
	"fmt"
	"strings"
	"time"
)

// Intent is the classified purpose of a query. The string value doubles as a
// low-cardinality metrics label.
type Intent string

// Intents, in routing priority order.
const (
	IntentExplicitDate Intent = "explicit_date"
	IntentWeekday      Intent = "weekday"
	IntentDay          Intent = "day"
	IntentOverlap      Intent = "overlap"
	IntentAvailability Intent = "availability"
	IntentAgenda       Intent = "agenda"
	IntentMeetingType  Intent = "meeting_type"
	IntentPerson       Intent = "person"
	IntentNextMeeting  Intent = "next_meeting"
	IntentSearch       Intent = "search"
	IntentSummary      Intent = "summary"
)

// Pattern vocabularies for the specialized branches. Entries are stems
// matched as substrings, so "overlap" also covers "overlapping" and
// "overlaps".
var (
	overlapVocab      = []string{"overlap", "conflict", "collision", "double book", "double-book"}
	availabilityVocab = []string{"free", "available", "availability", "busy"}
	agendaVocab       = []string{"agenda", "description", "details", "notes"}
)

// Classify maps a query to the first matching intent family. The order is
// part of the contract: several families can match the same text, and the
// answer a user gets depends on which one wins. Day-window families
// (explicit date, weekday, today/tomorrow) yield to the specialized
// vocabularies so that "any overlaps today?" reaches the overlap branch
// rather than a plain listing of today's events.
func Classify(query string) Intent {
	q := normalizeQuery(query)

	hasOverlap := containsAny(q, overlapVocab)
	hasAgenda := containsAny(q, agendaVocab)
	hasAvailability := containsAny(q, availabilityVocab)

	if HasDateLiteral(q) && !hasOverlap && !hasAgenda {
		return IntentExplicitDate
	}
	if hasWeekdayName(q) && !hasOverlap && !hasAgenda {
		return IntentWeekday
	}
	if (containsWord(q, "today") || containsWord(q, "tomorrow")) &&
		!hasOverlap && !hasAgenda && !hasAvailability && !isCountOnly(q) {
		return IntentDay
	}
	if hasOverlap {
		return IntentOverlap
	}
	if hasAvailability {
		return IntentAvailability
	}
	if hasAgenda {
		return IntentAgenda
	}
	if FirstMeetingType(q) != "" || isCountOnly(q) {
		return IntentMeetingType
	}
	if _, ok := ExtractPersonName(q); ok {
		return IntentPerson
	}
	if strings.Contains(q, "next meeting") || strings.Contains(q, "next appointment") {
		return IntentNextMeeting
	}
	if containsWord(q, "find") || containsWord(q, "search") {
		return IntentSearch
	}
	return IntentSummary
}

// ProcessQuery classifies a free-text calendar question, computes a formatted
// answer against the supplied events, and independently derives the highlight
// set from the same query. The reference time is captured once by the caller
// and threaded through every computation so a single answer is internally
// consistent.
func ProcessQuery(query string, events []Event, now time.Time) QueryResult {
	return QueryResult{
		Answer:        Answer(query, events, now),
		RelatedEvents: HighlightEvents(query, events, now),
	}
}

// Answer computes only the formatted answer text for a query.
func Answer(query string, events []Event, now time.Time) string {
	q := normalizeQuery(query)
	switch Classify(q) {
	case IntentExplicitDate:
		return answerExplicitDate(q, events, now)
	case IntentWeekday:
		return answerWeekday(q, events, now)
	case IntentDay:
		return answerDay(q, events, now)
	case IntentOverlap:
		return answerOverlap(q, events, now)
	case IntentAvailability:
		return answerAvailability(q, events, now)
	case IntentAgenda:
		return answerAgenda(q, events, now)
	case IntentMeetingType:
		return answerMeetingType(q, events, now)
	case IntentPerson:
		// The raw query keeps the name's capitalization for the reply.
		return answerPerson(strings.TrimSpace(query), events)
	case IntentNextMeeting:
		return answerNextMeeting(events, now)
	case IntentSearch:
		return answerSearch(q, events)
	default:
		return answerSummary(events, now)
	}
}

func answerExplicitDate(q string, events []Event, now time.Time) string {
	date, ok := ParseExplicitDate(q, now.Location())
	if !ok {
		return "I couldn't understand the date format. Try DD/MM/YYYY or YYYY-MM-DD."
	}
	matched := eventsOnDay(events, date)
	label := date.Format("Monday, January 2, 2006")
	if len(matched) == 0 {
		return fmt.Sprintf("You have no meetings scheduled for %s.", label)
	}
	if isCountOnly(q) {
		return fmt.Sprintf("You have %s on %s. Would you like me to list them?",
			Pluralize(len(matched), "meeting"), label)
	}
	return fmt.Sprintf("You have %s on %s:\n%s",
		Pluralize(len(matched), "meeting"), label, formatEventList(matched, FormatEventLine))
}

func answerWeekday(q string, events []Event, now time.Time) string {
	target, ok := ResolveWeekday(q, now)
	if !ok {
		return answerSummary(events, now)
	}
	matched := eventsOnDay(events, target)
	label := target.Format("Monday, January 2")
	if len(matched) == 0 {
		return fmt.Sprintf("You have no meetings scheduled for %s.", label)
	}
	if isCountOnly(q) {
		return fmt.Sprintf("You have %s on %s. Would you like me to list them?",
			Pluralize(len(matched), "meeting"), label)
	}
	return fmt.Sprintf("You have %s on %s:\n%s",
		Pluralize(len(matched), "meeting"), label, formatEventList(matched, FormatEventLine))
}

func answerDay(q string, events []Event, now time.Time) string {
	day, label := now, "today"
	if containsWord(q, "tomorrow") {
		day, label = now.AddDate(0, 0, 1), "tomorrow"
	}
	matched := eventsOnDay(events, day)
	if len(matched) == 0 {
		return fmt.Sprintf("You have no meetings scheduled for %s.", label)
	}
	return fmt.Sprintf("You have %s %s:\n%s",
		Pluralize(len(matched), "meeting"), label, formatEventList(matched, FormatEventLine))
}

func answerOverlap(q string, events []Event, now time.Time) string {
	var scoped []Event
	scopeLabel := ""
	switch {
	case containsWord(q, "today"):
		scoped, scopeLabel = eventsOnDay(events, now), " today"
	case containsWord(q, "tomorrow"):
		scoped, scopeLabel = eventsOnDay(events, now.AddDate(0, 0, 1)), " tomorrow"
	default:
		scoped = eventsFrom(events, StartOfDay(now))
	}

	overlaps, has := FindOverlaps(scoped)
	if !has {
		return fmt.Sprintf("You have no overlapping meetings%s.", scopeLabel)
	}
	if isCountOnly(q) {
		return fmt.Sprintf("You have %s%s. Would you like me to list them?",
			Pluralize(len(overlaps), "overlapping meeting"), scopeLabel)
	}
	lines := make([]string, len(overlaps))
	for i, o := range overlaps {
		lines[i] = fmt.Sprintf("• **%s** and **%s** overlap from %s to %s",
			o.First.Title, o.Second.Title, FormatClockTime(o.Start), FormatClockTime(o.End))
	}
	return fmt.Sprintf("You have %s%s:\n%s",
		Pluralize(len(overlaps), "overlapping meeting"), scopeLabel, strings.Join(lines, "\n"))
}

func answerAvailability(q string, events []Event, now time.Time) string {
	if t, ok := clockTimeAfter(q, "after", now); ok {
		return answerAfterTime(events, t)
	}
	if t, ok := clockTimeAfter(q, "before", now); ok {
		return answerBeforeTime(events, t)
	}
	if t, ok := clockTimeAfter(q, "at", now); ok {
		return answerAtTime(events, t)
	}

	slots := FindFreeSlots(eventsOnDay(events, now), now)
	if len(slots) == 0 {
		return "You have no free slots left today."
	}
	lines := make([]string, len(slots))
	for i, s := range slots {
		lines[i] = FormatSlot(s)
	}
	return fmt.Sprintf("You have %s today:\n%s",
		Pluralize(len(slots), "free slot"), strings.Join(lines, "\n"))
}

func answerAtTime(events []Event, t time.Time) string {
	for _, e := range timedEvents(eventsOnDay(events, t)) {
		if !e.Start.After(t) && e.End.After(t) {
			return fmt.Sprintf("You're busy at %s: **%s** from %s to %s.",
				FormatClockTime(t), e.Title, FormatClockTime(e.Start), FormatClockTime(e.End))
		}
	}
	return fmt.Sprintf("You're free at %s.", FormatClockTime(t))
}

func answerAfterTime(events []Event, t time.Time) string {
	var matched []Event
	for _, e := range timedEvents(eventsOnDay(events, t)) {
		if e.End.After(t) {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return fmt.Sprintf("You're free after %s today.", FormatClockTime(t))
	}
	matched = sortedByStart(matched)
	first := matched[0]
	if first.Start.After(t) {
		return fmt.Sprintf("You're free until %s, then you have %s:\n%s",
			FormatClockTime(first.Start), Pluralize(len(matched), "meeting"),
			formatEventList(matched, FormatEventLine))
	}
	return fmt.Sprintf("You have %s after %s:\n%s",
		Pluralize(len(matched), "meeting"), FormatClockTime(t),
		formatEventList(matched, FormatEventLine))
}

func answerBeforeTime(events []Event, t time.Time) string {
	var matched []Event
	for _, e := range timedEvents(eventsOnDay(events, t)) {
		if e.Start.Before(t) {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return fmt.Sprintf("You're free before %s today.", FormatClockTime(t))
	}
	matched = sortedByStart(matched)
	lastEnd := matched[0].End
	for _, e := range matched {
		if e.End.After(lastEnd) {
			lastEnd = e.End
		}
	}
	return fmt.Sprintf("You have %s before %s:\n%s\nThe last one ends at %s.",
		Pluralize(len(matched), "meeting"), FormatClockTime(t),
		formatEventList(matched, FormatEventLine), FormatClockTime(lastEnd))
}

func answerAgenda(q string, events []Event, now time.Time) string {
	day, label := now, "today"
	switch {
	case containsWord(q, "tomorrow"):
		day, label = now.AddDate(0, 0, 1), "tomorrow"
	case containsWord(q, "yesterday"):
		day, label = now.AddDate(0, 0, -1), "yesterday"
	}
	scoped := eventsOnDay(events, day)
	if len(scoped) == 0 {
		return fmt.Sprintf("You have no meetings scheduled for %s.", label)
	}

	negated := containsWord(q, "no") || containsWord(q, "without") || containsWord(q, "missing")
	var matched []Event
	for _, e := range scoped {
		if e.HasAgenda() != negated {
			matched = append(matched, e)
		}
	}

	if negated {
		if len(matched) == 0 {
			return fmt.Sprintf("All of your meetings %s have an agenda.", label)
		}
		if isCountOnly(q) {
			return fmt.Sprintf("You have %s %s without an agenda. Would you like me to list them?",
				Pluralize(len(matched), "meeting"), label)
		}
		return fmt.Sprintf("You have %s %s without an agenda:\n%s",
			Pluralize(len(matched), "meeting"), label,
			formatEventList(matched, FormatEventLineWithAgenda))
	}
	if len(matched) == 0 {
		return fmt.Sprintf("None of your meetings %s have an agenda.", label)
	}
	if isCountOnly(q) {
		return fmt.Sprintf("You have %s %s with an agenda. Would you like me to list them?",
			Pluralize(len(matched), "meeting"), label)
	}
	return fmt.Sprintf("You have %s %s with an agenda:\n%s",
		Pluralize(len(matched), "meeting"), label,
		formatEventList(matched, FormatEventLineWithAgenda))
}

func answerMeetingType(q string, events []Event, now time.Time) string {
	typ := FirstMeetingType(q)
	from, to, windowLabel := resolveWindow(q, now)

	var matched []Event
	for _, e := range sortedByStart(events) {
		if e.Start.Before(from) || !e.Start.Before(to) {
			continue
		}
		if typ != "" && !MatchesMeetingType(e.Title, typ) && !MatchesMeetingType(e.Description, typ) {
			continue
		}
		matched = append(matched, e)
	}

	noun := "meeting"
	if typ != "" {
		noun = typ + " meeting"
	}
	if len(matched) == 0 {
		return fmt.Sprintf("You have no %ss %s.", noun, windowLabel)
	}
	if isCountOnly(q) {
		return fmt.Sprintf("You have %s %s. Would you like me to list them?",
			Pluralize(len(matched), noun), windowLabel)
	}
	return fmt.Sprintf("You have %s %s:\n%s",
		Pluralize(len(matched), noun), windowLabel,
		formatEventList(matched, FormatEventLineWithDay))
}

// resolveWindow maps time qualifiers in the query to a concrete half-open
// window. Without a qualifier the window is the next three months.
func resolveWindow(q string, now time.Time) (from, to time.Time, label string) {
	switch {
	case strings.Contains(q, "next week"):
		start := startOfWeek(now).AddDate(0, 0, 7)
		return start, start.AddDate(0, 0, 7), "next week"
	case strings.Contains(q, "this week"):
		start := startOfWeek(now)
		return start, start.AddDate(0, 0, 7), "this week"
	case containsWord(q, "tomorrow"):
		day := StartOfDay(now.AddDate(0, 0, 1))
		return day, day.AddDate(0, 0, 1), "tomorrow"
	case containsWord(q, "today"):
		day := StartOfDay(now)
		return day, day.AddDate(0, 0, 1), "today"
	case containsWord(q, "month"):
		start := StartOfDay(now)
		return start, start.AddDate(0, 1, 0), "this month"
	default:
		start := StartOfDay(now)
		return start, start.AddDate(0, 3, 0), "in the next 3 months"
	}
}

func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday-based week
	return StartOfDay(t).AddDate(0, 0, -offset)
}

func answerPerson(q string, events []Event) string {
	name, ok := ExtractPersonName(q)
	if !ok {
		return "I couldn't find a name in your question."
	}
	matched := eventsMatchingText(events, name)
	if len(matched) == 0 {
		return fmt.Sprintf("You have no meetings with %s.", name)
	}
	if isCountOnly(q) {
		return fmt.Sprintf("You have %s with %s. Would you like me to list them?",
			Pluralize(len(matched), "meeting"), name)
	}
	return fmt.Sprintf("You have %s with %s:\n%s",
		Pluralize(len(matched), "meeting"), name,
		formatEventList(sortedByStart(matched), FormatEventLineWithDay))
}

func answerNextMeeting(events []Event, now time.Time) string {
	next := nextEvent(events, now)
	if next == nil {
		return "You have no upcoming meetings."
	}
	answer := fmt.Sprintf("Your next meeting is **%s** from %s to %s on %s.",
		next.Title, FormatClockTime(next.Start), FormatClockTime(next.End),
		next.Start.Format("Monday, January 2"))
	if next.MeetingLink != "" {
		answer += fmt.Sprintf(" It has a meeting link: %s", next.MeetingLink)
	}
	return answer
}

func answerSearch(q string, events []Event) string {
	keywords := ExtractKeywords(q)
	if len(keywords) == 0 {
		return "I couldn't find any search terms in your question."
	}
	var matched []Event
	for _, e := range events {
		for _, kw := range keywords {
			if eventContainsText(e, kw) {
				matched = append(matched, e)
				break
			}
		}
	}
	terms := strings.Join(keywords, ", ")
	if len(matched) == 0 {
		return fmt.Sprintf("No meetings found matching %q.", terms)
	}
	return fmt.Sprintf("Found %s matching %q:\n%s",
		Pluralize(len(matched), "meeting"), terms,
		formatEventList(sortedByStart(matched), FormatEventLineWithDay))
}

func answerSummary(events []Event, now time.Time) string {
	upcoming := eventsFrom(events, now)
	if len(upcoming) == 0 {
		return "You have no upcoming meetings."
	}
	if len(upcoming) > 3 {
		upcoming = upcoming[:3]
	}
	if len(upcoming) == 1 {
		return "Here is your next meeting:\n" + formatEventList(upcoming, FormatEventLineWithDay)
	}
	return fmt.Sprintf("Here are your next %d meetings:\n%s",
		len(upcoming), formatEventList(upcoming, FormatEventLineWithDay))
}

// --- shared helpers ---

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// isCountOnly reports whether the query asks for a count rather than a
// listing. Count branches answer with a number and a listing offer instead
// of itemizing, as a summarization policy.
func isCountOnly(q string) bool {
	return strings.Contains(q, "how many")
}

func containsAny(q string, vocab []string) bool {
	for _, term := range vocab {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

func hasWeekdayName(q string) bool {
	for _, wd := range weekdays {
		if containsWord(q, wd.name) {
			return true
		}
	}
	return false
}

// eventsOnDay filters events whose start shares day's ISO date key, sorted
// by start time.
func eventsOnDay(events []Event, day time.Time) []Event {
	key := ISODateKey(day)
	var out []Event
	for _, e := range events {
		if ISODateKey(e.Start) == key {
			out = append(out, e)
		}
	}
	return sortedByStart(out)
}

// eventsFrom returns events starting at or after t, sorted by start time.
func eventsFrom(events []Event, t time.Time) []Event {
	var out []Event
	for _, e := range events {
		if !e.Start.Before(t) {
			out = append(out, e)
		}
	}
	return sortedByStart(out)
}

func nextEvent(events []Event, now time.Time) *Event {
	var next *Event
	for i := range events {
		e := events[i]
		if !e.Start.After(now) {
			continue
		}
		if next == nil || e.Start.Before(next.Start) {
			next = &events[i]
		}
	}
	return next
}

// eventsMatchingText returns events whose title, description, or location
// contains needle, case-insensitively.
func eventsMatchingText(events []Event, needle string) []Event {
	var out []Event
	for _, e := range events {
		if eventContainsText(e, needle) {
			out = append(out, e)
		}
	}
	return out
}

func eventContainsText(e Event, needle string) bool {
	n := strings.ToLower(needle)
	return strings.Contains(strings.ToLower(e.Title), n) ||
		strings.Contains(strings.ToLower(e.Description), n) ||
		strings.Contains(strings.ToLower(e.Location), n)
}
