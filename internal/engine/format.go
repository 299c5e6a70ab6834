package engine

import (
	"fmt"
	"strings"
)

// Pluralize renders a count with singular/plural agreement: "1 meeting",
// "3 meetings". Multi-word nouns pluralize their last word.
func Pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// FormatEventLine renders the fixed bullet shape used in every listing:
//
//	• **Title** from 9:00 AM to 10:00 AM
//
// Chat clients re-parse this bullet-and-bold convention to restyle answers,
// so variants only ever append suffixes to it.
func FormatEventLine(e Event) string {
	return fmt.Sprintf("• **%s** from %s to %s", e.Title, FormatClockTime(e.Start), FormatClockTime(e.End))
}

// FormatEventLineWithDay appends the event's weekday for listings that span
// more than one day.
func FormatEventLineWithDay(e Event) string {
	return fmt.Sprintf("%s on %s", FormatEventLine(e), e.Start.Format("Monday"))
}

// FormatEventLineWithAgenda appends the agenda marker used by the
// agenda-presence branch.
func FormatEventLineWithAgenda(e Event) string {
	if e.HasAgenda() {
		return FormatEventLine(e) + " (Has agenda)"
	}
	return FormatEventLine(e) + " (No agenda)"
}

// FormatSlot renders a free-slot range: "From 1:00 PM to 2:30 PM".
func FormatSlot(s FreeSlot) string {
	return fmt.Sprintf("From %s to %s", FormatClockTime(s.Start), FormatClockTime(s.End))
}

func formatEventList(events []Event, line func(Event) string) string {
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = line(e)
	}
	return strings.Join(lines, "\n")
}
