package calendar

import (
	"regexp"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/calq/internal/engine"
)

// CalendarInfo represents information about a calendar
type CalendarInfo struct {
	ID          string
	Summary     string
	Description string
	TimeZone    string
	Primary     bool
	AccessRole  string // "owner", "writer", "reader", "freeBusyReader"
}

// toEngineEvent converts a Google Calendar event to an engine event.
// All-day events carry a Date instead of a DateTime on both endpoints.
func toEngineEvent(event *calendar.Event) engine.Event {
	if event == nil {
		return engine.Event{}
	}

	out := engine.Event{
		ID:          event.Id,
		Title:       event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Source:      engine.SourceGoogle,
	}
	if out.Title == "" {
		out.Title = "Untitled event"
	}

	if event.Start != nil {
		if event.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				out.Start = t
			}
		} else if event.Start.Date != "" {
			if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
				out.Start = t
				out.AllDay = true
			}
		}
	}

	if event.End != nil {
		if event.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
				out.End = t
			}
		} else if event.End.Date != "" {
			if t, err := time.Parse("2006-01-02", event.End.Date); err == nil {
				out.End = t
			}
		}
	}

	// Conference data is authoritative for the meeting link, the description
	// is only scanned when none is attached.
	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				out.MeetingLink = ep.Uri
				break
			}
		}
	}
	if out.MeetingLink == "" && event.Description != "" {
		if links := extractLinksFromText(event.Description); len(links) > 0 {
			out.MeetingLink = links[0]
		}
	}

	return out
}

// toCalendarInfo converts a Google Calendar list entry to CalendarInfo
func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:          entry.Id,
		Summary:     entry.Summary,
		Description: entry.Description,
		TimeZone:    entry.TimeZone,
		Primary:     entry.Primary,
		AccessRole:  entry.AccessRole,
	}
}

// extractLinksFromText extracts URLs from text
func extractLinksFromText(text string) []string {
	urlRegex := regexp.MustCompile(`https?://[^\s<>"]+`)
	return urlRegex.FindAllString(text, -1)
}
