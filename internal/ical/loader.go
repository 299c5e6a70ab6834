package ical

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/teemow/calq/internal/engine"
)

// LoadFile reads events from an .ics file.
func LoadFile(path string, loc *time.Location) ([]engine.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ical file: %w", err)
	}
	defer func() { _ = f.Close() }()

	events, err := Load(f, loc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return events, nil
}

// Load decodes every VEVENT in the stream into an engine event. Cancelled
// events are skipped. Times are interpreted in loc when the data carries no
// timezone of its own.
func Load(r io.Reader, loc *time.Location) ([]engine.Event, error) {
	if loc == nil {
		loc = time.Local
	}

	decoder := ical.NewDecoder(r)
	var events []engine.Event
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}
		for _, child := range cal.Children {
			if child.Name != ical.CompEvent {
				continue
			}
			event, ok := parseEvent(child, loc)
			if !ok {
				continue
			}
			events = append(events, event)
		}
	}
	return events, nil
}

func parseEvent(comp *ical.Component, loc *time.Location) (engine.Event, bool) {
	event := engine.Event{Source: engine.SourceICal}

	if p := comp.Props.Get(ical.PropUID); p != nil {
		event.ID = p.Value
	}
	if p := comp.Props.Get(ical.PropSummary); p != nil {
		event.Title = p.Value
	}
	if event.Title == "" {
		event.Title = "Untitled event"
	}
	if p := comp.Props.Get(ical.PropStatus); p != nil && strings.EqualFold(p.Value, "CANCELLED") {
		return engine.Event{}, false
	}
	if p := comp.Props.Get(ical.PropDescription); p != nil {
		event.Description = p.Value
		event.MeetingLink = extractMeetingLink(p.Value)
	}
	if p := comp.Props.Get(ical.PropLocation); p != nil {
		event.Location = p.Value
		if event.MeetingLink == "" {
			event.MeetingLink = extractMeetingLink(p.Value)
		}
	}

	start := comp.Props.Get(ical.PropDateTimeStart)
	if start == nil {
		return engine.Event{}, false
	}
	event.AllDay = start.ValueType() == ical.ValueDate

	var ok bool
	if event.Start, ok = parseDateTime(start, loc); !ok {
		return engine.Event{}, false
	}

	if end := comp.Props.Get(ical.PropDateTimeEnd); end != nil {
		event.End, ok = parseDateTime(end, loc)
	}
	if event.End.IsZero() {
		// DTEND is optional. All-day events cover their day, timed events
		// without an end get a zero-length interval at their start.
		if event.AllDay {
			event.End = event.Start.AddDate(0, 0, 1)
		} else {
			event.End = event.Start
		}
	}

	if event.ID == "" {
		event.ID = event.Start.Format(time.RFC3339) + "-" + event.Title
	}
	return event, true
}

// parseDateTime reads a DTSTART/DTEND property. go-ical handles the standard
// forms; a few raw layouts seen in real exports are tried as a fallback.
func parseDateTime(prop *ical.Prop, loc *time.Location) (time.Time, bool) {
	if t, err := prop.DateTime(loc); err == nil {
		return t, true
	}
	for _, layout := range []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
		time.RFC3339,
	} {
		if t, err := time.ParseInLocation(layout, prop.Value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var meetingURLPattern = regexp.MustCompile(`https?://[^\s<>"{}|\\^[\]` + "`" + `]+`)

// meetingPlatforms are hostname fragments of known conferencing services.
// A URL matching one of these wins over any other URL in the same text.
var meetingPlatforms = []string{"zoom", "meet.google", "teams.microsoft", "webex", "gotomeeting"}

func extractMeetingLink(text string) string {
	matches := meetingURLPattern.FindAllString(text, -1)
	for _, m := range matches {
		lower := strings.ToLower(m)
		for _, platform := range meetingPlatforms {
			if strings.Contains(lower, platform) {
				return m
			}
		}
	}
	if len(matches) > 0 {
		return matches[0]
	}
	return ""
}
