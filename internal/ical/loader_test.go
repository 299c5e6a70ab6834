package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/calq/internal/engine"
)

const sampleCalendar = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test//Test//EN
BEGIN:VEVENT
UID:event-1
SUMMARY:Standup
DESCRIPTION:Daily sync https://meet.google.com/abc-defg-hij
DTSTART:20250416T100000Z
DTEND:20250416T103000Z
END:VEVENT
BEGIN:VEVENT
UID:event-2
SUMMARY:Conference
DTSTART;VALUE=DATE:20250417
DTEND;VALUE=DATE:20250418
END:VEVENT
BEGIN:VEVENT
UID:event-3
SUMMARY:Cancelled sync
STATUS:CANCELLED
DTSTART:20250416T140000Z
DTEND:20250416T150000Z
END:VEVENT
BEGIN:VEVENT
DTSTART:20250416T160000Z
DTEND:20250416T170000Z
LOCATION:https://zoom.us/j/123456
END:VEVENT
END:VCALENDAR
`

func TestLoad(t *testing.T) {
	events, err := Load(strings.NewReader(sampleCalendar), time.UTC)
	require.NoError(t, err)
	require.Len(t, events, 3)

	t.Run("timed event", func(t *testing.T) {
		e := events[0]
		assert.Equal(t, "event-1", e.ID)
		assert.Equal(t, "Standup", e.Title)
		assert.Equal(t, engine.SourceICal, e.Source)
		assert.False(t, e.AllDay)
		assert.Equal(t, time.Date(2025, 4, 16, 10, 0, 0, 0, time.UTC), e.Start)
		assert.Equal(t, time.Date(2025, 4, 16, 10, 30, 0, 0, time.UTC), e.End)
		assert.Equal(t, "https://meet.google.com/abc-defg-hij", e.MeetingLink)
	})

	t.Run("all-day event", func(t *testing.T) {
		e := events[1]
		assert.Equal(t, "Conference", e.Title)
		assert.True(t, e.AllDay)
		assert.Equal(t, "2025-04-17", engine.ISODateKey(e.Start))
	})

	t.Run("cancelled events are skipped", func(t *testing.T) {
		for _, e := range events {
			assert.NotEqual(t, "Cancelled sync", e.Title)
		}
	})

	t.Run("missing uid and summary get fallbacks", func(t *testing.T) {
		e := events[2]
		assert.Equal(t, "Untitled event", e.Title)
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "https://zoom.us/j/123456", e.MeetingLink)
	})
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load(strings.NewReader("this is not a calendar"), time.UTC)
	assert.Error(t, err)
}

func TestExtractMeetingLink(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "platform link wins over other urls",
			text:     "Notes at https://example.com/notes and https://zoom.us/j/987",
			expected: "https://zoom.us/j/987",
		},
		{
			name:     "first url when no platform matches",
			text:     "See https://example.com/a then https://example.com/b",
			expected: "https://example.com/a",
		},
		{
			name:     "no urls",
			text:     "just text",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractMeetingLink(tt.text))
		})
	}
}
