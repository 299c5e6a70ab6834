package engine

import (
	"testing"
	"time"
)

// April 16 2025 is a Wednesday.
var testNow = time.Date(2025, 4, 16, 8, 0, 0, 0, time.UTC)

func TestFormatClockTime(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "afternoon with minutes",
			input:    time.Date(2025, 4, 16, 14, 30, 0, 0, time.UTC),
			expected: "2:30 PM",
		},
		{
			name:     "morning no leading zero",
			input:    time.Date(2025, 4, 16, 9, 5, 0, 0, time.UTC),
			expected: "9:05 AM",
		},
		{
			name:     "midnight",
			input:    time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC),
			expected: "12:00 AM",
		},
		{
			name:     "noon",
			input:    time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC),
			expected: "12:00 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatClockTime(tt.input); got != tt.expected {
				t.Errorf("FormatClockTime() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestWorkdayBounds(t *testing.T) {
	start := StartOfWorkday(testNow)
	end := EndOfWorkday(testNow)

	if start.Hour() != 9 || start.Minute() != 0 {
		t.Errorf("StartOfWorkday() = %v, expected 09:00", start)
	}
	if end.Hour() != 18 || end.Minute() != 0 {
		t.Errorf("EndOfWorkday() = %v, expected 18:00", end)
	}
	if ISODateKey(start) != ISODateKey(testNow) {
		t.Errorf("work day bounds moved to a different calendar day")
	}
}

func TestISODateKey(t *testing.T) {
	key := ISODateKey(time.Date(2025, 4, 3, 23, 59, 0, 0, time.UTC))
	if key != "2025-04-03" {
		t.Errorf("ISODateKey() = %q, expected 2025-04-03", key)
	}
}

func TestResolveWeekday(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string // ISO date key of the resolved day, "" for no match
	}{
		{
			name:     "upcoming weekday within current week",
			query:    "what meetings do I have on friday",
			expected: "2025-04-18",
		},
		{
			name:     "weekday already occurred rolls forward",
			query:    "meetings on monday",
			expected: "2025-04-21",
		},
		{
			name:     "same weekday means next week",
			query:    "what about wednesday",
			expected: "2025-04-23",
		},
		{
			name:     "explicit next rolls forward from this week",
			query:    "next friday",
			expected: "2025-04-25",
		},
		{
			name:     "no weekday in query",
			query:    "what meetings today",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveWeekday(tt.query, testNow)
			if tt.expected == "" {
				if ok {
					t.Fatalf("ResolveWeekday() matched %v, expected no match", got)
				}
				return
			}
			if !ok {
				t.Fatal("ResolveWeekday() did not match")
			}
			if ISODateKey(got) != tt.expected {
				t.Errorf("ResolveWeekday() = %s, expected %s", ISODateKey(got), tt.expected)
			}
		})
	}
}

func TestResolveWeekdayNextSameDay(t *testing.T) {
	// "next monday" asked on a Monday must resolve seven days ahead, never today.
	monday := time.Date(2025, 4, 14, 10, 0, 0, 0, time.UTC)
	got, ok := ResolveWeekday("next monday", monday)
	if !ok {
		t.Fatal("ResolveWeekday() did not match")
	}
	if ISODateKey(got) != "2025-04-21" {
		t.Errorf("ResolveWeekday() = %s, expected 2025-04-21", ISODateKey(got))
	}
}

func TestParseExplicitDate(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string // ISO date key, "" for no parse
	}{
		{
			name:     "day month year",
			query:    "what do I have on 21/04/2025",
			expected: "2025-04-21",
		},
		{
			name:     "iso date",
			query:    "meetings on 2025-04-21",
			expected: "2025-04-21",
		},
		{
			name:     "invalid day for month",
			query:    "meetings on 31/02/2025",
			expected: "",
		},
		{
			name:     "month out of range",
			query:    "meetings on 2025-13-01",
			expected: "",
		},
		{
			name:     "no date literal",
			query:    "meetings tomorrow",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseExplicitDate(tt.query, time.UTC)
			if tt.expected == "" {
				if ok {
					t.Fatalf("ParseExplicitDate() = %v, expected no parse", got)
				}
				return
			}
			if !ok {
				t.Fatal("ParseExplicitDate() did not parse")
			}
			if ISODateKey(got) != tt.expected {
				t.Errorf("ParseExplicitDate() = %s, expected %s", ISODateKey(got), tt.expected)
			}
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		w        string
		expected bool
	}{
		{"whole word", "any meetings today", "today", true},
		{"substring does not count", "cannot make the standup", "no", false},
		{"word at start", "today is busy", "today", true},
		{"repeated lookups hit the cached matcher", "free today and tomorrow", "tomorrow", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				if got := containsWord(tt.s, tt.w); got != tt.expected {
					t.Errorf("containsWord(%q, %q) = %v, expected %v", tt.s, tt.w, got, tt.expected)
				}
			}
		})
	}
}

func TestClockTimeAfter(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		qualifier string
		expected  string // formatted clock time, "" for no match
	}{
		{"at with meridiem", "am i free at 3pm", "at", "3:00 PM"},
		{"at with minutes", "free at 10:30 am", "at", "10:30 AM"},
		{"bare hour assumes afternoon", "am i free at 3", "at", "3:00 PM"},
		{"after", "free after 4pm", "after", "4:00 PM"},
		{"before", "busy before 11am", "before", "11:00 AM"},
		{"no time named", "am i free", "at", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := clockTimeAfter(tt.query, tt.qualifier, testNow)
			if tt.expected == "" {
				if ok {
					t.Fatalf("clockTimeAfter() matched %v, expected no match", got)
				}
				return
			}
			if !ok {
				t.Fatal("clockTimeAfter() did not match")
			}
			if FormatClockTime(got) != tt.expected {
				t.Errorf("clockTimeAfter() = %s, expected %s", FormatClockTime(got), tt.expected)
			}
		})
	}
}
