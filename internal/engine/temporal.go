package engine

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Work-day bounds used for free-slot computation.
const (
	workdayStartHour = 9
	workdayEndHour   = 18
)

// minSlotDuration is the smallest gap reported as a free slot. Gaps at or
// below the threshold are back-to-back scheduling noise, not usable time.
const minSlotDuration = 30 * time.Minute

// FormatClockTime renders an instant as a 12-hour clock time with no leading
// zero on the hour, e.g. "2:30 PM". Every time that appears in an answer goes
// through this function so output stays consistent across branches.
func FormatClockTime(t time.Time) string {
	return t.Format("3:04 PM")
}

// StartOfDay returns midnight at the start of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWorkday returns 09:00 local time on t's calendar day.
func StartOfWorkday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), workdayStartHour, 0, 0, 0, t.Location())
}

// EndOfWorkday returns 18:00 local time on t's calendar day.
func EndOfWorkday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), workdayEndHour, 0, 0, 0, t.Location())
}

// ISODateKey returns a stable YYYY-MM-DD key for grouping events by calendar
// day. All day-window filtering uses this key so events near midnight group
// the same way in every branch.
func ISODateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// weekdays maps lowercase weekday names to time.Weekday, in a fixed order so
// resolution is deterministic when a query somehow names more than one.
var weekdays = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// ResolveWeekday finds a weekday name in the query and resolves it to a
// concrete date. A weekday that already occurred this week, or one qualified
// with "next", rolls forward seven days; otherwise the occurrence within the
// current week is used. "next monday" asked on a Monday resolves seven days
// ahead, never today.
func ResolveWeekday(query string, today time.Time) (time.Time, bool) {
	q := strings.ToLower(query)
	for _, wd := range weekdays {
		if !containsWord(q, wd.name) {
			continue
		}
		diff := int(wd.day) - int(today.Weekday())
		if diff <= 0 || containsWord(q, "next") {
			diff += 7
		}
		return StartOfDay(today).AddDate(0, 0, diff), true
	}
	return time.Time{}, false
}

var (
	dmyDatePattern = regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{4})\b`)
	isoDatePattern = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

// HasDateLiteral reports whether the query contains something shaped like a
// DD/MM/YYYY or YYYY-MM-DD date, regardless of whether it is a valid
// calendar date.
func HasDateLiteral(query string) bool {
	return dmyDatePattern.MatchString(query) || isoDatePattern.MatchString(query)
}

// ParseExplicitDate recognizes the two supported literal date shapes,
// DD/MM/YYYY and YYYY-MM-DD. Invalid calendar dates such as 31/02/2025
// report ok=false instead of normalizing into the next month.
func ParseExplicitDate(query string, loc *time.Location) (time.Time, bool) {
	if m := dmyDatePattern.FindStringSubmatch(query); m != nil {
		return makeDate(m[3], m[2], m[1], loc)
	}
	if m := isoDatePattern.FindStringSubmatch(query); m != nil {
		return makeDate(m[1], m[2], m[3], loc)
	}
	return time.Time{}, false
}

func makeDate(year, month, day string, loc *time.Location) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc)
	// time.Date normalizes out-of-range components (month 13 becomes January
	// of the next year). A round-trip mismatch means the literal was not a
	// real calendar date.
	if t.Year() != y || t.Month() != time.Month(mo) || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

var (
	afterTimePattern  = regexp.MustCompile(`\bafter\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	beforeTimePattern = regexp.MustCompile(`\bbefore\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	atTimePattern     = regexp.MustCompile(`\b(?:at|by)\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
)

// clockTimeAfter extracts a clock time that follows the given qualifier
// ("at", "after", "before") and anchors it on day's calendar date. Hours
// without an am/pm marker that fall before the start of the work day are
// assumed to mean the afternoon ("free at 3" means 3 PM, not 3 AM).
func clockTimeAfter(query, qualifier string, day time.Time) (time.Time, bool) {
	var pattern *regexp.Regexp
	switch qualifier {
	case "after":
		pattern = afterTimePattern
	case "before":
		pattern = beforeTimePattern
	default:
		pattern = atTimePattern
	}

	m := pattern.FindStringSubmatch(query)
	if m == nil {
		return time.Time{}, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	switch m[3] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 0 && hour < workdayStartHour {
			hour += 12
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), true
}

// wordPatterns caches the compiled whole-word matcher per vocabulary word.
// The word set is a small fixed vocabulary, so the cache stays bounded.
var wordPatterns sync.Map

// containsWord reports whether s contains w as a whole word.
func containsWord(s, w string) bool {
	if cached, ok := wordPatterns.Load(w); ok {
		return cached.(*regexp.Regexp).MatchString(s)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	wordPatterns.Store(w, re)
	return re.MatchString(s)
}
