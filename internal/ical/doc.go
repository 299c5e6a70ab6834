// Package ical loads calendar events from iCalendar (RFC 5545) data so
// queries can run against exported .ics files without any Google account.
package ical
