package google

import calendar "google.golang.org/api/calendar/v3"

// DefaultOAuthScopes are the Google OAuth scopes the application requests.
// Calendar access is read-only: the query engine never mutates events.
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Google Calendar scope
	calendar.CalendarReadonlyScope,
}
