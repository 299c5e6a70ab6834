// Package calendar provides a read-only client for the Google Calendar API.
//
// Events are fetched per account and converted into the engine's event type
// so the query engine never touches the Google API surface directly. The
// client supports multi-account authentication using the Google OAuth2 flow.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// List the next week of events
//	events, err := client.ListEvents("primary", time.Now(), time.Now().AddDate(0, 0, 7))
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
