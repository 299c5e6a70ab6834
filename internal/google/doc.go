// Package google provides OAuth2 authentication and token management for the
// Google Calendar API.
//
// Tokens are stored per account in the user cache directory, so several
// Google accounts can be queried side by side. The TokenProvider interface
// allows other token sources to be plugged in.
package google
