package engine

import (
	"regexp"
	"strings"
)

// stopWords are calendar jargon and English function words that carry no
// search value. Keyword extraction drops them before anything else.
var stopWords = map[string]struct{}{
	"a": {}, "about": {}, "am": {}, "an": {}, "and": {}, "any": {},
	"appointment": {}, "appointments": {}, "are": {}, "at": {}, "calendar": {},
	"do": {}, "does": {}, "event": {}, "events": {}, "find": {}, "for": {},
	"have": {}, "how": {}, "i": {}, "in": {}, "is": {}, "many": {}, "me": {},
	"meeting": {}, "meetings": {}, "my": {}, "next": {}, "of": {}, "on": {},
	"please": {}, "scheduled": {}, "search": {}, "show": {}, "the": {},
	"there": {}, "this": {}, "to": {}, "today": {}, "tomorrow": {},
	"upcoming": {}, "week": {}, "what": {}, "whats": {}, "when": {},
	"with": {}, "you": {},
}

// meetingTypes is the fixed vocabulary of domain meeting-type terms. A type
// match takes priority over generic keyword filtering.
var meetingTypes = []string{
	"interview", "standup", "review", "planning", "retrospective", "demo",
	"presentation", "workshop", "1:1", "sync", "catch-up", "check-in",
	"orientation", "training", "feedback",
}

// nonKeywordChars strips punctuation during normalization. Hyphens and
// colons survive so terms like "catch-up" and "1:1" stay intact.
var nonKeywordChars = regexp.MustCompile(`[^a-z0-9\s:/-]`)

// ExtractKeywords reduces a query to its informative terms. Meeting-type
// vocabulary wins outright: if any type term (or a simple plural/gerund
// variant) appears, only the matched types are returned. Otherwise all
// non-stop-words longer than two characters are kept, and as a last resort
// the final word of the query, so a search never comes back empty-handed
// when the user typed something.
func ExtractKeywords(query string) []string {
	normalized := nonKeywordChars.ReplaceAllString(strings.ToLower(query), "")
	words := strings.Fields(normalized)

	var types []string
	for _, typ := range meetingTypes {
		if MatchesMeetingType(normalized, typ) {
			types = append(types, typ)
		}
	}
	if len(types) > 0 {
		return types
	}

	var keywords []string
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if len(w) > 2 {
			keywords = append(keywords, w)
		}
	}
	if len(keywords) == 0 && len(words) > 0 {
		keywords = append(keywords, words[len(words)-1])
	}
	return keywords
}

// MatchesMeetingType reports whether text contains typ or one of its simple
// morphological variants: plain, plural "+s", or gerund "+ing".
func MatchesMeetingType(text, typ string) bool {
	lower := strings.ToLower(text)
	for _, variant := range []string{typ, typ + "s", typ + "ing"} {
		if containsWord(lower, variant) {
			return true
		}
	}
	return false
}

// FirstMeetingType returns the first meeting-type term found in the query,
// or "" when none matches.
func FirstMeetingType(query string) string {
	lower := strings.ToLower(query)
	for _, typ := range meetingTypes {
		if MatchesMeetingType(lower, typ) {
			return typ
		}
	}
	return ""
}

var (
	personPattern = regexp.MustCompile(`(?i)\bmeetings?\s+with\s+(.+)$`)
	// personCutPattern trims trailing qualifiers from a captured name:
	// "John on Friday", "Anna at 3pm", "John today".
	personCutPattern = regexp.MustCompile(`(?i)\s+(?:on|at|in|today|tomorrow)\b.*$`)
)

// ExtractPersonName pulls a person's name out of a "meeting(s) with <name>"
// phrase. The capture runs to the end of the query, a question mark, or a
// trailing time qualifier, so multi-word names survive whole.
func ExtractPersonName(query string) (string, bool) {
	m := personPattern.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}
	name := m[1]
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	name = personCutPattern.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	return name, true
}
