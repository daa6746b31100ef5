package services

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing meeting and filter dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// matchesDateRange reports whether a meeting date falls inside the
// given window. The check fails open: a date that cannot be parsed
// (the meeting's or a filter bound) never excludes the candidate, so
// bad data degrades retrieval quality instead of hiding results.
func matchesDateRange(meetingDate, from, to string) bool {
	if from == "" && to == "" {
		return true
	}

	date, ok := parseISODate(meetingDate)
	if !ok {
		return true
	}

	if from != "" {
		if bound, ok := parseISODate(from); ok && date.Before(bound) {
			return false
		}
	}
	if to != "" {
		if bound, ok := parseISODate(to); ok && date.After(bound) {
			return false
		}
	}

	return true
}

func parseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
