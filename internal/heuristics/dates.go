package heuristics

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var updatedLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.0000000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

var daysAgo = regexp.MustCompile(`(?i)(\d+)\s*day`)

// ParseUpdated converts the "updated" text of a third-party posting into a
// timestamp. Absolute dates are parsed directly; "N days ago" is resolved
// against now. Anything else, including weeks or months, resolves to now.
func ParseUpdated(text string, now time.Time) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return now
	}

	for _, layout := range updatedLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts
		}
	}

	if m := daysAgo.FindStringSubmatch(text); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil {
			return now.AddDate(0, 0, -days)
		}
	}

	return now
}
