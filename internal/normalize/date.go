package normalize

import (
	"regexp"
	"time"
)

var canonicalDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// loc is the calendar location used when collapsing a parsed instant to a
// day. Defaults to the process-local zone; config may override it once at
// startup. Dates near midnight must land on the operator's day, not UTC's.
var loc = time.Local

// SetLocation overrides the calendar location. Call before any parsing.
func SetLocation(l *time.Location) {
	if l != nil {
		loc = l
	}
}

// dateLayouts is the ladder of accepted serializations, tried in order.
// Layouts without a zone are interpreted in loc.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"2006年1月2日",
	"Jan 2, 2006",
}

// IsCanonical reports whether s is already a YYYY-MM-DD string. Callers
// that need parsed-or-skip semantics (rather than Date's passthrough) check
// the output with this.
func IsCanonical(s string) bool {
	return canonicalDate.MatchString(s)
}

// Date canonicalizes any parseable date representation to YYYY-MM-DD.
// Already-canonical input passes through untouched. Unparseable input is
// returned unchanged — callers must tolerate non-canonical output; this
// function never fails.
func Date(raw string) string {
	if raw == "" {
		return ""
	}
	if canonicalDate.MatchString(raw) {
		return raw
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc).Format("2006-01-02")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}
