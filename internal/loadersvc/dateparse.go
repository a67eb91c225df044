package loadersvc

import (
	"strings"
	"time"
)

// dateLayouts are tried in order; the scraper's date_posted field is
// normally a bare YYYY-MM-DD but some listings carry an embedded time
// component separated by a space or a "T", per SPEC_FULL.md §4.3 step 6.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseDatePosted tolerantly parses a listing's date_posted string. A
// malformed or empty value yields a nil time rather than an error — the
// loader never fails a record over an unparsable date.
func parseDatePosted(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
