// Package timeline implements the event pipeline behind the health timeline:
// normalization of curated events and user notes into one stream, multi-facet
// filtering, date grouping with newest-first ordering, and the persisted
// accordion expansion state.
package timeline

import "time"

// Date layouts accepted across the dataset and the journal. Curated events
// carry ISO dates; notes carry long calendar dates.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	time.RFC3339,
}

// parseDate parses an event date at day granularity: the result is local
// midnight of the calendar day, regardless of any time component or zone
// carried by the input.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.Local), true
		}
	}
	return time.Time{}, false
}
