package timeline

import (
	"strings"
	"time"

	"github.com/starford/vitalog/internal/models"
)

// DateRange is an inclusive day-granularity range; either bound may be empty.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Criteria is the set of timeline filter facets. The zero value matches
// every event and reports no active filters.
type Criteria struct {
	SearchQuery string    `json:"searchQuery"`
	EventTypes  []string  `json:"eventTypes"`
	DateRange   DateRange `json:"dateRange"`
}

// Active reports whether any facet is set. The all-empty state is what
// disables the active-filter indicator and the result-count banner.
func (c Criteria) Active() bool {
	return c.SearchQuery != "" ||
		len(c.EventTypes) > 0 ||
		c.DateRange.Start != "" ||
		c.DateRange.End != ""
}

// Filter returns the events passing all three predicates: case-insensitive
// substring search over title, description, provider and location; kind
// membership; and the inclusive date range. An empty facet passes everything.
func Filter(events []models.Event, c Criteria) []models.Event {
	query := strings.ToLower(strings.TrimSpace(c.SearchQuery))

	kinds := make(map[string]struct{}, len(c.EventTypes))
	for _, k := range c.EventTypes {
		kinds[k] = struct{}{}
	}

	var start, end time.Time
	var hasStart, hasEnd bool
	if c.DateRange.Start != "" {
		start, hasStart = parseDate(c.DateRange.Start)
	}
	if c.DateRange.End != "" {
		end, hasEnd = parseDate(c.DateRange.End)
	}

	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if query != "" && !matchesQuery(ev, query) {
			continue
		}
		if len(kinds) > 0 {
			if _, ok := kinds[ev.Kind]; !ok {
				continue
			}
		}
		if hasStart || hasEnd {
			d, ok := parseDate(ev.Date)
			if !ok {
				continue
			}
			if hasStart && d.Before(start) {
				continue
			}
			if hasEnd && d.After(end) {
				continue
			}
		}
		out = append(out, ev)
	}
	return out
}

func matchesQuery(ev models.Event, query string) bool {
	for _, field := range []string{ev.Title, ev.Description, ev.Provider, ev.Location} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Summary reports the matched-event count and the number of distinct result
// dates, for the "showing N dates with M events" banner.
type Summary struct {
	Events int `json:"events"`
	Dates  int `json:"dates"`
}

// Summarize computes the result summary over a filtered stream.
func Summarize(events []models.Event) Summary {
	dates := make(map[string]struct{}, len(events))
	for _, ev := range events {
		dates[ev.Date] = struct{}{}
	}
	return Summary{Events: len(events), Dates: len(dates)}
}
