package timeline

import (
	"log/slog"
	"sort"

	"github.com/starford/vitalog/internal/models"
)

// SortEvents stable-sorts events newest first: primary key is the parsed
// date descending, secondary key is the timestamp string descending when
// both events carry one. Events whose dates fail to parse sort last
// (oldest-equivalent); a warning is logged once per offending date.
func SortEvents(events []models.Event) []models.Event {
	out := make([]models.Event, len(events))
	copy(out, events)

	warned := make(map[string]struct{})
	parse := func(s string) (int64, bool) {
		t, ok := parseDate(s)
		if !ok {
			if _, seen := warned[s]; !seen {
				warned[s] = struct{}{}
				slog.Warn("timeline: unparseable event date, sorting last", slog.String("date", s))
			}
			return 0, false
		}
		return t.Unix(), true
	}

	sort.SliceStable(out, func(i, k int) bool {
		di, iok := parse(out[i].Date)
		dk, kok := parse(out[k].Date)
		if iok != kok {
			return iok // parseable dates come before unparseable ones
		}
		if !iok {
			return false // both unparseable: keep original order
		}
		if di != dk {
			return di > dk
		}
		if out[i].Timestamp != "" && out[k].Timestamp != "" {
			return out[i].Timestamp > out[k].Timestamp
		}
		return false
	})
	return out
}

// Group buckets events by exact date-string equality, preserving first-seen
// group order and in-group event order, then sorts the groups newest first.
// The total event count is preserved; no two groups share a date string.
func Group(events []models.Event) []models.GroupedEvent {
	byDate := make(map[string]int, len(events))
	groups := make([]models.GroupedEvent, 0, len(events))

	for _, ev := range events {
		idx, ok := byDate[ev.Date]
		if !ok {
			idx = len(groups)
			byDate[ev.Date] = idx
			groups = append(groups, models.GroupedEvent{Date: ev.Date})
		}
		groups[idx].Events = append(groups[idx].Events, ev)
	}

	sort.SliceStable(groups, func(i, k int) bool {
		di, iok := parseDate(groups[i].Date)
		dk, kok := parseDate(groups[k].Date)
		if iok != kok {
			return iok
		}
		if !iok {
			return false
		}
		return di.After(dk)
	})
	return groups
}
