package timeline

import "github.com/starford/vitalog/internal/prefstore"

// Preference-store keys for the persisted filter facets. Each facet lives
// under its own key; these names predate this service and match what the
// dashboard has always written.
const (
	SearchKey      = "timeline-search"
	TypeFiltersKey = "timeline-event-filters"
	DateRangeKey   = "timeline-date-range"
)

// LoadCriteria assembles the persisted filter criteria. Missing or corrupt
// facets degrade to their neutral values.
func LoadCriteria(store *prefstore.Store) Criteria {
	return Criteria{
		SearchQuery: prefstore.Get(store, SearchKey, ""),
		EventTypes:  prefstore.Get(store, TypeFiltersKey, []string{}),
		DateRange:   prefstore.Get(store, DateRangeKey, DateRange{}),
	}
}

// SaveCriteria persists every facet under its own key.
func SaveCriteria(store *prefstore.Store, c Criteria) error {
	if err := prefstore.Set(store, SearchKey, c.SearchQuery); err != nil {
		return err
	}
	if err := prefstore.Set(store, TypeFiltersKey, c.EventTypes); err != nil {
		return err
	}
	return prefstore.Set(store, DateRangeKey, c.DateRange)
}
