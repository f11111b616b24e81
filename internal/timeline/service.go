package timeline

import (
	"github.com/starford/vitalog/internal/models"
)

// EventSource supplies the curated event list, already in event shape.
type EventSource interface {
	Events() []models.Event
}

// NoteSource supplies a read-only projection of the note journal.
type NoteSource interface {
	Notes() []models.Note
}

// Service composes the full pipeline: normalize both sources, filter, sort,
// group. Every call recomputes from current inputs; there is no cached
// derived state to invalidate.
type Service struct {
	events EventSource
	notes  NoteSource
}

// NewService creates a timeline service over the two event sources.
func NewService(events EventSource, notes NoteSource) *Service {
	return &Service{events: events, notes: notes}
}

// View is the assembled timeline for one set of criteria.
type View struct {
	Groups        []models.GroupedEvent `json:"groups"`
	Summary       Summary               `json:"summary"`
	ActiveFilters bool                  `json:"activeFilters"`
}

// Build runs the pipeline for the given criteria.
func (s *Service) Build(c Criteria) View {
	combined := Normalize(s.events.Events(), s.notes.Notes())
	filtered := Filter(combined, c)
	sorted := SortEvents(filtered)
	return View{
		Groups:        Group(sorted),
		Summary:       Summarize(filtered),
		ActiveFilters: c.Active(),
	}
}
