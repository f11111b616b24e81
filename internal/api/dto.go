package api

import (
	"github.com/starford/vitalog/internal/models"
	"github.com/starford/vitalog/internal/timeline"
)

// CreateNoteRequest is the request body for creating a quick note.
type CreateNoteRequest struct {
	Text string `json:"text"`
}

// NoteListResponse wraps the journal contents, newest first.
type NoteListResponse struct {
	Notes []models.Note `json:"notes"`
	Total int           `json:"total"`
}

// TimelineResponse is the assembled timeline view plus the accordion state.
type TimelineResponse struct {
	Groups        []models.GroupedEvent `json:"groups"`
	Summary       timeline.Summary      `json:"summary"`
	ActiveFilters bool                  `json:"activeFilters"`
	Expanded      string                `json:"expanded,omitempty"`
}

// ToggleExpandRequest selects the date group to toggle.
type ToggleExpandRequest struct {
	Date string `json:"date"`
}

// ExpandResponse reports the resulting open group ("" when collapsed).
type ExpandResponse struct {
	Expanded string `json:"expanded"`
}

// ActionsResponse combines seeded and custom checklist actions with the
// checked-id set.
type ActionsResponse struct {
	Actions []models.ActionItem `json:"actions"`
	Checked []string            `json:"checked"`
}

// ToggleActionRequest selects the action to check or uncheck.
type ToggleActionRequest struct {
	ID string `json:"id"`
}

// AddActionRequest is the request body for a custom checklist action.
type AddActionRequest struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
}

// NotificationsResponse wraps the notification center state.
type NotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}
