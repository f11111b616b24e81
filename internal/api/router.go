package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Insights dataset.
	r.Get("/insights", h.GetInsights)

	// Timeline pipeline and persisted view state.
	r.Get("/timeline", h.GetTimeline)
	r.Get("/timeline/filters", h.GetFilters)
	r.Put("/timeline/filters", h.PutFilters)
	r.Get("/timeline/expanded", h.GetExpanded)
	r.Post("/timeline/expanded", h.ToggleExpanded)

	// Quick notes.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Delete("/notes/{id}", h.DeleteNote)

	// Action checklist.
	r.Get("/actions", h.GetActions)
	r.Post("/actions", h.AddAction)
	r.Post("/actions/toggle", h.ToggleAction)
	r.Delete("/actions/{id}", h.RemoveAction)

	// Notification center.
	r.Get("/notifications", h.GetNotifications)
	r.Post("/notifications/read", h.MarkNotificationsRead)
	r.Post("/notifications/{id}/dismiss", h.DismissNotification)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
