package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/vitalog/internal/checklist"
	"github.com/starford/vitalog/internal/dataset"
	"github.com/starford/vitalog/internal/journal"
	"github.com/starford/vitalog/internal/notices"
	"github.com/starford/vitalog/internal/prefstore"
	"github.com/starford/vitalog/internal/timeline"
)

// Handler holds API route handlers.
type Handler struct {
	data      *dataset.Store
	journal   *journal.Journal
	tl        *timeline.Service
	prefs     *prefstore.Store
	expansion *timeline.Expansion
	actions   *checklist.Checklist
	notices   *notices.Center
}

// NewHandler creates a new Handler over the assembled components.
func NewHandler(
	data *dataset.Store,
	jrnl *journal.Journal,
	tl *timeline.Service,
	prefs *prefstore.Store,
) *Handler {
	return &Handler{
		data:      data,
		journal:   jrnl,
		tl:        tl,
		prefs:     prefs,
		expansion: timeline.NewExpansion(prefs),
		actions:   checklist.New(prefs),
		notices:   notices.New(prefs, data),
	}
}

// GetInsights handles GET /api/insights: the raw dataset document, served
// verbatim with its checksum as ETag.
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	raw, etag := h.data.Raw()
	if match := strings.Trim(r.Header.Get("If-None-Match"), `"`); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("ETag", `"`+etag+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// GetTimeline handles GET /api/timeline. Query params override the
// persisted criteria facet by facet; an absent param falls back to the
// stored value, so a bare GET reflects the saved dashboard state.
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	c := timeline.LoadCriteria(h.prefs)

	q := r.URL.Query()
	if q.Has("q") {
		c.SearchQuery = q.Get("q")
	}
	if q.Has("types") {
		c.EventTypes = nil
		if raw := q.Get("types"); raw != "" {
			c.EventTypes = strings.Split(raw, ",")
		}
	}
	if q.Has("start") {
		c.DateRange.Start = q.Get("start")
	}
	if q.Has("end") {
		c.DateRange.End = q.Get("end")
	}

	view := h.tl.Build(c)
	writeJSON(w, http.StatusOK, TimelineResponse{
		Groups:        view.Groups,
		Summary:       view.Summary,
		ActiveFilters: view.ActiveFilters,
		Expanded:      h.expansion.Open(),
	})
}

// GetFilters handles GET /api/timeline/filters.
func (h *Handler) GetFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, timeline.LoadCriteria(h.prefs))
}

// PutFilters handles PUT /api/timeline/filters: replaces the persisted
// criteria wholesale.
func (h *Handler) PutFilters(w http.ResponseWriter, r *http.Request) {
	var c timeline.Criteria
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := timeline.SaveCriteria(h.prefs, c); err != nil {
		slog.Error("save filters failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GetExpanded handles GET /api/timeline/expanded.
func (h *Handler) GetExpanded(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ExpandResponse{Expanded: h.expansion.Open()})
}

// ToggleExpanded handles POST /api/timeline/expanded.
func (h *Handler) ToggleExpanded(w http.ResponseWriter, r *http.Request) {
	var req ToggleExpandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Date == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("date is required"))
		return
	}
	open, err := h.expansion.Toggle(req.Date)
	if err != nil {
		slog.Error("toggle expansion failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ExpandResponse{Expanded: open})
}

// ListNotes handles GET /api/notes.
func (h *Handler) ListNotes(w http.ResponseWriter, _ *http.Request) {
	notes := h.journal.Notes()
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: notes, Total: len(notes)})
}

// CreateNote handles POST /api/notes. Text that trims to empty is rejected
// with 400; the journal itself treats it as a no-op.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.journal.Add(req.Text)
	if err != nil {
		slog.Error("create note failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if note == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// DeleteNote handles DELETE /api/notes/{id}. Idempotent: deleting an
// unknown id still returns 204.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	if err := h.journal.Delete(id); err != nil {
		slog.Error("delete note failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetActions handles GET /api/actions: seeded plus custom actions with the
// checked-id set.
func (h *Handler) GetActions(w http.ResponseWriter, _ *http.Request) {
	all := append(h.data.Actions(), h.actions.Custom()...)
	writeJSON(w, http.StatusOK, ActionsResponse{
		Actions: all,
		Checked: h.actions.Checked(),
	})
}

// ToggleAction handles POST /api/actions/toggle.
func (h *Handler) ToggleAction(w http.ResponseWriter, r *http.Request) {
	var req ToggleActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	checked, err := h.actions.Toggle(req.ID)
	if err != nil {
		slog.Error("toggle action failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": req.ID, "checked": checked})
}

// AddAction handles POST /api/actions.
func (h *Handler) AddAction(w http.ResponseWriter, r *http.Request) {
	var req AddActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	item, err := h.actions.AddCustom(req.Text, req.Priority)
	if err != nil {
		slog.Error("add action failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if item == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// RemoveAction handles DELETE /api/actions/{id}.
func (h *Handler) RemoveAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	if err := h.actions.RemoveCustom(id); err != nil {
		slog.Error("remove action failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetNotifications handles GET /api/notifications.
func (h *Handler) GetNotifications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, NotificationsResponse{
		Notifications: h.notices.List(),
		Unread:        h.notices.Unread(),
	})
}

// DismissNotification handles POST /api/notifications/{id}/dismiss.
func (h *Handler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	if err := h.notices.Dismiss(id); err != nil {
		slog.Error("dismiss notification failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkNotificationsRead handles POST /api/notifications/read.
func (h *Handler) MarkNotificationsRead(w http.ResponseWriter, _ *http.Request) {
	if err := h.notices.MarkAllRead(); err != nil {
		slog.Error("mark notifications read failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
