// Package models defines the domain types for Vitalog.
package models

// Recognized event kinds. The set is open-ended: consumers fall back to a
// default presentation for kinds they do not recognize.
const (
	KindVisit      = "visit"
	KindLab        = "lab"
	KindEmergency  = "emergency"
	KindMedication = "medication"
	KindNote       = "note"
)

// Event is one normalized timeline entry, either a curated medical event
// from the insights dataset or a user note projected into event shape.
type Event struct {
	Kind        string        `json:"type"`
	Title       string        `json:"title"`
	Date        string        `json:"date"`
	Badge       string        `json:"badge,omitempty"`
	Description string        `json:"description,omitempty"`
	Provider    string        `json:"provider,omitempty"`
	Location    string        `json:"location,omitempty"`
	Metrics     []Metric      `json:"metrics,omitempty"`
	Details     []EventDetail `json:"details,omitempty"`
	Outcome     string        `json:"outcome,omitempty"`
	// Timestamp is a display-formatted time string carried by notes and
	// used as the secondary sort key when two events share a date.
	Timestamp string `json:"timestamp,omitempty"`
	IsNote    bool   `json:"isNote,omitempty"`
}

// Metric is a lab or vital reading attached to an event.
type Metric struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Status string `json:"status,omitempty"`
}

// EventDetail is one intra-day sub-entry of a high-severity event.
type EventDetail struct {
	Time  string `json:"time"`
	Event string `json:"event"`
}

// Note is a free-text entry created by the user. Notes are immutable after
// creation and are owned exclusively by the journal.
type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
}

// GroupedEvent buckets events sharing one calendar date, for accordion-style
// display. Derived on every pipeline run, never persisted.
type GroupedEvent struct {
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}

// Notification is one entry of the notification center, seeded from the
// insights dataset and overlaid with persisted dismissed/read state.
type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Priority  string `json:"priority"`
	Dismissed bool   `json:"dismissed"`
	Read      bool   `json:"read"`
}

// ActionItem is one entry of the appointment-preparation checklist.
type ActionItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Priority string `json:"priority"`
	IsCustom bool   `json:"isCustom,omitempty"`
}
