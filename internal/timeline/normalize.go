package timeline

import "github.com/starford/vitalog/internal/models"

// Normalize converts the two event sources into one uniform stream: curated
// events pass through unchanged and each note is projected into event shape.
// Nothing is deduplicated; structurally identical entries stay distinct.
func Normalize(static []models.Event, notes []models.Note) []models.Event {
	out := make([]models.Event, 0, len(static)+len(notes))
	out = append(out, static...)
	for _, n := range notes {
		out = append(out, models.Event{
			Kind:        models.KindNote,
			Title:       "Quick Note",
			Badge:       "Note",
			Description: n.Text,
			Date:        n.Date,
			Timestamp:   n.Timestamp,
			IsNote:      true,
		})
	}
	return out
}
