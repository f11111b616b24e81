// Package journal implements the quick-note journal: an append/delete log of
// free-text, timestamped user notes persisted through the preference store.
package journal

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/vitalog/internal/models"
	"github.com/starford/vitalog/internal/prefstore"
)

// StorageKey is the preference-store key holding the full note list,
// newest first.
const StorageKey = "quickNotes"

// Mutation kinds reported to subscribers.
const (
	MutationCreated = "created"
	MutationDeleted = "deleted"
)

// Journal owns the note collection. All mutations persist the full list and
// notify subscribers in the same call. Safe for concurrent use; mutations
// are serialized by an internal lock, last write wins.
type Journal struct {
	store *prefstore.Store
	now   func() time.Time

	mu     sync.Mutex
	nextID int
	subs   map[int]func(kind, id string)
}

// New creates a Journal backed by store. Existing notes are loaded lazily on
// first access; a missing or corrupt stored list degrades to empty.
func New(store *prefstore.Store) *Journal {
	return &Journal{
		store: store,
		now:   time.Now,
		subs:  make(map[int]func(kind, id string)),
	}
}

// Notes returns the current note list, newest first. The slice is a copy;
// callers cannot mutate journal state through it.
func (j *Journal) Notes() []models.Note {
	return prefstore.Get(j.store, StorageKey, []models.Note{})
}

// Add prepends a new note with the current time. Text that trims to empty is
// rejected as a silent no-op and Add returns nil.
func (j *Journal) Add(text string) (*models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	now := j.now()
	note := models.Note{
		ID:        "note-" + uuid.NewString(),
		Text:      text,
		Timestamp: now.Format("03:04 PM"),
		Date:      now.Format("January 2, 2006"),
	}

	j.mu.Lock()
	notes := append([]models.Note{note}, j.Notes()...)
	if err := prefstore.Set(j.store, StorageKey, notes); err != nil {
		j.mu.Unlock()
		return nil, err
	}
	fns := j.subscribers()
	j.mu.Unlock()

	for _, fn := range fns {
		fn(MutationCreated, note.ID)
	}
	return &note, nil
}

// Delete removes the note with the given id. Deleting an unknown id is a
// no-op, so Delete is idempotent.
func (j *Journal) Delete(id string) error {
	j.mu.Lock()
	notes := j.Notes()
	kept := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		j.mu.Unlock()
		return nil
	}
	if err := prefstore.Set(j.store, StorageKey, kept); err != nil {
		j.mu.Unlock()
		return err
	}
	fns := j.subscribers()
	j.mu.Unlock()

	for _, fn := range fns {
		fn(MutationDeleted, id)
	}
	return nil
}

// Subscribe registers fn to run after every successful mutation with the
// mutation kind and the affected note id, so other mounted consumers can
// recompute without polling. The returned function cancels the subscription.
func (j *Journal) Subscribe(fn func(kind, id string)) func() {
	j.mu.Lock()
	defer j.mu.Unlock()
	id := j.nextID
	j.nextID++
	j.subs[id] = fn
	return func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		delete(j.subs, id)
	}
}

// subscribers snapshots the callback set. Caller must hold mu.
func (j *Journal) subscribers() []func(kind, id string) {
	fns := make([]func(kind, id string), 0, len(j.subs))
	for _, fn := range j.subs {
		fns = append(fns, fn)
	}
	return fns
}

// SetClock overrides the time source. Test hook.
func (j *Journal) SetClock(now func() time.Time) {
	j.now = now
}
