package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/vitalog/internal/models"
	"github.com/starford/vitalog/internal/prefstore"
)

func testJournal(t *testing.T) (*Journal, *prefstore.Store) {
	t.Helper()
	store := prefstore.New(prefstore.NewMemory())
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func TestAddPrependsNote(t *testing.T) {
	j, _ := testJournal(t)

	first, err := j.Add("Felt dizzy")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := j.Add("Slept badly")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	notes := j.Notes()
	if len(notes) != 2 {
		t.Fatalf("len = %d, want 2", len(notes))
	}
	if notes[0].ID != second.ID {
		t.Errorf("newest note not at index 0")
	}
	if notes[1].ID != first.ID {
		t.Errorf("older note not at index 1")
	}
	if notes[0].Text != "Slept badly" {
		t.Errorf("text = %q", notes[0].Text)
	}
}

func TestAddRejectsEmptyText(t *testing.T) {
	j, _ := testJournal(t)

	for _, text := range []string{"", "   ", "\n\t  "} {
		note, err := j.Add(text)
		if err != nil {
			t.Fatalf("Add(%q): %v", text, err)
		}
		if note != nil {
			t.Errorf("Add(%q) created a note", text)
		}
	}
	if got := len(j.Notes()); got != 0 {
		t.Errorf("journal length = %d, want 0", got)
	}
}

func TestAddFormatsTimestampAndDate(t *testing.T) {
	j, _ := testJournal(t)
	j.SetClock(func() time.Time {
		return time.Date(2024, time.March, 5, 14, 7, 0, 0, time.Local)
	})

	note, err := j.Add("checkup question")
	if err != nil {
		t.Fatal(err)
	}
	if note.Timestamp != "02:07 PM" {
		t.Errorf("timestamp = %q, want 02:07 PM", note.Timestamp)
	}
	if note.Date != "March 5, 2024" {
		t.Errorf("date = %q, want March 5, 2024", note.Date)
	}
	if !strings.HasPrefix(note.ID, "note-") {
		t.Errorf("id = %q, want note- prefix", note.ID)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	j, _ := testJournal(t)

	note, err := j.Add("to be removed")
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Delete(note.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if got := len(j.Notes()); got != 0 {
		t.Fatalf("len = %d after delete", got)
	}
	// Second delete of the same id changes nothing.
	if err := j.Delete(note.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if got := len(j.Notes()); got != 0 {
		t.Errorf("len = %d after repeat delete", got)
	}
}

func TestMutationsPersistUnderStorageKey(t *testing.T) {
	j, store := testJournal(t)

	if _, err := j.Add("persisted"); err != nil {
		t.Fatal(err)
	}
	stored := prefstore.Get(store, StorageKey, []models.Note{})
	if len(stored) != 1 || stored[0].Text != "persisted" {
		t.Errorf("stored notes = %+v", stored)
	}
}

func TestSubscribersNotifiedOnMutation(t *testing.T) {
	j, _ := testJournal(t)

	type mutation struct{ kind, id string }
	var fired []mutation
	cancel := j.Subscribe(func(kind, id string) {
		fired = append(fired, mutation{kind, id})
	})

	note, err := j.Add("hello")
	if err != nil {
		t.Fatal(err)
	}
	if len(fired) != 1 || fired[0] != (mutation{MutationCreated, note.ID}) {
		t.Errorf("after add fired = %+v", fired)
	}

	// Rejected add must not broadcast.
	if _, err := j.Add("  "); err != nil {
		t.Fatal(err)
	}
	if len(fired) != 1 {
		t.Errorf("fired = %d after rejected add, want 1", len(fired))
	}

	if err := j.Delete(note.ID); err != nil {
		t.Fatal(err)
	}
	if len(fired) != 2 || fired[1] != (mutation{MutationDeleted, note.ID}) {
		t.Errorf("after delete fired = %+v", fired)
	}

	// No-op delete must not broadcast.
	if err := j.Delete(note.ID); err != nil {
		t.Fatal(err)
	}
	if len(fired) != 2 {
		t.Errorf("fired = %d after no-op delete, want 2", len(fired))
	}

	cancel()
	if _, err := j.Add("after cancel"); err != nil {
		t.Fatal(err)
	}
	if len(fired) != 2 {
		t.Errorf("subscriber fired after cancel")
	}
}

func TestCorruptStoredListDegradesToEmpty(t *testing.T) {
	mem := prefstore.NewMemory()
	store := prefstore.New(mem)
	t.Cleanup(func() { store.Close() })

	if err := mem.Save(StorageKey, []byte("}{corrupt")); err != nil {
		t.Fatal(err)
	}
	j := New(store)
	if got := len(j.Notes()); got != 0 {
		t.Errorf("len = %d, want 0 for corrupt stored list", got)
	}
	// And the journal recovers on the next write.
	if _, err := j.Add("fresh start"); err != nil {
		t.Fatal(err)
	}
	if got := len(j.Notes()); got != 1 {
		t.Errorf("len = %d after recovery write, want 1", got)
	}
}
