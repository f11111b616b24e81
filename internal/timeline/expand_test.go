package timeline

import (
	"testing"

	"github.com/starford/vitalog/internal/prefstore"
)

func testExpansion(t *testing.T) (*Expansion, *prefstore.Store) {
	t.Helper()
	store := prefstore.New(prefstore.NewMemory())
	t.Cleanup(func() { store.Close() })
	return NewExpansion(store), store
}

func TestExpansionStartsCollapsed(t *testing.T) {
	e, _ := testExpansion(t)
	if got := e.Open(); got != "" {
		t.Errorf("initial open = %q, want collapsed", got)
	}
}

func TestToggleTwiceCollapses(t *testing.T) {
	e, _ := testExpansion(t)

	open, err := e.Toggle("2024-01-05")
	if err != nil {
		t.Fatal(err)
	}
	if open != "2024-01-05" {
		t.Errorf("open = %q", open)
	}

	open, err = e.Toggle("2024-01-05")
	if err != nil {
		t.Fatal(err)
	}
	if open != "" {
		t.Errorf("toggling the open group should collapse, got %q", open)
	}
}

func TestToggleOtherGroupSwitches(t *testing.T) {
	e, _ := testExpansion(t)

	if _, err := e.Toggle("2024-01-05"); err != nil {
		t.Fatal(err)
	}
	open, err := e.Toggle("2024-02-14")
	if err != nil {
		t.Fatal(err)
	}
	if open != "2024-02-14" {
		t.Errorf("open = %q, want 2024-02-14 (accordion: one at a time)", open)
	}
	if e.Open() != "2024-02-14" {
		t.Errorf("Open() = %q", e.Open())
	}
}

func TestExpansionPersistsByDateKey(t *testing.T) {
	e, store := testExpansion(t)

	if _, err := e.Toggle("2024-03-10"); err != nil {
		t.Fatal(err)
	}
	// A fresh controller over the same store sees the persisted key.
	e2 := NewExpansion(store)
	if got := e2.Open(); got != "2024-03-10" {
		t.Errorf("persisted open = %q", got)
	}
}
