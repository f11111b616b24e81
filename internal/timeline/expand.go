package timeline

import (
	"sync"

	"github.com/starford/vitalog/internal/prefstore"
)

// ExpandedKey is the preference-store key holding the open date group.
const ExpandedKey = "timeline-expanded"

// Expansion tracks which single date group is open. Accordion semantics:
// opening a group closes any other; the state is keyed by date string so it
// survives filtering and reordering. The open key persists across sessions.
type Expansion struct {
	store *prefstore.Store
	mu    sync.Mutex
}

// NewExpansion creates an Expansion controller backed by store.
func NewExpansion(store *prefstore.Store) *Expansion {
	return &Expansion{store: store}
}

// Open returns the currently open date key, or "" when collapsed.
func (e *Expansion) Open() string {
	return prefstore.Get(e.store, ExpandedKey, "")
}

// Toggle flips the group with the given date key: collapsing it when it is
// the open one, otherwise opening it (and implicitly closing any other).
// It returns the resulting open key.
func (e *Expansion) Toggle(dateKey string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := dateKey
	if e.Open() == dateKey {
		next = ""
	}
	if err := prefstore.Set(e.store, ExpandedKey, next); err != nil {
		return "", err
	}
	return next, nil
}
