// Package checklist manages the appointment-preparation action checklist:
// which suggested actions the user has checked off, plus user-added custom
// actions. Both survive restarts through the preference store.
package checklist

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/vitalog/internal/models"
	"github.com/starford/vitalog/internal/prefstore"
)

// Preference-store keys. CheckedKey holds a JSON array of checked action
// ids; CustomKey holds the user-added actions.
const (
	CheckedKey = "checkedActionItems"
	CustomKey  = "customActionItems"
)

// Valid priorities for custom actions.
var priorities = map[string]struct{}{
	"urgent":    {},
	"routine":   {},
	"follow-up": {},
}

// Checklist tracks checked state and custom actions over a seeded action
// list. Safe for concurrent use.
type Checklist struct {
	store *prefstore.Store
	mu    sync.Mutex
}

// New creates a Checklist backed by store.
func New(store *prefstore.Store) *Checklist {
	return &Checklist{store: store}
}

// Checked returns the set of checked action ids, sorted for stable output.
func (c *Checklist) Checked() []string {
	ids := prefstore.Get(c.store, CheckedKey, []string{})
	sort.Strings(ids)
	return ids
}

// Toggle flips the checked state of id and reports the new state.
func (c *Checklist) Toggle(id string) (checked bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := prefstore.Get(c.store, CheckedKey, []string{})
	kept := make([]string, 0, len(ids)+1)
	found := false
	for _, existing := range ids {
		if existing == id {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		kept = append(kept, id)
	}
	if err := prefstore.Set(c.store, CheckedKey, kept); err != nil {
		return false, err
	}
	return !found, nil
}

// Custom returns the user-added actions.
func (c *Checklist) Custom() []models.ActionItem {
	return prefstore.Get(c.store, CustomKey, []models.ActionItem{})
}

// AddCustom appends a user-defined action. Text that trims to empty is a
// silent no-op; an unknown priority falls back to "routine".
func (c *Checklist) AddCustom(text, priority string) (*models.ActionItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if _, ok := priorities[priority]; !ok {
		priority = "routine"
	}

	item := models.ActionItem{
		ID:       "custom-" + uuid.NewString(),
		Text:     text,
		Priority: priority,
		IsCustom: true,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	items := append(c.Custom(), item)
	if err := prefstore.Set(c.store, CustomKey, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCustom deletes a custom action by id. Idempotent.
func (c *Checklist) RemoveCustom(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.Custom()
	kept := make([]models.ActionItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return prefstore.Set(c.store, CustomKey, kept)
}
