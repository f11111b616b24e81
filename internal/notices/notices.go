// Package notices overlays persisted dismissed/read state onto the
// notification seeds carried by the insights dataset.
package notices

import (
	"sync"

	"github.com/starford/vitalog/internal/models"
	"github.com/starford/vitalog/internal/prefstore"
)

// StorageKey holds the per-notification state map, keyed by id.
const StorageKey = "healthNotifications"

type state struct {
	Dismissed bool `json:"dismissed"`
	Read      bool `json:"read"`
}

// Seed supplies the notification list from the dataset.
type Seed interface {
	Notifications() []models.Notification
}

// Center merges seeded notifications with persisted user state.
type Center struct {
	store *prefstore.Store
	seed  Seed
	mu    sync.Mutex
}

// New creates a notification center over seed, persisting state in store.
func New(store *prefstore.Store, seed Seed) *Center {
	return &Center{store: store, seed: seed}
}

// List returns every seeded notification with its current dismissed/read
// flags applied. Order follows the seed.
func (c *Center) List() []models.Notification {
	states := prefstore.Get(c.store, StorageKey, map[string]state{})
	seeded := c.seed.Notifications()
	out := make([]models.Notification, len(seeded))
	copy(out, seeded)
	for i := range out {
		if st, ok := states[out[i].ID]; ok {
			out[i].Dismissed = st.Dismissed
			out[i].Read = st.Read
		}
	}
	return out
}

// Unread counts notifications that are neither read nor dismissed.
func (c *Center) Unread() int {
	n := 0
	for _, notif := range c.List() {
		if !notif.Read && !notif.Dismissed {
			n++
		}
	}
	return n
}

// Dismiss marks one notification dismissed. Dismissing an id twice, or an
// id absent from the seed, changes nothing beyond the stored flag.
func (c *Center) Dismiss(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	states := prefstore.Get(c.store, StorageKey, map[string]state{})
	st := states[id]
	st.Dismissed = true
	states[id] = st
	return prefstore.Set(c.store, StorageKey, states)
}

// MarkAllRead flags every seeded notification as read.
func (c *Center) MarkAllRead() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	states := prefstore.Get(c.store, StorageKey, map[string]state{})
	for _, notif := range c.seed.Notifications() {
		st := states[notif.ID]
		st.Read = true
		states[notif.ID] = st
	}
	return prefstore.Set(c.store, StorageKey, states)
}
