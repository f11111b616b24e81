// Package dataset loads and serves the curated insights document: the static
// JSON supplying timeline events, diagnoses, medications, vitals, wearable
// metrics, notification seeds, and suggested actions. The document is
// treated as already validated upstream; only the sections this service
// consumes are decoded, and the raw bytes are retained for verbatim serving.
package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/starford/vitalog/internal/models"
)

type document struct {
	Timeline struct {
		Events []models.Event `json:"events"`
	} `json:"timeline"`
	Notifications []models.Notification `json:"notifications"`
	Actions       []models.ActionItem   `json:"actions"`
}

// Store holds the current insights document and supports atomic reload.
type Store struct {
	path string

	mu   sync.RWMutex
	raw  []byte
	etag string
	doc  document
}

// Load reads and decodes the document at path.
func Load(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the backing file and swaps the document in atomically.
// On failure the previously loaded document stays in place.
func (s *Store) Reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("dataset: read %s: %w", s.path, err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("dataset: parse %s: %w", s.path, err)
	}

	sum := sha256.Sum256(raw)

	s.mu.Lock()
	s.raw = raw
	s.etag = hex.EncodeToString(sum[:])
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// Raw returns the document bytes and their checksum, used as the HTTP ETag.
func (s *Store) Raw() ([]byte, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw, s.etag
}

// Events returns the curated timeline events.
func (s *Store) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, len(s.doc.Timeline.Events))
	copy(out, s.doc.Timeline.Events)
	return out
}

// Notifications returns the notification seeds.
func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, len(s.doc.Notifications))
	copy(out, s.doc.Notifications)
	return out
}

// Actions returns the suggested checklist actions.
func (s *Store) Actions() []models.ActionItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ActionItem, len(s.doc.Actions))
	copy(out, s.doc.Actions)
	return out
}
