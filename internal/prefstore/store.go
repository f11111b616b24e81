package prefstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Store wraps a Provider with a JSON codec and change notification.
// It is safe for concurrent use.
type Store struct {
	provider Provider

	mu     sync.Mutex
	nextID int
	subs   map[int]func(key string)
}

// New creates a Store on top of the given provider.
func New(provider Provider) *Store {
	return &Store{
		provider: provider,
		subs:     make(map[int]func(key string)),
	}
}

// Close closes the underlying provider.
func (s *Store) Close() error {
	return s.provider.Close()
}

// Subscribe registers fn to be called synchronously after every successful
// Set, with the key that changed. The returned function cancels the
// subscription; callers release it on teardown.
func (s *Store) Subscribe(fn func(key string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(key string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}

// Get returns the value stored under key, or def when the key is absent or
// the stored value does not parse. It never returns an error: corrupt state
// degrades to the default.
func Get[T any](s *Store, key string, def T) T {
	raw, err := s.provider.Load(key)
	if err != nil {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("prefstore: discarding corrupt value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return def
	}
	return v
}

// Set serializes v and durably stores it under key, then notifies
// subscribers. The write is synchronous; when Set returns nil the value is
// visible to every subsequent Get.
func Set[T any](s *Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("prefstore: marshal %s: %w", key, err)
	}
	if err := s.provider.Save(key, raw); err != nil {
		return fmt.Errorf("prefstore: save %s: %w", key, err)
	}
	s.notify(key)
	return nil
}
