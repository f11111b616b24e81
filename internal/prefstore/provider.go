// Package prefstore implements the persisted key/value preference layer.
//
// Values are JSON-encoded on write and decoded on read. Reads fail soft:
// a missing key or a corrupt stored value yields the caller's default,
// never an error. Writes are synchronous and immediately durable.
package prefstore

// Provider is the raw byte-level backing store for preferences.
type Provider interface {
	// Load returns the stored raw value for key, or apperr.ErrNotFound.
	Load(key string) ([]byte, error)
	// Save durably stores raw under key, replacing any previous value.
	Save(key string, raw []byte) error
	// Close releases the backing store.
	Close() error
}
