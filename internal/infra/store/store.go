// Package store provides the engine's persistent key-value store.
// The engine reads its state at startup and writes the affected key after
// every mutation; the store is synchronous and durable enough for session
// continuity, not crash-atomic.
package store

// Store is the persistence contract the engine depends on.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Set durably writes the value for the key.
	Set(key string, value []byte) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error
	Close() error
}

// ─── In-Memory Store ────────────────────────────────────────────────────────

// Memory is a volatile Store, used by tests and as the degraded-mode
// fallback when the durable store fails mid-session.
type Memory struct {
	values map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(key string) error {
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error { return nil }
