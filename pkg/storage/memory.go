package storage

import "github.com/puzpuzpuz/xsync/v3"

// MemoryStore is an in-process Store backed by a concurrent map. It is safe
// for use from multiple goroutines and never returns an error.
type MemoryStore struct {
	data *xsync.MapOf[string, string]
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: xsync.NewMapOf[string, string]()}
}

// Get returns the value for a key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := s.data.Load(key)
	return v, ok, nil
}

// Set inserts or overwrites a key-value pair.
func (s *MemoryStore) Set(key, value string) error {
	s.data.Store(key, value)
	return nil
}

// Delete removes a key.
func (s *MemoryStore) Delete(key string) error {
	s.data.Delete(key)
	return nil
}

// Keys enumerates every key in the store.
func (s *MemoryStore) Keys() ([]string, error) {
	keys := make([]string, 0, s.data.Size())
	s.data.Range(func(k, _ string) bool {
		keys = append(keys, k)
		return true
	})
	return keys, nil
}

// Len returns the number of keys currently stored.
func (s *MemoryStore) Len() int {
	return s.data.Size()
}
