package storage

// Store is a synchronous string key-value store used as the persistence
// backend for saved state. Implementations persist values however they like
// (process memory, a JSON file, a browser bridge) but must keep the
// operations blocking and atomic per call; the pipelines apply no retry or
// backpressure on top.
type Store interface {
	// Get returns the value for a key. The boolean reports whether the key
	// exists; an error is returned only for actual read failures.
	Get(key string) (value string, ok bool, err error)

	// Set inserts or overwrites a key-value pair.
	Set(key, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys enumerates every key currently in the store, including keys
	// written by other users of the same backend. Order is unspecified.
	Keys() ([]string, error)
}
