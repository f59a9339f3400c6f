// Package storage defines the key-value store port the persistence pipelines
// write to, plus ready-made adapters.
//
// The Store interface models a synchronous string-keyed store with get, set,
// delete and full key enumeration. Two adapters are provided:
//
//   - MemoryStore: a concurrent in-process map, the default for embedding
//     and for tests
//   - FileStore: a single JSON file with atomic writes, used by the statectl
//     CLI to inspect and manage saved state on disk
//
// FileWatcher keeps a FileStore in sync with external writes to its backing
// file, for read-mostly consumers such as `statectl watch`.
//
// Implement Store yourself to bridge to any other backend; the storetest
// sub-package provides a contract suite to verify custom implementations.
package storage
