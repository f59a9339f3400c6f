// Package persist saves selected parts of an application's state tree into a
// key-value store and restores them on startup.
//
// It plugs into any host state container with a unidirectional
// action-processing pipeline: the save middleware forwards each action,
// returns the downstream result unchanged, and then snapshots the configured
// selector paths (or the whole tree) as JSON into a storage.Store.
//
// # Saving
//
//	store := storage.NewMemoryStore()
//	mw := persist.Save(store, persist.SaveConfig{
//	    States:    []string{"user", "cart.items"},
//	    Namespace: "app",
//	    Debounce:  500 * time.Millisecond,
//	})
//
// With Debounce set, bursts of actions collapse into a single trailing
// write reflecting the newest state. Each Saver owns its own debounce slot;
// independent Savers never cancel each other.
//
// # Loading
//
//	state := persist.Load(store, persist.LoadConfig{
//	    States:    []string{"user", "cart.items"},
//	    Namespace: "app",
//	    Preloaded: defaults,
//	})
//
// Results from several namespaces combine with [CombineLoads]; a whole
// namespace is wiped with [Clear].
//
// # Error Policy
//
// No operation in this package aborts or returns an error. Invalid
// configuration fields are replaced by their defaults, and storage or
// serialization failures degrade to the documented fallback; every such case
// produces a log line through the injected [log.Logger] (or the package
// default set via [SetDefaultLogger]).
//
// # Observability
//
// Operations update VictoriaMetrics counters (persist_saves_total and
// friends) and, when a handler is registered via [WithEventHandler], emit
// typed events after each save, load and clear.
package persist
