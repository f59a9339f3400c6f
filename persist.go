// Package persist saves selected parts of an application's in-memory state
// tree into a key-value store and restores them on initialization.
//
// Example usage:
//
//	store := storage.NewMemoryStore()
//
//	mw := persist.Save(store, persist.SaveConfig{
//	    States:    []string{"user", "cart.items"},
//	    Namespace: "app",
//	    Debounce:  500 * time.Millisecond,
//	})
//
//	state := persist.Load(store, persist.LoadConfig{
//	    States:    []string{"user", "cart.items"},
//	    Namespace: "app",
//	})
//
// This file re-exports the core API from pkg/persist for convenient access;
// import the sub-packages directly for selective use.
package persist

import (
	"github.com/statekit/persist/pkg/log"
	core "github.com/statekit/persist/pkg/persist"
	"github.com/statekit/persist/pkg/storage"
)

// Core types re-exported from pkg/persist.
type (
	// State is the host application's state tree.
	State = core.State

	// Dispatch processes one action and returns the pipeline's result.
	Dispatch = core.Dispatch

	// MiddlewareAPI is the middleware's view of the host state container.
	MiddlewareAPI = core.MiddlewareAPI

	// Middleware is one stage in the host's action-processing pipeline.
	Middleware = core.Middleware

	// SaveConfig configures the save middleware.
	SaveConfig = core.SaveConfig

	// LoadConfig configures a Load call.
	LoadConfig = core.LoadConfig

	// ClearConfig configures a Clear call.
	ClearConfig = core.ClearConfig

	// Saver is the save pipeline with its own debounce slot.
	Saver = core.Saver

	// Option configures optional behavior of a persistence operation.
	Option = core.Option

	// Store is the key-value backend port from pkg/storage.
	Store = storage.Store
)

// DefaultNamespace prefixes storage keys when no namespace is configured.
const DefaultNamespace = core.DefaultNamespace

// Save builds the save middleware. See pkg/persist for details.
func Save(store storage.Store, cfg SaveConfig, opts ...Option) Middleware {
	return core.Save(store, cfg, opts...)
}

// NewSaver builds a Saver whose middleware and debounce slot it owns.
func NewSaver(store storage.Store, cfg SaveConfig, opts ...Option) *Saver {
	return core.NewSaver(store, cfg, opts...)
}

// Load reconstructs a state tree from previously saved values.
func Load(store storage.Store, cfg LoadConfig, opts ...Option) State {
	return core.Load(store, cfg, opts...)
}

// CombineLoads folds several load results into one state tree.
func CombineLoads(loads ...State) State {
	return core.CombineLoads(loads...)
}

// Clear removes every key in the store belonging to the configured namespace.
func Clear(store storage.Store, cfg ClearConfig, opts ...Option) {
	core.Clear(store, cfg, opts...)
}

// WithLogger sets a custom logger for advisory and error output.
func WithLogger(logger log.Logger) Option {
	return core.WithLogger(logger)
}

// SetDefaultLogger installs the logger used when no per-call logger is given.
func SetDefaultLogger(logger log.Logger) {
	core.SetDefaultLogger(logger)
}
