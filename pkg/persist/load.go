package persist

import (
	"encoding/json"
	"sync"

	"github.com/statekit/persist/pkg/log"
	"github.com/statekit/persist/pkg/statepath"
	"github.com/statekit/persist/pkg/storage"
)

// immutableWarnOnce gates the deprecation warning for LoadConfig.Immutable.
var immutableWarnOnce sync.Once

// Load reconstructs a state tree from previously saved values.
//
// With no selector paths configured, a tree stored under the bare namespace
// key fully replaces cfg.Preloaded; if nothing is stored, a copy of
// cfg.Preloaded comes back. With selector paths, each stored sub-tree is
// realized at its path and layered onto a copy of cfg.Preloaded by top-level
// merge; paths with no saved value leave the accumulator unchanged and emit
// one advisory log line each (suppressed by cfg.DisableWarnings).
//
// Load never fails: read and decode problems are logged and degrade to the
// preloaded base. The returned tree is always freshly built; cfg.Preloaded
// is never mutated.
func Load(store storage.Store, cfg LoadConfig, opts ...Option) State {
	o := applyOptions(opts)
	norm, issues := cfg.normalize()
	o.warnIssues("load", issues)
	loadsTotal.Inc()

	if norm.Immutable {
		immutableWarnOnce.Do(func() {
			o.logger.Warn("the Immutable load option is deprecated and has no effect", componentField)
		})
	}

	if len(norm.States) == 0 {
		return loadTree(store, norm, o)
	}
	return loadPaths(store, norm, o)
}

// loadTree handles whole-tree mode: stored data fully replaces the base.
func loadTree(store storage.Store, cfg LoadConfig, o options) State {
	raw, ok, err := store.Get(cfg.Namespace)
	if err != nil {
		loadErrorsTotal.Inc()
		o.logger.Error("read saved state failed", componentField,
			log.String("key", cfg.Namespace), log.Err(err))
	} else if ok {
		var tree State
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			loadErrorsTotal.Inc()
			o.logger.Error("parse saved state failed", componentField,
				log.String("key", cfg.Namespace), log.Err(err))
		} else {
			if o.events != nil {
				o.events.OnLoad(LoadEvent{
					Namespace: cfg.Namespace,
					WholeTree: true,
					Keys:      []string{cfg.Namespace},
				})
			}
			return tree
		}
	}

	if o.events != nil {
		o.events.OnLoad(LoadEvent{
			Namespace: cfg.Namespace,
			WholeTree: true,
			Missing:   []string{cfg.Namespace},
		})
	}
	return statepath.Merge(State{}, cfg.Preloaded)
}

// loadPaths handles per-path mode: realized sub-trees layered onto the base.
func loadPaths(store storage.Store, cfg LoadConfig, o options) State {
	acc := statepath.Merge(State{}, cfg.Preloaded)

	var found, missing []string
	for _, path := range cfg.States {
		key := storageKey(cfg.Namespace, path)

		raw, ok, err := store.Get(key)
		if err != nil {
			loadErrorsTotal.Inc()
			o.logger.Error("read saved state failed", componentField,
				log.String("key", key), log.Err(err))
			continue
		}
		if !ok {
			missing = append(missing, key)
			missingKeysTotal.Inc()
			if !cfg.DisableWarnings {
				o.logger.Warn("no saved state under key, expected on first run", componentField,
					log.String("key", key))
			}
			continue
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			loadErrorsTotal.Inc()
			o.logger.Error("parse saved state failed", componentField,
				log.String("key", key), log.Err(err))
			continue
		}

		acc = statepath.Merge(acc, statepath.Realize(path, value))
		found = append(found, key)
	}

	if o.events != nil {
		o.events.OnLoad(LoadEvent{
			Namespace: cfg.Namespace,
			Keys:      found,
			Missing:   missing,
		})
	}
	return acc
}

// CombineLoads folds several load results into one state tree by top-level
// key overwrite; later arguments win conflicts. A nil argument is replaced
// with an empty tree and reported through the package default logger;
// processing continues.
func CombineLoads(loads ...State) State {
	combined := State{}
	for i, load := range loads {
		if load == nil {
			defaultLogger.Warn("nil load result replaced with empty state", componentField,
				log.Int("arg", i))
			continue
		}
		combined = statepath.Merge(combined, load)
	}
	return combined
}
