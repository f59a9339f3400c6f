package persist

import (
	"github.com/statekit/persist/pkg/log"
	"github.com/statekit/persist/pkg/storage"
)

// Clear removes every key in the store belonging to the configured
// namespace. It enumerates all keys in the store, not only ones this library
// wrote, so foreign keys sharing the prefix are matched too.
//
// By default matching is a literal string-prefix comparison, kept for
// compatibility with previously written stores: namespace "app" also removes
// a key "app2_x". Set ClearConfig.Strict for delimiter-aware matching.
//
// Clear never fails: enumeration and delete errors are logged and the sweep
// continues with the remaining keys.
func Clear(store storage.Store, cfg ClearConfig, opts ...Option) {
	o := applyOptions(opts)
	norm, issues := cfg.normalize()
	o.warnIssues("clear", issues)
	clearsTotal.Inc()

	keys, err := store.Keys()
	if err != nil {
		o.logger.Error("enumerate store keys failed", componentField, log.Err(err))
		return
	}

	var removed []string
	for _, key := range keys {
		if !norm.matches(key) {
			continue
		}
		if err := store.Delete(key); err != nil {
			o.logger.Error("remove key failed", componentField,
				log.String("key", key), log.Err(err))
			continue
		}
		removed = append(removed, key)
		clearedKeysTotal.Inc()
	}

	o.logger.Debug("namespace cleared", componentField,
		log.String("namespace", norm.Namespace),
		log.Bool("strict", norm.Strict), log.Strings("keys", removed))
	if o.events != nil {
		o.events.OnClear(ClearEvent{
			Namespace: norm.Namespace,
			Strict:    norm.Strict,
			Keys:      removed,
		})
	}
}
