package persist

import (
	"encoding/json"
	"sync"

	"github.com/statekit/persist/pkg/log"
	"github.com/statekit/persist/pkg/statepath"
	"github.com/statekit/persist/pkg/storage"
)

// Saver is the save pipeline: a middleware stage that snapshots configured
// parts of the state tree into a Store after every action it sees.
//
// Each Saver owns its own debounce slot, so independent Savers with
// different namespaces never cancel one another's pending writes.
type Saver struct {
	store storage.Store
	cfg   SaveConfig
	opts  options

	mu     sync.Mutex
	cancel CancelFunc // pending debounced save, nil when none
	gen    uint64     // invalidates in-flight timers after cancel or reschedule
}

// NewSaver builds a Saver. The configuration is normalized once here:
// invalid fields are reported through the logger and replaced by their
// defaults, never rejected.
func NewSaver(store storage.Store, cfg SaveConfig, opts ...Option) *Saver {
	o := applyOptions(opts)
	norm, issues := cfg.normalize()
	o.warnIssues("save", issues)
	return &Saver{store: store, cfg: norm, opts: o}
}

// Save is shorthand for NewSaver(store, cfg, opts...).Middleware().
func Save(store storage.Store, cfg SaveConfig, opts ...Option) Middleware {
	return NewSaver(store, cfg, opts...).Middleware()
}

// Middleware returns the pipeline stage. The stage forwards every action to
// the next stage first and returns next's result unchanged; persistence
// happens after forwarding, synchronously or on the debounce timer.
func (s *Saver) Middleware() Middleware {
	return func(api MiddlewareAPI) func(next Dispatch) Dispatch {
		return func(next Dispatch) Dispatch {
			return func(action any) any {
				result := next(action)

				if s.cfg.Debounce > 0 {
					s.schedule(api)
				} else {
					s.save(api.GetState())
				}

				return result
			}
		}
	}
}

// Flush performs any pending debounced save immediately and cancels its
// timer. It is a no-op when nothing is pending.
func (s *Saver) Flush(api MiddlewareAPI) {
	s.mu.Lock()
	pending := s.cancel != nil
	if pending {
		s.cancel()
		s.cancel = nil
		s.gen++
	}
	s.mu.Unlock()

	if pending {
		s.save(api.GetState())
	}
}

// Cancel drops any pending debounced save without executing it.
func (s *Saver) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.gen++
	}
}

// schedule arms the trailing-edge debounce: the previous pending save is
// cancelled and a new one is scheduled. State is read fresh when the timer
// fires, not here. The generation counter keeps a timer that was already
// firing while being replaced from saving stale state.
func (s *Saver) schedule(api MiddlewareAPI) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	g := s.gen
	s.cancel = s.opts.scheduler.Schedule(s.cfg.Debounce, func() {
		s.mu.Lock()
		if s.gen != g {
			s.mu.Unlock()
			return
		}
		s.cancel = nil
		s.mu.Unlock()

		s.save(api.GetState())
	})
}

// save serializes the configured parts of state into the store. Failures are
// logged and skipped; a save never aborts or propagates an error.
func (s *Saver) save(state State) {
	savesTotal.Inc()

	if len(s.cfg.States) == 0 {
		s.saveTree(state)
		return
	}

	var saved, removed []string
	for _, path := range s.cfg.States {
		key := storageKey(s.cfg.Namespace, path)

		value, found := statepath.Resolve(statepath.Split(path), state)
		if !found {
			// The path no longer resolves; drop its stored value so stale
			// data does not linger for a renamed or removed path.
			if err := s.store.Delete(key); err != nil {
				saveErrorsTotal.Inc()
				s.opts.logger.Error("remove stale key failed", componentField,
					log.String("key", key), log.Err(err))
				continue
			}
			removed = append(removed, key)
			removedKeysTotal.Inc()
			continue
		}

		data, err := json.Marshal(value)
		if err != nil {
			saveErrorsTotal.Inc()
			s.opts.logger.Error("serialize state failed", componentField,
				log.String("path", path), log.Err(err))
			continue
		}
		if err := s.store.Set(key, string(data)); err != nil {
			saveErrorsTotal.Inc()
			s.opts.logger.Error("write state failed", componentField,
				log.String("key", key), log.Err(err))
			continue
		}
		saved = append(saved, key)
		savedKeysTotal.Inc()
	}

	s.opts.logger.Debug("state saved", componentField,
		log.String("namespace", s.cfg.Namespace),
		log.Strings("keys", saved), log.Strings("removed", removed))
	if s.opts.events != nil {
		s.opts.events.OnSave(SaveEvent{
			Namespace: s.cfg.Namespace,
			Keys:      saved,
			Removed:   removed,
		})
	}
}

// saveTree serializes the whole state tree under the bare namespace key.
func (s *Saver) saveTree(state State) {
	data, err := json.Marshal(state)
	if err != nil {
		saveErrorsTotal.Inc()
		s.opts.logger.Error("serialize state failed", componentField, log.Err(err))
		return
	}
	if err := s.store.Set(s.cfg.Namespace, string(data)); err != nil {
		saveErrorsTotal.Inc()
		s.opts.logger.Error("write state failed", componentField,
			log.String("key", s.cfg.Namespace), log.Err(err))
		return
	}
	savedKeysTotal.Inc()

	s.opts.logger.Debug("state saved", componentField,
		log.String("namespace", s.cfg.Namespace), log.Bool("whole_tree", true))
	if s.opts.events != nil {
		s.opts.events.OnSave(SaveEvent{
			Namespace: s.cfg.Namespace,
			WholeTree: true,
			Keys:      []string{s.cfg.Namespace},
		})
	}
}
