package persist

// SaveEvent describes one completed save.
type SaveEvent struct {
	Namespace string
	WholeTree bool
	Keys      []string // keys written
	Removed   []string // stale per-path keys deleted
}

// LoadEvent describes one completed load.
type LoadEvent struct {
	Namespace string
	WholeTree bool
	Keys      []string // keys found and merged
	Missing   []string // configured keys with no saved value
}

// ClearEvent describes one completed clear.
type ClearEvent struct {
	Namespace string
	Strict    bool
	Keys      []string // keys removed
}

// EventHandler receives notifications after each persistence operation.
// Handlers are called synchronously; implementations should return quickly.
type EventHandler interface {
	OnSave(event SaveEvent)
	OnLoad(event LoadEvent)
	OnClear(event ClearEvent)
}

// BaseEventHandler provides no-op defaults. Embed it to implement only the
// callbacks you care about.
type BaseEventHandler struct{}

func (BaseEventHandler) OnSave(SaveEvent)   {}
func (BaseEventHandler) OnLoad(LoadEvent)   {}
func (BaseEventHandler) OnClear(ClearEvent) {}
