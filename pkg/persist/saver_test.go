package persist_test

import (
	"testing"
	"time"

	"github.com/statekit/persist/pkg/persist"
	"github.com/statekit/persist/pkg/storage"
)

// dispatchThrough builds the middleware chain around a terminal next stage
// and returns the outermost dispatch.
func dispatchThrough(mw persist.Middleware, api persist.MiddlewareAPI, next persist.Dispatch) persist.Dispatch {
	return mw(api)(next)
}

func TestSaveWholeTree(t *testing.T) {
	store := storage.NewMemoryStore()
	container := newFakeContainer(persist.State{
		"user":     map[string]any{"name": "a"},
		"products": []any{1.0, 2.0},
	})

	dispatch := dispatchThrough(persist.Save(store, persist.SaveConfig{}), container,
		func(action any) any { return action })

	dispatch("anything")

	raw, ok, err := store.Get(persist.DefaultNamespace)
	if err != nil || !ok {
		t.Fatalf("Get(%s) = %v, %v, %v", persist.DefaultNamespace, raw, ok, err)
	}
	want := `{"products":[1,2],"user":{"name":"a"}}`
	if raw != want {
		t.Fatalf("stored = %s, want %s", raw, want)
	}
}

func TestSaveSelectedPaths(t *testing.T) {
	store := storage.NewMemoryStore()
	container := newFakeContainer(persist.State{
		"user":     map[string]any{"name": "a"},
		"products": []any{1.0, 2.0},
	})

	dispatch := dispatchThrough(
		persist.Save(store, persist.SaveConfig{States: []string{"user"}, Namespace: "app"}),
		container, func(action any) any { return action })

	dispatch(nil)

	raw, ok, _ := store.Get("app_user")
	if !ok {
		t.Fatal("expected app_user to be written")
	}
	if raw != `{"name":"a"}` {
		t.Fatalf("app_user = %s", raw)
	}

	if _, ok, _ := store.Get("app_products"); ok {
		t.Fatal("app_products should not have been written")
	}
}

func TestSaveNestedPath(t *testing.T) {
	store := storage.NewMemoryStore()
	container := newFakeContainer(persist.State{
		"user": map[string]any{"profile": map[string]any{"name": "a"}},
	})

	dispatch := dispatchThrough(
		persist.Save(store, persist.SaveConfig{States: []string{"user.profile"}, Namespace: "app"}),
		container, func(action any) any { return action })

	dispatch(nil)

	raw, ok, _ := store.Get("app_user.profile")
	if !ok || raw != `{"name":"a"}` {
		t.Fatalf("app_user.profile = %q, %v", raw, ok)
	}
}

func TestSaveRemovesStaleKey(t *testing.T) {
	store := storage.NewMemoryStore()
	if err := store.Set("app_user", `{"name":"old"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// The state shape changed: "user" no longer exists.
	container := newFakeContainer(persist.State{"account": map[string]any{}})

	dispatch := dispatchThrough(
		persist.Save(store, persist.SaveConfig{States: []string{"user"}, Namespace: "app"}),
		container, func(action any) any { return action })

	dispatch(nil)

	if _, ok, _ := store.Get("app_user"); ok {
		t.Fatal("expected stale app_user key to be removed")
	}
}

func TestSavePassesThroughResult(t *testing.T) {
	store := storage.NewMemoryStore()
	container := newFakeContainer(persist.State{})

	var order []string
	next := func(action any) any {
		order = append(order, "next")
		return "next-result"
	}

	dispatch := dispatchThrough(persist.Save(store, persist.SaveConfig{}), container, next)

	got := dispatch("action")
	if got != "next-result" {
		t.Fatalf("dispatch = %v, want next-result", got)
	}
	if len(order) != 1 || order[0] != "next" {
		t.Fatalf("next was not called exactly once: %v", order)
	}
}

func TestSaveDebounceSingleTrailingWrite(t *testing.T) {
	store := storage.NewMemoryStore()
	container := newFakeContainer(persist.State{"n": 1.0})
	sched := &manualScheduler{}

	dispatch := dispatchThrough(
		persist.Save(store, persist.SaveConfig{Debounce: 500 * time.Millisecond},
			persist.WithScheduler(sched)),
		container, func(action any) any { return action })

	dispatch("first")
	container.SetState(persist.State{"n": 2.0})
	dispatch("second")

	// Nothing written while the window is open.
	if store.Len() != 0 {
		t.Fatalf("expected no writes before the timer fires, got %d keys", store.Len())
	}
	if got := sched.scheduledCount(); got != 2 {
		t.Fatalf("scheduled %d calls, want 2", got)
	}

	sched.fireDue()

	// Exactly one write, reflecting the state at the time of the second call.
	if store.Len() != 1 {
		t.Fatalf("expected exactly one key, got %d", store.Len())
	}
	raw, ok, _ := store.Get(persist.DefaultNamespace)
	if !ok || raw != `{"n":2}` {
		t.Fatalf("stored = %q, %v, want {\"n\":2}", raw, ok)
	}
}

func TestSaveDebounceReadsStateAtFireTime(t *testing.T) {
	store := storage.NewMemoryStore()
	container := newFakeContainer(persist.State{"n": 1.0})
	sched := &manualScheduler{}

	dispatch := dispatchThrough(
		persist.Save(store, persist.SaveConfig{Debounce: time.Second},
			persist.WithScheduler(sched)),
		container, func(action any) any { return action })

	dispatch(nil)

	// The state moves on after dispatch but before the timer fires.
	container.SetState(persist.State{"n": 9.0})
	sched.fireDue()

	raw, ok, _ := store.Get(persist.DefaultNamespace)
	if !ok || raw != `{"n":9}` {
		t.Fatalf("stored = %q, %v, want {\"n\":9}", raw, ok)
	}
}

func TestSaverCancelDropsPendingSave(t *testing.T) {
	store := storage.NewMemoryStore()
	container := newFakeContainer(persist.State{"n": 1.0})
	sched := &manualScheduler{}

	saver := persist.NewSaver(store, persist.SaveConfig{Debounce: time.Second},
		persist.WithScheduler(sched))
	dispatch := dispatchThrough(saver.Middleware(), container,
		func(action any) any { return action })

	dispatch(nil)
	saver.Cancel()
	sched.fireDue()

	if store.Len() != 0 {
		t.Fatalf("expected cancelled save to never execute, got %d keys", store.Len())
	}
}

func TestSaverFlushWritesImmediately(t *testing.T) {
	store := storage.NewMemoryStore()
	container := newFakeContainer(persist.State{"n": 1.0})
	sched := &manualScheduler{}

	saver := persist.NewSaver(store, persist.SaveConfig{Debounce: time.Second},
		persist.WithScheduler(sched))
	dispatch := dispatchThrough(saver.Middleware(), container,
		func(action any) any { return action })

	dispatch(nil)
	saver.Flush(container)

	raw, ok, _ := store.Get(persist.DefaultNamespace)
	if !ok || raw != `{"n":1}` {
		t.Fatalf("stored after Flush = %q, %v", raw, ok)
	}

	// The original timer must not produce a second write.
	sched.fireDue()
	if store.Len() != 1 {
		t.Fatalf("expected one key after fire, got %d", store.Len())
	}
}

func TestIndependentSaversDoNotCancelEachOther(t *testing.T) {
	store := storage.NewMemoryStore()
	containerA := newFakeContainer(persist.State{"a": 1.0})
	containerB := newFakeContainer(persist.State{"b": 2.0})
	sched := &manualScheduler{}

	dispatchA := dispatchThrough(
		persist.Save(store, persist.SaveConfig{Namespace: "nsa", Debounce: time.Second},
			persist.WithScheduler(sched)),
		containerA, func(action any) any { return action })
	dispatchB := dispatchThrough(
		persist.Save(store, persist.SaveConfig{Namespace: "nsb", Debounce: time.Second},
			persist.WithScheduler(sched)),
		containerB, func(action any) any { return action })

	dispatchA(nil)
	dispatchB(nil)
	sched.fireDue()

	if _, ok, _ := store.Get("nsa"); !ok {
		t.Fatal("saver A's write was lost")
	}
	if _, ok, _ := store.Get("nsb"); !ok {
		t.Fatal("saver B's write was lost")
	}
}

func TestSaveEventEmitted(t *testing.T) {
	store := storage.NewMemoryStore()
	container := newFakeContainer(persist.State{"user": map[string]any{"name": "a"}})
	events := &recordingEvents{}

	dispatch := dispatchThrough(
		persist.Save(store, persist.SaveConfig{States: []string{"user", "gone"}, Namespace: "app"},
			persist.WithEventHandler(events)),
		container, func(action any) any { return action })

	dispatch(nil)

	if len(events.saves) != 1 {
		t.Fatalf("expected one save event, got %d", len(events.saves))
	}
	e := events.saves[0]
	if e.Namespace != "app" || e.WholeTree {
		t.Fatalf("event = %+v", e)
	}
	if len(e.Keys) != 1 || e.Keys[0] != "app_user" {
		t.Fatalf("event keys = %v", e.Keys)
	}
	if len(e.Removed) != 1 || e.Removed[0] != "app_gone" {
		t.Fatalf("event removed = %v", e.Removed)
	}
}
