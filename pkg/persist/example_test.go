package persist_test

import (
	"fmt"
	"sort"

	"github.com/statekit/persist/pkg/persist"
	"github.com/statekit/persist/pkg/storage"
)

// exampleContainer is a minimal host state container.
type exampleContainer struct {
	state persist.State
}

func (c *exampleContainer) GetState() persist.State { return c.state }
func (c *exampleContainer) Dispatch(action any) any { return action }

// Example demonstrates saving selected paths and loading them back.
func Example() {
	store := storage.NewMemoryStore()
	container := &exampleContainer{state: persist.State{
		"user": map[string]any{"name": "ada"},
		"ui":   map[string]any{"theme": "dark"},
	}}

	mw := persist.Save(store, persist.SaveConfig{
		States:    []string{"user"},
		Namespace: "app",
	})
	dispatch := mw(container)(func(action any) any { return action })
	dispatch("profile/update")

	keys, _ := store.Keys()
	sort.Strings(keys)
	fmt.Println(keys)

	restored := persist.Load(store, persist.LoadConfig{
		States:    []string{"user"},
		Namespace: "app",
	})
	fmt.Println(restored["user"].(map[string]any)["name"])

	// Output:
	// [app_user]
	// ada
}
