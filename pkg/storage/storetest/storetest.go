// Package storetest provides a reusable contract test suite for Store
// implementations. Adapters in pkg/storage run it, and custom backends
// should too:
//
//	func TestMyStore(t *testing.T) {
//	    storetest.Run(t, "mystore", func(t *testing.T) storage.Store {
//	        return NewMyStore()
//	    })
//	}
package storetest

import (
	"sort"
	"testing"

	"github.com/statekit/persist/pkg/storage"
)

// Factory creates a fresh, empty Store for one test.
type Factory func(t *testing.T) storage.Store

// Run executes the full Store contract suite against the factory.
func Run(t *testing.T, name string, factory Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("SetGet", func(t *testing.T) { testSetGet(t, factory(t)) })
		t.Run("Overwrite", func(t *testing.T) { testOverwrite(t, factory(t)) })
		t.Run("Delete", func(t *testing.T) { testDelete(t, factory(t)) })
		t.Run("Keys", func(t *testing.T) { testKeys(t, factory(t)) })
		t.Run("EmptyValue", func(t *testing.T) { testEmptyValue(t, factory(t)) })
	})
}

func testSetGet(t *testing.T, s storage.Store) {
	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist after Set")
	}
	if v != "v" {
		t.Fatalf("Get = %q, want %q", v, "v")
	}

	_, ok, err = s.Get("missing")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if ok {
		t.Fatal("expected missing key to report ok=false")
	}
}

func testOverwrite(t *testing.T, s storage.Store) {
	if err := s.Set("k", "first"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("k", "second"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := s.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v, %v", v, ok, err)
	}
	if v != "second" {
		t.Fatalf("Get = %q, want %q", v, "second")
	}
}

func testDelete(t *testing.T, s storage.Store) {
	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, ok, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected key to be gone after Delete")
	}

	// Deleting a missing key is not an error.
	if err := s.Delete("missing"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func testKeys(t *testing.T, s storage.Store) {
	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected empty store, got keys %v", keys)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(k, k); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	keys, err = s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	sort.Strings(keys)
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("Keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys = %v, want %v", keys, want)
		}
	}
}

func testEmptyValue(t *testing.T, s storage.Store) {
	if err := s.Set("k", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected empty value to still exist")
	}
	if v != "" {
		t.Fatalf("Get = %q, want empty string", v)
	}
}
