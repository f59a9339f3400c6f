package persist

import (
	"fmt"
	"strings"
	"time"
)

// DefaultNamespace prefixes storage keys when no namespace is configured.
const DefaultNamespace = "statekit"

// namespaceSep joins a namespace and a selector path into one storage key.
const namespaceSep = "_"

// SaveConfig configures the save middleware.
type SaveConfig struct {
	// States lists the selector paths to persist. Empty means the entire
	// state tree is saved under the bare namespace key.
	States []string

	// Namespace prefixes every storage key. Defaults to DefaultNamespace.
	Namespace string

	// Debounce delays each save and collapses bursts of actions into a
	// single trailing write. Zero saves synchronously on every action.
	Debounce time.Duration
}

// normalize applies defaults and drops invalid fields. It returns the usable
// config together with a description of every field that was replaced;
// construction never fails (invalid input degrades to defaults).
func (c SaveConfig) normalize() (SaveConfig, []string) {
	var issues []string
	out := c
	out.States, issues = normalizeStates(c.States, issues)
	out.Namespace, issues = normalizeNamespace(c.Namespace, issues)
	if c.Debounce < 0 {
		issues = append(issues, fmt.Sprintf("debounce %s is negative, using 0", c.Debounce))
		out.Debounce = 0
	}
	return out, issues
}

// LoadConfig configures a Load call.
type LoadConfig struct {
	// States lists the selector paths to restore. Empty means the whole
	// previously saved tree is loaded from the bare namespace key.
	States []string

	// Namespace prefixes every storage key. Defaults to DefaultNamespace.
	Namespace string

	// Preloaded is the base state loaded values are layered onto. In
	// whole-tree mode a stored tree replaces it entirely.
	Preloaded State

	// DisableWarnings suppresses the advisory log line emitted when a
	// configured path has no saved value yet.
	DisableWarnings bool

	// Immutable is deprecated and has no effect. It used to convert loaded
	// state into immutable collections; the feature was removed. Setting it
	// emits a one-time warning.
	//
	// Deprecated: the option is inert and will be dropped in a future
	// release.
	Immutable bool
}

func (c LoadConfig) normalize() (LoadConfig, []string) {
	var issues []string
	out := c
	out.States, issues = normalizeStates(c.States, issues)
	out.Namespace, issues = normalizeNamespace(c.Namespace, issues)
	return out, issues
}

// ClearConfig configures a Clear call.
type ClearConfig struct {
	// Namespace selects which keys to remove. Defaults to DefaultNamespace.
	Namespace string

	// Strict switches to delimiter-aware matching: only the bare namespace
	// key and keys starting with namespace+"_" are removed. The default is
	// a literal string-prefix sweep kept for compatibility, under which
	// namespace "app" also removes an unrelated key "app2_x".
	Strict bool
}

func (c ClearConfig) normalize() (ClearConfig, []string) {
	var issues []string
	out := c
	out.Namespace, issues = normalizeNamespace(c.Namespace, issues)
	return out, issues
}

// matches reports whether a storage key belongs to the configured namespace.
func (c ClearConfig) matches(key string) bool {
	if c.Strict {
		return key == c.Namespace || strings.HasPrefix(key, c.Namespace+namespaceSep)
	}
	return strings.HasPrefix(key, c.Namespace)
}

func normalizeStates(states []string, issues []string) ([]string, []string) {
	out := make([]string, 0, len(states))
	for _, path := range states {
		if strings.TrimSpace(path) == "" {
			issues = append(issues, "empty selector path dropped from states")
			continue
		}
		out = append(out, path)
	}
	return out, issues
}

func normalizeNamespace(ns string, issues []string) (string, []string) {
	if ns == "" {
		return DefaultNamespace, issues
	}
	if strings.TrimSpace(ns) == "" {
		issues = append(issues, fmt.Sprintf("blank namespace %q, using %q", ns, DefaultNamespace))
		return DefaultNamespace, issues
	}
	return ns, issues
}

// storageKey composes the per-path storage key.
func storageKey(namespace, path string) string {
	return namespace + namespaceSep + path
}
