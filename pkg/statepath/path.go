package statepath

import "strings"

// Separator delimits segments inside a selector path.
const Separator = "."

// Split breaks a selector path into its ordered segments.
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Resolve walks the tree along the given segments and returns the value found
// there. The boolean reports whether the full path exists; a stored nil value
// and a missing path are therefore distinguishable. Traversal never fails:
// any missing or non-map intermediate yields (nil, false).
func Resolve(segments []string, tree map[string]any) (any, bool) {
	if len(segments) == 0 {
		return nil, false
	}

	cur := tree
	for i, seg := range segments {
		if cur == nil {
			return nil, false
		}
		v, ok := cur[seg]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// Realize builds a nested tree containing only the given path, with value at
// the leaf. Realize("a.b.c", 123) yields {"a":{"b":{"c":123}}}. It is a pure
// function; the returned maps are freshly allocated.
func Realize(path string, value any) map[string]any {
	segments := Split(path)

	// Build from the innermost segment outward.
	leaf := segments[len(segments)-1]
	node := map[string]any{leaf: value}
	for i := len(segments) - 2; i >= 0; i-- {
		node = map[string]any{segments[i]: node}
	}
	return node
}

// Merge combines two trees at the top level only: every key of b overwrites
// the matching key in a copy of a. Neither argument is mutated. Fold Merge
// across several realized trees to layer them; later calls win key conflicts.
func Merge(a, b map[string]any) map[string]any {
	merged := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}
