// Package statepath addresses locations inside a nested state tree using
// dot-delimited selector paths.
//
// A state tree is a map[string]any as produced by encoding/json. A selector
// path like "user.profile" names the value tree["user"]["profile"]. The
// package offers three pure operations:
//
//   - Resolve: read the value at a path, with an explicit found/absent result
//   - Realize: build a minimal tree containing only one path and its value
//   - Merge: combine two trees by top-level key overwrite
//
// Together they support round-tripping sub-trees through a flat key-value
// store: Resolve extracts a sub-tree for saving, Realize re-nests it on load,
// and Merge layers several realized trees into one.
package statepath
