// Package tree defines the binary integer tree and its recursive operations.
//
// It is intentionally split into:
//   - The datatype itself (Tree): an empty variant (nil) and a node variant
//     (Left, Value, Right)
//   - Recursive operations whose definitions mirror their inductive
//     correctness arguments (base case on the empty tree, combining step
//     on a node)
//   - A canonical encoding (CanonicalJSON) and identity (TreeHash) that are
//     invariant to how a tree was constructed
//
// Every operation treats nil as the empty tree; there is no separate
// sentinel value.
package tree
