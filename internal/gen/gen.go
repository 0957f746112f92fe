// Package gen produces deterministic tree corpora for checking.
//
// Determinism rules:
//   - No generator consults time, environment variables, or the global
//     rand state.
//   - Enumerate returns shapes in a fully specified order, stable across
//     runs and architectures.
//   - Random is a pure function of its seed and size.
package gen

import (
	"math/rand"

	"treeproof/internal/tree"
)

// Enumerate returns every binary tree shape with exactly n nodes.
//
// Values are assigned from in-order position starting at 1, so each shape
// yields a distinct, reproducible tree. The result is ordered by recursive
// left-subtree size (0..n-1), which fixes a total order over shapes.
//
// The number of shapes is the n-th Catalan number; callers should keep n
// small (n <= 12 stays under a million trees).
func Enumerate(n int) []*tree.Tree {
	return enumerateRange(1, n)
}

// EnumerateUpTo returns every shape with 0..n nodes, smallest first.
// The first element is always the empty tree.
func EnumerateUpTo(n int) []*tree.Tree {
	out := []*tree.Tree{nil}
	for size := 1; size <= n; size++ {
		out = append(out, Enumerate(size)...)
	}
	return out
}

// enumerateRange builds all shapes whose in-order values are lo..lo+count-1.
func enumerateRange(lo int64, count int) []*tree.Tree {
	if count == 0 {
		return []*tree.Tree{nil}
	}
	var out []*tree.Tree
	for leftSize := 0; leftSize < count; leftSize++ {
		rightSize := count - 1 - leftSize
		rootValue := lo + int64(leftSize)
		lefts := enumerateRange(lo, leftSize)
		rights := enumerateRange(rootValue+1, rightSize)
		for _, l := range lefts {
			for _, r := range rights {
				out = append(out, tree.Node(l, rootValue, r))
			}
		}
	}
	return out
}

// Random returns a pseudo-random tree with exactly nodes nodes.
// The same (seed, nodes) pair always yields the same tree.
func Random(seed int64, nodes int) *tree.Tree {
	rng := rand.New(rand.NewSource(seed))
	return randomTree(rng, nodes)
}

func randomTree(rng *rand.Rand, nodes int) *tree.Tree {
	if nodes == 0 {
		return nil
	}
	leftSize := rng.Intn(nodes)
	// Values are drawn from a small signed range so sums exercise
	// cancellation, not just growth.
	v := rng.Int63n(2001) - 1000
	left := randomTree(rng, leftSize)
	right := randomTree(rng, nodes-1-leftSize)
	return tree.Node(left, v, right)
}

// Perfect returns the complete tree of the given depth with values assigned
// in level order starting at 1. Depth 0 is the empty tree.
func Perfect(depth int) *tree.Tree {
	var next int64
	return perfect(depth, &next)
}

func perfect(depth int, next *int64) *tree.Tree {
	if depth == 0 {
		return nil
	}
	*next++
	n := tree.Leaf(*next)
	n.Left = perfect(depth-1, next)
	n.Right = perfect(depth-1, next)
	return n
}

// LeftSpine returns the degenerate tree n, n-1, ..., 1 descending to the left.
func LeftSpine(n int) *tree.Tree {
	var t *tree.Tree
	for i := 1; i <= n; i++ {
		t = tree.Node(t, int64(i), nil)
	}
	return t
}

// RightSpine returns the degenerate tree 1, 2, ..., n descending to the right.
func RightSpine(n int) *tree.Tree {
	var t *tree.Tree
	for i := n; i >= 1; i-- {
		t = tree.Node(nil, int64(i), t)
	}
	return t
}
