package tree

// Tree is a binary tree of int64 values.
//
// A nil *Tree is the empty tree. A non-nil *Tree is a node holding a value
// and two subtrees, either of which may be empty.
//
// Trees are treated as immutable by every function in this package except
// Insert, which returns the (possibly new) root rather than mutating in
// place at the call site.
type Tree struct {
	Left  *Tree
	Value int64
	Right *Tree
}

// Node constructs a node from its parts.
func Node(left *Tree, value int64, right *Tree) *Tree {
	return &Tree{Left: left, Value: value, Right: right}
}

// Leaf constructs a node with two empty subtrees.
func Leaf(value int64) *Tree {
	return &Tree{Value: value}
}

// Sum returns the sum of all values in t.
//
// Definition:
//   - Sum(empty) = 0
//   - Sum(node l v r) = Sum(l) + v + Sum(r)
func Sum(t *Tree) int64 {
	if t == nil {
		return 0
	}
	return Sum(t.Left) + t.Value + Sum(t.Right)
}

// Count returns the number of nodes in t.
func Count(t *Tree) int64 {
	if t == nil {
		return 0
	}
	return Count(t.Left) + 1 + Count(t.Right)
}

// Height returns the length of the longest root-to-leaf path in t,
// counted in nodes. The empty tree has height 0; a single node has height 1.
func Height(t *Tree) int64 {
	if t == nil {
		return 0
	}
	lh := Height(t.Left)
	rh := Height(t.Right)
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

// Contains reports whether v occurs anywhere in t.
//
// It does not assume t is a search tree; both subtrees are searched.
func Contains(t *Tree, v int64) bool {
	if t == nil {
		return false
	}
	return t.Value == v || Contains(t.Left, v) || Contains(t.Right, v)
}

// Mirror returns a new tree with every node's subtrees swapped.
// The input is not modified.
func Mirror(t *Tree) *Tree {
	if t == nil {
		return nil
	}
	return &Tree{Left: Mirror(t.Right), Value: t.Value, Right: Mirror(t.Left)}
}

// Equal reports whether a and b have identical structure and values.
func Equal(a, b *Tree) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Value == b.Value && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
}

// InOrder returns all values of t in left-to-right order.
// The empty tree yields nil.
func InOrder(t *Tree) []int64 {
	if t == nil {
		return nil
	}
	out := InOrder(t.Left)
	out = append(out, t.Value)
	return append(out, InOrder(t.Right)...)
}

// Insert adds v to the search tree rooted at t and returns the new root.
//
// Duplicates are dropped: inserting a value already present returns a tree
// equal to the input. Insert only maintains the search property if t was
// built by Insert (or is empty); it is the intended way to build example
// trees from value sequences.
func Insert(t *Tree, v int64) *Tree {
	if t == nil {
		return Leaf(v)
	}
	switch {
	case v < t.Value:
		t.Left = Insert(t.Left, v)
	case v > t.Value:
		t.Right = Insert(t.Right, v)
	}
	return t
}

// FromValues builds a search tree by inserting values in the given order.
func FromValues(values ...int64) *Tree {
	var t *Tree
	for _, v := range values {
		t = Insert(t, v)
	}
	return t
}
