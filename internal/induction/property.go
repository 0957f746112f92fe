package induction

import (
	"fmt"

	"treeproof/internal/tree"
)

// Property is a recursively defined tree function stated in proof form.
//
// Base is the function's value on the empty tree. Combine produces the
// value for a node from the values of its two subtrees and the node's own
// value. Direct is an independent evaluation of the same function that
// must not recurse through Combine; it is the oracle the inductive step is
// checked against.
type Property struct {
	Name    string
	Base    int64
	Combine func(left, right, value int64) int64
	Direct  func(t *tree.Tree) int64
}

// Eval is the recursion induced by p:
//
//	Eval(empty)      = p.Base
//	Eval(node l v r) = p.Combine(Eval(l), Eval(r), v)
func Eval(p Property, t *tree.Tree) int64 {
	if t == nil {
		return p.Base
	}
	return p.Combine(Eval(p, t.Left), Eval(p, t.Right), t.Value)
}

// SumProperty is the tutorial's worked example: the sum of all values.
func SumProperty() Property {
	return Property{
		Name: "sum",
		Base: 0,
		Combine: func(left, right, value int64) int64 {
			return left + value + right
		},
		Direct: directSum,
	}
}

// CountProperty counts nodes.
func CountProperty() Property {
	return Property{
		Name: "count",
		Base: 0,
		Combine: func(left, right, _ int64) int64 {
			return left + 1 + right
		},
		Direct: directCount,
	}
}

// HeightProperty measures the longest root-to-leaf path in nodes.
func HeightProperty() Property {
	return Property{
		Name: "height",
		Base: 0,
		Combine: func(left, right, _ int64) int64 {
			if left > right {
				return left + 1
			}
			return right + 1
		},
		Direct: directHeight,
	}
}

// PropertyByName resolves one of the built-in properties.
func PropertyByName(name string) (Property, error) {
	switch name {
	case "sum":
		return SumProperty(), nil
	case "count":
		return CountProperty(), nil
	case "height":
		return HeightProperty(), nil
	default:
		return Property{}, fmt.Errorf("unknown property %q (expected sum|count|height)", name)
	}
}

// The Direct oracles are deliberately iterative: they must not share the
// recursive structure whose correctness is being checked.

func directSum(t *tree.Tree) int64 {
	var total int64
	stack := []*tree.Tree{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		total += n.Value
		stack = append(stack, n.Left, n.Right)
	}
	return total
}

func directCount(t *tree.Tree) int64 {
	var total int64
	stack := []*tree.Tree{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		total++
		stack = append(stack, n.Left, n.Right)
	}
	return total
}

func directHeight(t *tree.Tree) int64 {
	if t == nil {
		return 0
	}
	var depth int64
	level := []*tree.Tree{t}
	for len(level) > 0 {
		depth++
		var next []*tree.Tree
		for _, n := range level {
			if n.Left != nil {
				next = append(next, n.Left)
			}
			if n.Right != nil {
				next = append(next, n.Right)
			}
		}
		level = next
	}
	return depth
}
