package induction

import (
	"fmt"

	"treeproof/internal/tree"
)

// StepViolation reports a failed proof obligation at a specific subtree.
//
// Path addresses the subtree from the root: a string over {'L','R'}, empty
// for the root itself. Got is the value the recursion produced; Want is
// the independent evaluation at the same subtree.
type StepViolation struct {
	Property string
	Path     string
	Got      int64
	Want     int64
}

func (v *StepViolation) Error() string {
	if v == nil {
		return ""
	}
	where := v.Path
	if where == "" {
		where = "root"
	}
	return fmt.Sprintf("property %q: inductive step failed at %s: got %d, want %d", v.Property, where, v.Got, v.Want)
}

// CheckTree discharges both proof obligations for p on t.
//
// It walks t in post-order: subtree results are established before the node
// that combines them, which is exactly the induction hypothesis. At every
// subtree (including every empty one) the combined result is compared
// against p.Direct.
//
// The first violation encountered is returned; nil means both obligations
// hold everywhere in t. CheckTree never evaluates p.Direct on a subtree
// more than once.
func CheckTree(p Property, t *tree.Tree) *StepViolation {
	_, v := checkSubtree(p, t, "")
	return v
}

func checkSubtree(p Property, t *tree.Tree, path string) (int64, *StepViolation) {
	if t == nil {
		// Base case: the empty tree must yield Base directly.
		if want := p.Direct(nil); p.Base != want {
			return 0, &StepViolation{Property: p.Name, Path: path, Got: p.Base, Want: want}
		}
		return p.Base, nil
	}
	left, v := checkSubtree(p, t.Left, path+"L")
	if v != nil {
		return 0, v
	}
	right, v := checkSubtree(p, t.Right, path+"R")
	if v != nil {
		return 0, v
	}
	got := p.Combine(left, right, t.Value)
	if want := p.Direct(t); got != want {
		return 0, &StepViolation{Property: p.Name, Path: path, Got: got, Want: want}
	}
	return got, nil
}
