package induction

import (
	"testing"

	"treeproof/internal/gen"
	"treeproof/internal/tree"
)

func TestEval_SumMatchesTreeSum(t *testing.T) {
	p := SumProperty()
	for _, tr := range gen.EnumerateUpTo(5) {
		if got, want := Eval(p, tr), tree.Sum(tr); got != want {
			t.Fatalf("eval sum mismatch on %s: got %d, want %d", tree.CanonicalJSON(tr), got, want)
		}
	}
}

func TestEval_CountMatchesTreeCount(t *testing.T) {
	p := CountProperty()
	for _, tr := range gen.EnumerateUpTo(5) {
		if got, want := Eval(p, tr), tree.Count(tr); got != want {
			t.Fatalf("eval count mismatch: got %d, want %d", got, want)
		}
	}
}

func TestEval_HeightMatchesTreeHeight(t *testing.T) {
	p := HeightProperty()
	for _, tr := range gen.EnumerateUpTo(5) {
		if got, want := Eval(p, tr), tree.Height(tr); got != want {
			t.Fatalf("eval height mismatch on %s: got %d, want %d", tree.CanonicalJSON(tr), got, want)
		}
	}
}

func TestEval_BaseCase(t *testing.T) {
	for _, p := range []Property{SumProperty(), CountProperty(), HeightProperty()} {
		if got := Eval(p, nil); got != p.Base {
			t.Fatalf("property %q: Eval(empty) = %d, want base %d", p.Name, got, p.Base)
		}
	}
}

func TestDirectOracles_AgreeOnDegenerateShapes(t *testing.T) {
	// Deep spines would blow an accidental recursive oracle's clarity; the
	// iterative oracles must handle them and agree with the recursion.
	for _, tr := range []*tree.Tree{gen.LeftSpine(2000), gen.RightSpine(2000), gen.Perfect(10)} {
		for _, p := range []Property{SumProperty(), CountProperty(), HeightProperty()} {
			if got, want := p.Direct(tr), Eval(p, tr); got != want {
				t.Fatalf("property %q: direct %d != eval %d", p.Name, got, want)
			}
		}
	}
}

func TestPropertyByName(t *testing.T) {
	for _, name := range []string{"sum", "count", "height"} {
		p, err := PropertyByName(name)
		if err != nil {
			t.Fatalf("PropertyByName(%q): %v", name, err)
		}
		if p.Name != name {
			t.Fatalf("expected name %q, got %q", name, p.Name)
		}
	}
	if _, err := PropertyByName("product"); err == nil {
		t.Fatalf("expected error for unknown property")
	}
}
