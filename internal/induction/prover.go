package induction

import (
	"context"
	"fmt"

	"treeproof/internal/gen"
	"treeproof/internal/tree"
)

// Corpus describes the deterministic set of trees a Prover checks.
//
// The corpus is the union of an exhaustive part (every shape with up to
// MaxNodes nodes, always including the empty tree) and a randomized part
// (Trials seeded trees of up to RandomNodes nodes). Two identical Corpus
// values always denote the same trees.
type Corpus struct {
	MaxNodes    int
	Trials      int
	Seed        int64
	RandomNodes int
}

// DefaultRandomNodes bounds random trial sizes when the caller does not.
const DefaultRandomNodes = 48

// MaxExhaustiveNodes caps Corpus.MaxNodes; Catalan growth makes larger
// exhaustive corpora impractical.
const MaxExhaustiveNodes = 12

func (c Corpus) validate() error {
	if c.MaxNodes < 0 {
		return fmt.Errorf("max nodes is negative")
	}
	if c.MaxNodes > MaxExhaustiveNodes {
		return fmt.Errorf("max nodes %d is too large for exhaustive enumeration (limit %d)", c.MaxNodes, MaxExhaustiveNodes)
	}
	if c.Trials < 0 {
		return fmt.Errorf("trials is negative")
	}
	if c.RandomNodes < 0 {
		return fmt.Errorf("random nodes is negative")
	}
	return nil
}

// Outcome summarizes a proving run.
type Outcome struct {
	Property   string
	Checked    int
	Violations []StepViolation
	Trace      ProofTrace
}

// Passed reports whether every checked tree satisfied both proof obligations.
func (o *Outcome) Passed() bool {
	return o != nil && len(o.Violations) == 0
}

// Prover checks a property over a corpus, recording one event per tree.
type Prover struct {
	Property Property
	Sink     Sink
}

// NewProver constructs a prover. A nil sink means events are collected into
// the outcome's trace only.
func NewProver(p Property) (*Prover, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("property name is required")
	}
	if p.Combine == nil {
		return nil, fmt.Errorf("property %q has no combine step", p.Name)
	}
	if p.Direct == nil {
		return nil, fmt.Errorf("property %q has no direct oracle", p.Name)
	}
	return &Prover{Property: p}, nil
}

// Run checks every tree in the corpus. A violation does not stop the run;
// the remaining corpus is still checked so the trace describes the whole
// corpus. Run only stops early if ctx is cancelled.
func (pr *Prover) Run(ctx context.Context, corpus Corpus) (*Outcome, error) {
	if pr == nil {
		return nil, fmt.Errorf("nil prover")
	}
	if err := corpus.validate(); err != nil {
		return nil, fmt.Errorf("invalid corpus: %w", err)
	}

	rec := NewRecorder()
	out := &Outcome{Property: pr.Property.Name}

	check := func(t *tree.Tree) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out.Checked++
		ev := ProofEvent{
			TreeHash: tree.Hash(t).String(),
			Nodes:    tree.Count(t),
		}
		if v := CheckTree(pr.Property, t); v != nil {
			ev.Kind = EventStepFailed
			ev.FailPath = v.Path
			ev.Got = v.Got
			ev.Want = v.Want
			out.Violations = append(out.Violations, *v)
		} else if t == nil {
			ev.Kind = EventBaseCaseVerified
		} else {
			ev.Kind = EventStepVerified
		}
		rec.Record(ev)
		SafeRecord(pr.Sink, ev)
		return nil
	}

	for _, t := range gen.EnumerateUpTo(corpus.MaxNodes) {
		if err := check(t); err != nil {
			return nil, err
		}
	}

	randomNodes := corpus.RandomNodes
	if randomNodes == 0 {
		randomNodes = DefaultRandomNodes
	}
	for i := 0; i < corpus.Trials; i++ {
		// Trial i is a pure function of (seed, i): both the size and the
		// shape derive from the trial seed, never from shared rand state.
		trialSeed := corpus.Seed + int64(i)
		nodes := 1 + int(uint64(trialSeed*2654435761)%uint64(randomNodes))
		if err := check(gen.Random(trialSeed, nodes)); err != nil {
			return nil, err
		}
	}

	out.Trace = rec.Trace(pr.Property.Name)
	return out, nil
}

// SafeRecord records an event and guarantees inertness even if the sink is
// buggy. It intentionally swallows panics.
func SafeRecord(s Sink, event ProofEvent) {
	if s == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	s.Record(event)
}
