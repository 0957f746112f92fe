// Package induction turns the inductive correctness argument for recursive
// tree functions into executable checks.
//
// A Property states a recursive function the way a proof states it: a Base
// value for the empty tree and a Combine step that produces the result for
// a node from the results of its subtrees. Eval is the recursion the
// property induces; CheckTree discharges both proof obligations on a
// concrete tree:
//
//   - Base case: every empty subtree yields Base.
//   - Inductive step: at every node, combining the already-verified subtree
//     results (the induction hypothesis) matches an independent,
//     non-recursive evaluation of the same subtree.
//
// A Prover runs a property over a deterministic corpus and records one
// event per tree into a ProofTrace, whose canonical bytes and hash are
// byte-for-byte stable across runs.
package induction
