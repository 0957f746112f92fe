package induction

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ProofTrace is the canonical, deterministic record of a proving run.
//
// Invariants:
//   - Must capture the property name and an ordered list of per-tree events.
//   - Must contain logical facts only: no timestamps, pointers, or any
//     runtime-dependent values.
//   - Byte-for-byte stability of CanonicalJSON is required; the trace hash
//     is defined over those bytes.
//
// Events are sorted via Canonicalize() using a fully-specified ordering, so
// the canonical form is independent of the order trees were checked in.
type ProofTrace struct {
	Property string
	Events   []ProofEvent
}

// ProofEventKind is the stable, canonical discriminator for ProofEvent.
//
// The string values are part of the trace's canonical bytes; do not rename.
type ProofEventKind string

const (
	EventBaseCaseVerified ProofEventKind = "BaseCaseVerified"
	EventStepVerified     ProofEventKind = "StepVerified"
	EventStepFailed       ProofEventKind = "StepFailed"
)

// ProofEvent records the outcome of checking one tree from the corpus.
//
// TreeHash identifies the tree; Nodes is its size. For StepFailed events,
// Path/Got/Want locate and describe the failed obligation. FailPath may be
// empty when the failure is at the root.
type ProofEvent struct {
	Kind     ProofEventKind
	TreeHash string
	Nodes    int64

	// FailPath, Got and Want are only meaningful for StepFailed.
	FailPath string
	Got      int64
	Want     int64
}

// Validate checks basic invariants and returns a descriptive error.
func (t *ProofTrace) Validate() error {
	if t == nil {
		return errors.New("trace is nil")
	}
	if t.Property == "" {
		return errors.New("property is required")
	}
	for i := range t.Events {
		e := t.Events[i]
		if e.Kind == "" {
			return fmt.Errorf("events[%d].kind is required", i)
		}
		if e.TreeHash == "" {
			return fmt.Errorf("events[%d].treeHash is required", i)
		}
		if e.Nodes < 0 {
			return fmt.Errorf("events[%d].nodes is negative", i)
		}
	}
	return nil
}

// Canonicalize sorts the trace into its canonical form.
//
// Ordering guarantee: the result is independent of checking order. Events
// are stably sorted by (nodes, treeHash, kindOrder, failPath).
func (t *ProofTrace) Canonicalize() {
	if t == nil {
		return
	}
	sort.SliceStable(t.Events, func(i, j int) bool {
		a := t.Events[i]
		b := t.Events[j]
		if a.Nodes != b.Nodes {
			return a.Nodes < b.Nodes
		}
		if a.TreeHash != b.TreeHash {
			return a.TreeHash < b.TreeHash
		}
		if kindOrder(a.Kind) != kindOrder(b.Kind) {
			return kindOrder(a.Kind) < kindOrder(b.Kind)
		}
		return a.FailPath < b.FailPath
	})
}

func kindOrder(k ProofEventKind) int {
	switch k {
	case EventBaseCaseVerified:
		return 10
	case EventStepVerified:
		return 20
	case EventStepFailed:
		return 30
	default:
		return 1000
	}
}

// CanonicalJSON returns the canonical JSON encoding of the trace.
// It canonicalizes a copy to avoid mutating the caller's slice.
func (t ProofTrace) CanonicalJSON() ([]byte, error) {
	copyTrace := ProofTrace{Property: t.Property}
	copyTrace.Events = make([]ProofEvent, len(t.Events))
	copy(copyTrace.Events, t.Events)
	copyTrace.Canonicalize()
	if err := copyTrace.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(&copyTrace)
}

// Hash returns the deterministic trace hash (sha256 hex) of the canonical
// JSON bytes.
func (t ProofTrace) Hash() (string, error) {
	b, err := t.CanonicalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// MarshalJSON ensures canonical field ordering and omission rules.
func (t ProofTrace) MarshalJSON() ([]byte, error) {
	if t.Property == "" {
		return nil, errors.New("property is required")
	}
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"property":`)
	pb, _ := json.Marshal(t.Property)
	buf.Write(pb)
	buf.WriteByte(',')

	buf.WriteString(`"events":[`)
	for i := range t.Events {
		if i > 0 {
			buf.WriteByte(',')
		}
		eb, err := json.Marshal(t.Events[i])
		if err != nil {
			return nil, err
		}
		buf.Write(eb)
	}
	buf.WriteByte(']')

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON ensures canonical field ordering and omission of fields that
// are only meaningful for failures.
func (e ProofEvent) MarshalJSON() ([]byte, error) {
	if e.Kind == "" {
		return nil, errors.New("kind is required")
	}
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"kind":`)
	kb, _ := json.Marshal(string(e.Kind))
	buf.Write(kb)

	buf.WriteString(`,"treeHash":`)
	hb, _ := json.Marshal(e.TreeHash)
	buf.Write(hb)

	buf.WriteString(`,"nodes":`)
	buf.WriteString(strconv.FormatInt(e.Nodes, 10))

	if e.Kind == EventStepFailed {
		if e.FailPath != "" {
			buf.WriteString(`,"failPath":`)
			fb, _ := json.Marshal(e.FailPath)
			buf.Write(fb)
		}
		buf.WriteString(`,"got":`)
		buf.WriteString(strconv.FormatInt(e.Got, 10))
		buf.WriteString(`,"want":`)
		buf.WriteString(strconv.FormatInt(e.Want, 10))
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
