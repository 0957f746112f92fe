package induction

import "sync"

// Sink is the minimal interface the prover depends on for observation.
//
// Record must be inert:
//   - must not panic (implementations should guard themselves)
//   - must not return errors
//
// The caller must assume Record may be a no-op.
type Sink interface {
	Record(event ProofEvent)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(ProofEvent) {}

// Recorder is a concurrency-safe in-memory event collector.
//
// Recording uses a single mutex; this does not affect canonical trace
// ordering because ordering is computed after collection.
type Recorder struct {
	mu     sync.Mutex
	events []ProofEvent
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Record(event ProofEvent) {
	if r == nil {
		return
	}
	defer func() {
		_ = recover()
	}()

	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all recorded events.
func (r *Recorder) Snapshot() []ProofEvent {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ProofEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Trace builds a ProofTrace from the currently recorded events.
// The returned trace is independent from the recorder (events are copied).
func (r *Recorder) Trace(property string) ProofTrace {
	tr := ProofTrace{Property: property}
	tr.Events = r.Snapshot()
	tr.Canonicalize()
	return tr
}
