package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"treeproof/internal/induction"
	"treeproof/internal/log"
	"treeproof/internal/report"
	"treeproof/internal/tree"
)

// CLIResult is what an invocation produced, independent of printing.
//
// Value is set for the evaluation ops (sum, count, height); Report is set
// for check. main owns stdout so this layer stays testable.
type CLIResult struct {
	ExitCode int
	Value    *int64
	Report   *report.Report
}

// CheckRunner is the minimal proving interface the CLI wires into.
//
// This allows the CLI to prove exit-code mapping (including panic) in tests
// without depending on prover internals.
type CheckRunner interface {
	Run(ctx context.Context, corpus induction.Corpus) (*induction.Outcome, error)
}

// Execute is the default entrypoint for running a canonical invocation.
func Execute(ctx context.Context, inv Invocation) (CLIResult, error) {
	return ExecuteWithRunner(ctx, inv, nil)
}

// ExecuteWithRunner maps a canonical Invocation to engine execution. A nil
// runner selects the default prover for the invocation's property.
//
// Responsibilities:
//   - Initialize trace output before execution and finalize after execution,
//     even on panic/failure.
//   - Translate outcomes to semantic exit codes.
//   - Recover panics into ExitInternalError; nothing below this boundary
//     may take the process down.
func ExecuteWithRunner(ctx context.Context, inv Invocation, runner CheckRunner) (res CLIResult, execErr error) {
	res.ExitCode = ExitInternalError

	log.Configure(log.Config{Level: inv.LogLevel})
	logger := log.WithComponent("cli")

	prop, err := induction.PropertyByName(inv.Property)
	if err != nil {
		res.ExitCode = ExitInvalidInvocation
		return res, err
	}

	traceWriter, err := newTraceWriter(inv, prop.Name)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, err
	}
	var finalTrace *induction.ProofTrace
	defer func() {
		// Always finalize trace output deterministically.
		_ = traceWriter.Finalize(finalTrace)
	}()

	defer func() {
		if r := recover(); r != nil {
			res = CLIResult{ExitCode: ExitInternalError}
			finalTrace = nil
			execErr = fmt.Errorf("panic: %v", r)
		}
	}()

	switch inv.Op {
	case OpSum, OpCount, OpHeight:
		t, err := LoadTreeFromFile(inv.TreePath)
		if err != nil {
			res.ExitCode = ExitConfigError
			return res, err
		}
		logger.Debug().
			Str("op", string(inv.Op)).
			Str("tree_hash", tree.Hash(t).String()).
			Int64("nodes", tree.Count(t)).
			Msg("evaluating tree document")

		value := induction.Eval(prop, t)
		ev := induction.ProofEvent{
			TreeHash: tree.Hash(t).String(),
			Nodes:    tree.Count(t),
		}
		if v := induction.CheckTree(prop, t); v != nil {
			ev.Kind = induction.EventStepFailed
			ev.FailPath = v.Path
			ev.Got = v.Got
			ev.Want = v.Want
			tr := induction.ProofTrace{Property: prop.Name, Events: []induction.ProofEvent{ev}}
			finalTrace = &tr
			res.ExitCode = ExitViolation
			return res, v
		}
		if t == nil {
			ev.Kind = induction.EventBaseCaseVerified
		} else {
			ev.Kind = induction.EventStepVerified
		}
		tr := induction.ProofTrace{Property: prop.Name, Events: []induction.ProofEvent{ev}}
		finalTrace = &tr
		res.Value = &value
		res.ExitCode = ExitSuccess
		return res, nil

	case OpCheck:
		st, err := report.NewStore(inv.WorkDir)
		if err != nil {
			res.ExitCode = ExitConfigError
			return res, err
		}
		checkID, err := st.NewCheckID()
		if err != nil {
			res.ExitCode = ExitInternalError
			return res, err
		}
		if runner == nil {
			prover, err := induction.NewProver(prop)
			if err != nil {
				res.ExitCode = ExitInternalError
				return res, err
			}
			runner = prover
		}
		startTime := time.Now().UTC()
		outcome, err := runner.Run(ctx, induction.Corpus{
			MaxNodes: inv.MaxNodes,
			Trials:   inv.Trials,
			Seed:     inv.Seed,
		})
		if err != nil {
			res.ExitCode = ExitInternalError
			return res, err
		}
		if outcome == nil {
			res.ExitCode = ExitInternalError
			return res, fmt.Errorf("runner returned no outcome")
		}
		finalTrace = &outcome.Trace

		traceHash, err := outcome.Trace.Hash()
		if err != nil {
			res.ExitCode = ExitInternalError
			return res, err
		}
		rep := report.Report{
			CheckID:   checkID,
			Property:  prop.Name,
			StartTime: startTime,
			MaxNodes:  inv.MaxNodes,
			Trials:    inv.Trials,
			Seed:      inv.Seed,
			Checked:   outcome.Checked,
			Outcome:   report.OutcomePassed,
			TraceHash: traceHash,
		}
		for _, v := range outcome.Violations {
			rep.Outcome = report.OutcomeFailed
			rep.Violations = append(rep.Violations, report.Violation{Path: v.Path, Got: v.Got, Want: v.Want})
		}
		if err := st.Save(rep); err != nil {
			res.ExitCode = ExitConfigError
			return res, err
		}
		logger.Info().
			Str("check_id", checkID).
			Str("property", prop.Name).
			Int("checked", outcome.Checked).
			Int("violations", len(outcome.Violations)).
			Str("trace_hash", traceHash).
			Msg("proving run finished")

		res.Report = &rep
		if outcome.Passed() {
			res.ExitCode = ExitSuccess
		} else {
			res.ExitCode = ExitViolation
		}
		return res, nil

	default:
		res.ExitCode = ExitInvalidInvocation
		return res, fmt.Errorf("unknown op %q", inv.Op)
	}
}

type traceFileWriter struct {
	enabled  bool
	path     string
	property string
}

func newTraceWriter(inv Invocation, property string) (*traceFileWriter, error) {
	if !inv.Trace.Enabled {
		return &traceFileWriter{enabled: false}, nil
	}
	if inv.Trace.Path == "" {
		return nil, fmt.Errorf("trace enabled but path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(inv.Trace.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create trace dir: %w", err)
	}
	// Create an empty trace file eagerly so the destination is reserved and
	// so that even a panic results in a deterministic artifact.
	w := &traceFileWriter{enabled: true, path: inv.Trace.Path, property: property}
	return w, w.writeTrace(induction.ProofTrace{Property: property})
}

func (w *traceFileWriter) Finalize(tr *induction.ProofTrace) error {
	if w == nil || !w.enabled {
		return nil
	}
	if tr != nil {
		return w.writeTrace(*tr)
	}
	// No trace (internal error or panic): still emit a valid empty trace
	// for this property.
	return w.writeTrace(induction.ProofTrace{Property: w.property})
}

func (w *traceFileWriter) writeTrace(tr induction.ProofTrace) error {
	b, err := tr.CanonicalJSON()
	if err != nil {
		return err
	}
	return writeFileAtomic(w.path, b, 0o644)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync() // best-effort durability
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
