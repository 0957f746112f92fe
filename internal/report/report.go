// Package report persists the results of proving runs under
// <baseDir>/.treeproof/checks/<check-id>/.
//
// All writes are atomic and durable (file sync + atomic rename + dir sync),
// so a crashed run never leaves a half-written report behind.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Outcome is the terminal status of a proving run.
type Outcome string

const (
	OutcomePassed Outcome = "passed"
	OutcomeFailed Outcome = "failed"
)

// Violation mirrors a failed proof obligation for persistence.
type Violation struct {
	Path string `json:"path"`
	Got  int64  `json:"got"`
	Want int64  `json:"want"`
}

// Report is the persistent record of one proving run.
//
// TraceHash ties the report to the canonical proof trace; two runs over the
// same corpus with the same property must produce the same trace hash.
type Report struct {
	CheckID    string      `json:"check_id"`
	Property   string      `json:"property"`
	StartTime  time.Time   `json:"start_time"`
	MaxNodes   int         `json:"max_nodes"`
	Trials     int         `json:"trials"`
	Seed       int64       `json:"seed"`
	Checked    int         `json:"checked"`
	Outcome    Outcome     `json:"outcome"`
	TraceHash  string      `json:"trace_hash"`
	Violations []Violation `json:"violations"`
}

func (r Report) Validate() error {
	var errs []error
	if strings.TrimSpace(r.CheckID) == "" {
		errs = append(errs, errors.New("check_id is required"))
	}
	if strings.TrimSpace(r.Property) == "" {
		errs = append(errs, errors.New("property is required"))
	}
	if r.StartTime.IsZero() {
		errs = append(errs, errors.New("start_time is required"))
	}
	switch r.Outcome {
	case OutcomePassed, OutcomeFailed:
		// ok
	default:
		errs = append(errs, fmt.Errorf("invalid outcome %q", r.Outcome))
	}
	if r.Outcome == OutcomeFailed && len(r.Violations) == 0 {
		errs = append(errs, errors.New("failed report has no violations"))
	}
	if r.Outcome == OutcomePassed && len(r.Violations) > 0 {
		errs = append(errs, errors.New("passed report has violations"))
	}
	if strings.TrimSpace(r.TraceHash) == "" {
		errs = append(errs, errors.New("trace_hash is required"))
	}
	if r.Checked < 0 {
		errs = append(errs, errors.New("checked must be >= 0"))
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
