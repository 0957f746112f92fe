package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validReport(checkID string) Report {
	return Report{
		CheckID:   checkID,
		Property:  "sum",
		StartTime: time.Unix(100, 0).UTC(),
		MaxNodes:  4,
		Trials:    25,
		Seed:      7,
		Checked:   48,
		Outcome:   OutcomePassed,
		TraceHash: "trace-hash-abc",
	}
}

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	r := validReport("check-1")
	if err := store.Save(r); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load("check-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.CheckID != r.CheckID || loaded.Property != r.Property || loaded.TraceHash != r.TraceHash {
		t.Fatalf("loaded report mismatch: %+v", loaded)
	}
	if loaded.Checked != r.Checked || loaded.Seed != r.Seed {
		t.Fatalf("loaded report mismatch: %+v", loaded)
	}
}

func TestStore_ViolationsSerializeAsArrayNotNull(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save(validReport("check-2")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, ".treeproof", "checks", "check-2", "report.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "\"violations\": null") {
		t.Fatalf("violations must serialize as an array; got: %s", string(data))
	}
}

func TestStore_FailedReportCarriesViolations(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	r := validReport("check-3")
	r.Outcome = OutcomeFailed
	r.Violations = []Violation{{Path: "LR", Got: 4, Want: 6}}
	if err := store.Save(r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := store.Load("check-3")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Violations) != 1 || loaded.Violations[0].Path != "LR" {
		t.Fatalf("unexpected violations: %+v", loaded.Violations)
	}
}

func TestStore_RejectsInconsistentReports(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	failedWithout := validReport("check-4")
	failedWithout.Outcome = OutcomeFailed
	if err := store.Save(failedWithout); err == nil {
		t.Fatalf("expected error: failed report without violations")
	}

	passedWith := validReport("check-5")
	passedWith.Violations = []Violation{{Path: "", Got: 1, Want: 0}}
	if err := store.Save(passedWith); err == nil {
		t.Fatalf("expected error: passed report with violations")
	}
}

func TestStore_ListCheckIDsSorted(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	ids, err := store.ListCheckIDs()
	if err != nil {
		t.Fatalf("ListCheckIDs (empty): %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}

	for _, id := range []string{"zz", "aa", "mm"} {
		if err := store.Save(validReport(id)); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}
	ids, err = store.ListCheckIDs()
	if err != nil {
		t.Fatalf("ListCheckIDs: %v", err)
	}
	if len(ids) != 3 || ids[0] != "aa" || ids[1] != "mm" || ids[2] != "zz" {
		t.Fatalf("expected sorted ids, got %v", ids)
	}
}

func TestStore_LoadRejectsUnknownFields(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	dir := filepath.Join(base, ".treeproof", "checks", "tampered")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	junk := `{"check_id":"tampered","property":"sum","start_time":"2026-01-01T00:00:00Z",` +
		`"max_nodes":1,"trials":0,"seed":0,"checked":2,"outcome":"passed",` +
		`"trace_hash":"h","violations":[],"extra":true}`
	if err := os.WriteFile(filepath.Join(dir, "report.json"), []byte(junk), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := store.Load("tampered"); err == nil {
		t.Fatalf("expected unknown-field error")
	}
}

func TestNewCheckID_Unique(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	a, err := store.NewCheckID()
	if err != nil {
		t.Fatalf("NewCheckID: %v", err)
	}
	b, err := store.NewCheckID()
	if err != nil {
		t.Fatalf("NewCheckID: %v", err)
	}
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}
