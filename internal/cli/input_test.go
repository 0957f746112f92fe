package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseInvocation_DeterministicStruct(t *testing.T) {
	workDir := t.TempDir()
	args := []string{
		"--workdir", workDir,
		"--op", "sum",
		"--tree", "trees/../tree.json",
		"--trace", "traces/../trace.json",
	}

	inv1, err := ParseInvocation(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inv2, err := ParseInvocation(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(inv1, inv2) {
		t.Fatalf("expected identical invocations, got\n%#v\n%#v", inv1, inv2)
	}

	if inv1.WorkDir != filepath.Clean(workDir) {
		t.Fatalf("workdir not canonicalized: %q", inv1.WorkDir)
	}
	if inv1.TreePath != filepath.Join(workDir, "tree.json") {
		t.Fatalf("tree path not resolved/canonicalized: %q", inv1.TreePath)
	}
	if !inv1.Trace.Enabled || inv1.Trace.Path != filepath.Join(workDir, "trace.json") {
		t.Fatalf("trace not resolved/canonicalized: %#v", inv1.Trace)
	}
	if inv1.Property != "sum" {
		t.Fatalf("evaluation op must set its own property, got %q", inv1.Property)
	}
}

func TestParseInvocation_ResolvesRelativePathsAgainstWorkDir_NotCwd(t *testing.T) {
	workDir := t.TempDir()
	otherCwd := t.TempDir()

	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })

	if err := os.Chdir(otherCwd); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}

	inv, err := ParseInvocation([]string{"--workdir", workDir, "--op", "height", "--tree", "t.yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.TreePath != filepath.Join(workDir, "t.yaml") {
		t.Fatalf("expected tree under workdir, got %q", inv.TreePath)
	}
}

func TestParseInvocation_CheckDefaults(t *testing.T) {
	workDir := t.TempDir()
	inv, err := ParseInvocation([]string{"--workdir", workDir, "--op", "check"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Op != OpCheck || inv.Property != "sum" {
		t.Fatalf("unexpected invocation: %#v", inv)
	}
	if inv.MaxNodes != 6 || inv.Trials != 100 || inv.Seed != 1 {
		t.Fatalf("unexpected corpus defaults: %#v", inv)
	}
}

func TestParseInvocation_InvalidInvocations(t *testing.T) {
	workDir := t.TempDir()
	cases := map[string][]string{
		"missing workdir":        {"--op", "sum", "--tree", "t.json"},
		"relative workdir":       {"--workdir", "rel/dir", "--op", "sum", "--tree", "t.json"},
		"missing op":             {"--workdir", workDir, "--tree", "t.json"},
		"unknown op":             {"--workdir", workDir, "--op", "mul", "--tree", "t.json"},
		"eval without tree":      {"--workdir", workDir, "--op", "sum"},
		"check with tree":        {"--workdir", workDir, "--op", "check", "--tree", "t.json"},
		"check empty corpus":     {"--workdir", workDir, "--op", "check", "--max-nodes", "0", "--trials", "0"},
		"check negative trials":  {"--workdir", workDir, "--op", "check", "--trials", "-1"},
		"check max-nodes cap":    {"--workdir", workDir, "--op", "check", "--max-nodes", "13"},
		"check unknown property": {"--workdir", workDir, "--op", "check", "--property", "product"},
		"unknown flag":           {"--workdir", workDir, "--op", "sum", "--tree", "t.json", "--bogus", "1"},
		"positional args":        {"--workdir", workDir, "--op", "sum", "--tree", "t.json", "stray"},
	}
	for name, args := range cases {
		if _, err := ParseInvocation(args); err == nil {
			t.Fatalf("%s: expected error", name)
		} else if ExitCode(err) != ExitInvalidInvocation {
			t.Fatalf("%s: expected exit %d, got %d (%v)", name, ExitInvalidInvocation, ExitCode(err), err)
		}
	}
}

func TestExitCode_Mapping(t *testing.T) {
	if got := ExitCode(nil); got != ExitSuccess {
		t.Fatalf("nil error must map to success, got %d", got)
	}
	if got := ExitCode(os.ErrNotExist); got != ExitInternalError {
		t.Fatalf("unknown error must map to internal, got %d", got)
	}
	if got := ExitCode(&InvocationError{ExitCode: ExitConfigError, Message: "m"}); got != ExitConfigError {
		t.Fatalf("expected %d, got %d", ExitConfigError, got)
	}
	if got := ExitCode(&InvocationError{Message: "m"}); got != ExitInvalidInvocation {
		t.Fatalf("zero exit code defaults to invalid invocation, got %d", got)
	}
}
