package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"treeproof/internal/induction"
)

const (
	ExitSuccess           = 0
	ExitViolation         = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

// Op selects what a treeproof invocation does.
type Op string

const (
	OpSum    Op = "sum"
	OpCount  Op = "count"
	OpHeight Op = "height"
	OpCheck  Op = "check"
)

type TraceConfig struct {
	Enabled bool
	Path    string
}

// Invocation is the fully canonicalized, deterministic description of a run.
//
// All paths are normalized (Clean) and all relative paths are resolved
// relative to WorkDir.
//
// NOTE: WorkDir is required and must be absolute; this prevents any
// dependency on the process current working directory.
type Invocation struct {
	WorkDir  string
	Op       Op
	TreePath string
	Property string
	Trace    TraceConfig
	MaxNodes int
	Trials   int
	Seed     int64
	LogLevel string

	OriginalTree  string
	OriginalTrace string
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation parses CLI flags into a canonical Invocation.
//
// Determinism goals:
//   - Does not read env vars.
//   - Does not read/assume the process CWD.
//   - Requires WorkDir to be explicit and absolute.
func ParseInvocation(args []string) (Invocation, error) {
	fs := flag.NewFlagSet("treeproof", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	var workDir string
	var op string
	var treePath string
	var tracePath string
	var property string
	var maxNodes int
	var trials int
	var seed int64
	var logLevel string

	fs.StringVar(&workDir, "workdir", "", "Absolute working directory. Required.")
	fs.StringVar(&op, "op", "", "Operation: sum|count|height|check. Required.")
	fs.StringVar(&treePath, "tree", "", "Tree document path (JSON or YAML). Required for sum|count|height.")
	fs.StringVar(&tracePath, "trace", "", "Canonical proof trace output path (optional).")
	fs.StringVar(&property, "property", "sum", "Property to check: sum|count|height (check only).")
	fs.IntVar(&maxNodes, "max-nodes", 6, "Exhaustively check every shape with up to this many nodes (check only).")
	fs.IntVar(&trials, "trials", 100, "Number of seeded random trees to check (check only).")
	fs.Int64Var(&seed, "seed", 1, "Seed for the randomized part of the corpus (check only).")
	fs.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error).")

	// We intentionally do not accept environment-derived defaults.
	if err := fs.Parse(args); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 0 {
		return Invocation{}, invalidInvocationf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}

	workDir = filepath.Clean(workDir)
	if workDir == "" || workDir == "." {
		return Invocation{}, invalidInvocationf("--workdir is required")
	}
	if !filepath.IsAbs(workDir) {
		return Invocation{}, invalidInvocationf("--workdir must be an absolute path (got %q)", workDir)
	}

	parsedOp, err := parseOp(op)
	if err != nil {
		return Invocation{}, err
	}

	inv := Invocation{
		WorkDir:       workDir,
		Op:            parsedOp,
		MaxNodes:      maxNodes,
		Trials:        trials,
		Seed:          seed,
		LogLevel:      logLevel,
		OriginalTree:  treePath,
		OriginalTrace: tracePath,
	}

	switch parsedOp {
	case OpCheck:
		if treePath != "" {
			return Invocation{}, invalidInvocationf("--tree is not accepted for --op check")
		}
		parsedProperty, err := parseProperty(property)
		if err != nil {
			return Invocation{}, err
		}
		inv.Property = parsedProperty
		if maxNodes < 0 {
			return Invocation{}, invalidInvocationf("--max-nodes must be >= 0")
		}
		if maxNodes > induction.MaxExhaustiveNodes {
			return Invocation{}, invalidInvocationf("--max-nodes must be <= %d", induction.MaxExhaustiveNodes)
		}
		if trials < 0 {
			return Invocation{}, invalidInvocationf("--trials must be >= 0")
		}
		if maxNodes == 0 && trials == 0 {
			return Invocation{}, invalidInvocationf("--op check requires a non-empty corpus (--max-nodes or --trials)")
		}
	default:
		if treePath == "" {
			return Invocation{}, invalidInvocationf("--tree is required for --op %s", parsedOp)
		}
		resolvedTree, err := resolveUnderWorkDir(workDir, treePath)
		if err != nil {
			return Invocation{}, err
		}
		inv.TreePath = resolvedTree
		// Evaluation ops are their own property.
		inv.Property = string(parsedOp)
	}

	if strings.TrimSpace(tracePath) != "" {
		resolvedTrace, err := resolveUnderWorkDir(workDir, tracePath)
		if err != nil {
			return Invocation{}, err
		}
		inv.Trace = TraceConfig{Enabled: true, Path: resolvedTrace}
	}

	return inv, nil
}

func parseOp(raw string) (Op, error) {
	n := strings.ToLower(strings.TrimSpace(raw))
	switch Op(n) {
	case OpSum, OpCount, OpHeight, OpCheck:
		return Op(n), nil
	case "":
		return "", invalidInvocationf("--op is required")
	default:
		return "", invalidInvocationf("invalid --op %q (expected sum|count|height|check)", raw)
	}
}

func parseProperty(raw string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(raw))
	switch n {
	case "sum", "count", "height":
		return n, nil
	case "":
		return "", invalidInvocationf("--property is required")
	default:
		return "", invalidInvocationf("invalid --property %q (expected sum|count|height)", raw)
	}
}

func resolveUnderWorkDir(workDir, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", invalidInvocationf("path must not be empty")
	}
	clean := filepath.Clean(p)
	if clean == "." {
		return "", invalidInvocationf("path must not be '.'")
	}

	// If absolute, accept as-is; it is still deterministic.
	// If relative, resolve under WorkDir.
	if filepath.IsAbs(clean) {
		return clean, nil
	}

	// WorkDir is required to be absolute, so Join does not consult process CWD.
	return filepath.Clean(filepath.Join(workDir, clean)), nil
}

// ExitCode extracts a semantic exit code from a ParseInvocation error.
// If the error is not a known invocation error, it returns ExitInternalError.
func ExitCode(err error) int {
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	if err == nil {
		return ExitSuccess
	}
	return ExitInternalError
}
