package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"treeproof/internal/cli"
)

// main is a deterministic boundary: it canonicalizes all CLI inputs into an
// Invocation before any engine logic is invoked, and it is the only place
// that writes results to stdout.
func main() {
	inv, err := cli.ParseInvocation(os.Args[1:])
	if err != nil {
		var invErr *cli.InvocationError
		if errors.As(err, &invErr) {
			fmt.Fprintln(os.Stderr, invErr.Message)
			os.Exit(invErr.ExitCode)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitInternalError)
	}

	result, execErr := cli.Execute(context.Background(), inv)
	if execErr != nil {
		fmt.Fprintln(os.Stderr, execErr)
	}
	switch {
	case result.Value != nil:
		fmt.Println(*result.Value)
	case result.Report != nil:
		r := result.Report
		fmt.Printf("check %s: property %s %s (%d trees, trace %s)\n",
			r.CheckID, r.Property, r.Outcome, r.Checked, r.TraceHash)
	}
	os.Exit(result.ExitCode)
}
