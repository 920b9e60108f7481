package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// errDifferencesFound makes the process exit with status 1 under
// --fail-on-diff. It is not printed.
var errDifferencesFound = errors.New("differences found")

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDifferencesFound):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}
