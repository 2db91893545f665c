package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rcampelo/briza/internal/cli"
	"github.com/rcampelo/briza/pkg/briza"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(briza.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(briza.ExitCodeForError(err))
	}
}
