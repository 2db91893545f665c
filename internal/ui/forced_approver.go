package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rcampelo/briza/pkg/briza"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It displays a countdown and automatically approves after the countdown,
// used when the --yes flag is provided.
type ForcedApprover struct {
	verbose bool

	// Injectable for tests.
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover(verbose bool) briza.Approver {
	return &ForcedApprover{
		verbose: verbose,
		output:  os.Stderr,
		sleepFn: time.Sleep,
	}
}

// RequestApproval displays a countdown and automatically approves after the countdown.
func (a *ForcedApprover) RequestApproval(ctx context.Context, resource string) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  DANGER: dataset '%s' will be dropped.\n", resource)

	countdownSeconds := int(briza.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprintf(a.output, "\rDropping in: %d seconds... (Press Ctrl+C to cancel)", i)
		a.sleepFn(1 * time.Second)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(a.output, "\r✓ Proceeding with dataset reset...                              \n")
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ briza.Approver = (*ForcedApprover)(nil)
