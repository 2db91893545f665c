// Package ui provides console approvers for destructive operations.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rcampelo/briza/pkg/briza"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the dataset name
// to confirm destructive operations.
type InteractiveApprover struct {
	verbose bool

	// Injectable for tests.
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover.
func NewInteractiveApprover(verbose bool) briza.Approver {
	return &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
	}
}

// RequestApproval prompts the user to type the dataset name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, resource string) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  WARNING: You are about to DROP the dataset '%s'\n", resource)
	fmt.Fprintln(a.output, "This will permanently delete every table it contains!")
	fmt.Fprintf(a.output, "\nTo confirm, type the dataset name '%s' and press Enter: ", resource)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == resource {
			fmt.Fprintln(a.output, "✓ Confirmed. Proceeding with dataset reset...")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' does not match dataset name '%s'. Operation cancelled.\n", input, resource)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ briza.Approver = (*InteractiveApprover)(nil)
