package briza

import "context"

// Approver handles user interaction for approval workflows, particularly
// destructive operations like dropping datasets.
//
// Implementations:
//   - ForcedApprover: shows a countdown and automatically approves
//   - InteractiveApprover: prompts the user to type the resource name
type Approver interface {
	// RequestApproval prompts for confirmation before a destructive
	// operation on the named resource. Returns true if approved.
	RequestApproval(ctx context.Context, resource string) (bool, error)
}
