package briza

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := loader.LoadFile(ctx, path, "", true)
//	if errors.Is(err, briza.ErrMissingSource) {
//	    // Handle the missing file
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingSource indicates the requested source file or directory
	// does not exist. Fatal to that one request, never retried.
	ErrMissingSource = errors.New("source not found")

	// ErrBulkLoadFailed indicates the warehouse rejected or failed a bulk
	// load. The failed attempt is recorded in the load ledger before this
	// error reaches the caller.
	ErrBulkLoadFailed = errors.New("bulk load failed")

	// ErrLedgerWrite indicates a load outcome could not be durably recorded.
	// This always propagates, even after a successful bulk load: an
	// unrecorded success would silently break idempotency for future runs.
	ErrLedgerWrite = errors.New("ledger write failed")

	// ErrConnectionFailed indicates the warehouse connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrQualityFailed indicates one or more data-quality checks failed.
	ErrQualityFailed = errors.New("quality checks failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrMissingSource):
		return ExitMissingSource
	case errors.Is(err, ErrBulkLoadFailed):
		return ExitBulkLoadFailed
	case errors.Is(err, ErrLedgerWrite):
		return ExitLedgerWrite
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrQualityFailed):
		return ExitQualityFailed
	}

	// Flag and argument parse errors surface as plain cobra/pflag messages
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "invalid argument") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "accepts ") {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
