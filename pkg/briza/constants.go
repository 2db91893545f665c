package briza

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Requested operation completed (loads and legitimate skips)
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to the warehouse
	ExitMissingSource   = 12 // Source file or directory not found
	ExitBulkLoadFailed  = 13 // Warehouse rejected or failed the bulk load
	ExitLedgerWrite     = 14 // Load outcome could not be durably recorded
	ExitApprovalDenied  = 15 // User denied approval for a destructive operation
	ExitQualityFailed   = 16 // One or more data-quality checks failed
)

const (
	// LedgerTableName is the warehouse table holding one row per load attempt.
	// It lives inside the staging dataset and is append-only.
	LedgerTableName = "_load_metadata"

	// DefaultStagingDataset is the dataset raw source files are loaded into.
	DefaultStagingDataset = "staging"

	// DefaultWarehouseDataset holds modeled tables downstream of staging.
	DefaultWarehouseDataset = "warehouse"

	// DefaultFilePattern matches the source files a directory load enumerates.
	DefaultFilePattern = "*.csv"

	// DefaultKaggleDataset is the Brazilian E-Commerce Public Dataset by Olist.
	DefaultKaggleDataset = "olistbr/brazilian-ecommerce"

	// RawTableSuffix is appended when deriving a staging table name from an
	// unmapped source filename.
	RawTableSuffix = "_raw"
)

const (
	// DefaultForceApprovalCountdown is the countdown duration before a forced
	// approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first
	// retry attempt when connecting to the warehouse.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 30 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3
)
