package briza

import "time"

// LoadStatus is the terminal outcome of one load attempt.
type LoadStatus string

const (
	LoadStatusSuccess LoadStatus = "SUCCESS"
	LoadStatusFailed  LoadStatus = "FAILED"
)

// LoadRecord is one row of the load ledger: a single load attempt against a
// staging table. Records are append-only; they are created exactly once,
// immediately after the attempt concludes, and never mutated afterward.
type LoadRecord struct {
	// LoadID uniquely identifies the attempt. IDs sort by creation time and
	// exist for traceability only; idempotency lookups never use them.
	LoadID string

	// TableName is the destination table inside the staging dataset.
	TableName string

	// SourceFile is the origin path or URI of the loaded file.
	SourceFile string

	// RowsLoaded is the number of rows the warehouse accepted. Zero on failure.
	RowsLoaded int64

	// LoadTimestamp is the instant the record was written.
	LoadTimestamp time.Time

	// FileHash is the content fingerprint of the source file at load time.
	// Empty only when idempotency checking was disabled for the attempt.
	FileHash string

	// Status is SUCCESS or FAILED.
	Status LoadStatus
}

// WriteMode controls how a bulk load treats existing destination rows.
type WriteMode int

const (
	// WriteReplace discards the destination table's prior contents and
	// replaces them with the loaded rows (truncate-replace).
	WriteReplace WriteMode = iota

	// WriteAppend appends the loaded rows to the destination table.
	WriteAppend
)

// String returns a human-readable string representation of the WriteMode.
func (m WriteMode) String() string {
	switch m {
	case WriteReplace:
		return "REPLACE"
	case WriteAppend:
		return "APPEND"
	default:
		return "UNKNOWN"
	}
}

// ColumnType is a backend-agnostic logical column type. Warehouse
// implementations map these onto their native type systems.
type ColumnType string

const (
	ColumnString    ColumnType = "STRING"
	ColumnInteger   ColumnType = "INTEGER"
	ColumnFloat     ColumnType = "FLOAT"
	ColumnTimestamp ColumnType = "TIMESTAMP"
	ColumnBool      ColumnType = "BOOL"
)

// Column describes one column of a warehouse table.
type Column struct {
	Name     string
	Type     ColumnType
	Required bool
}

// TableSchema is an ordered list of columns.
type TableSchema []Column

// LoadResult is the outcome of a single-file load request.
type LoadResult struct {
	// Table is the resolved destination table.
	Table string

	// RowsLoaded is the number of rows accepted by the warehouse.
	// Zero when the load was skipped.
	RowsLoaded int64

	// Skipped is true when the ledger already held a SUCCESS record for this
	// (table, fingerprint) pair and no load was performed.
	Skipped bool

	// FileHash is the fingerprint computed for the idempotency check.
	// Empty when skip-if-loaded was disabled.
	FileHash string
}

// DirectoryEntry is the per-file outcome of a directory load, in enumeration
// order. Result is nil when the file's load failed; Err holds the cause.
type DirectoryEntry struct {
	File   string
	Result *LoadResult
	Err    error
}

// DirectoryResult is the ordered outcome of a directory load.
type DirectoryResult struct {
	Entries []DirectoryEntry
}

// Loaded returns the number of files whose rows were bulk loaded.
func (r *DirectoryResult) Loaded() int {
	n := 0
	for _, e := range r.Entries {
		if e.Result != nil && !e.Result.Skipped {
			n++
		}
	}
	return n
}

// Skipped returns the number of files skipped as already loaded.
func (r *DirectoryResult) Skipped() int {
	n := 0
	for _, e := range r.Entries {
		if e.Result != nil && e.Result.Skipped {
			n++
		}
	}
	return n
}

// Failed returns the number of files whose load raised an error.
func (r *DirectoryResult) Failed() int {
	n := 0
	for _, e := range r.Entries {
		if e.Result == nil {
			n++
		}
	}
	return n
}
