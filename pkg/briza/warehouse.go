package briza

import (
	"context"
	"io"
)

// Warehouse is the narrow surface the staging loader depends on. It decouples
// the core from any specific warehouse product's client library; the shipped
// implementation targets PostgreSQL, where a dataset is a schema.
//
// All operations are blocking network calls; timeouts are imposed by the
// backend and the caller's context, not by this interface.
type Warehouse interface {
	// DatasetExists reports whether the dataset exists.
	DatasetExists(ctx context.Context, dataset string) (bool, error)

	// CreateDataset creates the dataset with an optional description.
	// Creating a dataset that already exists is not an error.
	CreateDataset(ctx context.Context, dataset, description string) error

	// TableExists reports whether the table exists inside the dataset.
	TableExists(ctx context.Context, dataset, table string) (bool, error)

	// CreateTable creates a table with the given logical schema.
	// The create must tolerate "already exists" so that concurrent
	// check-then-create callers do not crash when another process wins.
	CreateTable(ctx context.Context, dataset, table string, schema TableSchema) error

	// BulkLoad streams CSV content (header row first) into the destination
	// table and returns the number of rows loaded. WriteReplace discards the
	// table's prior contents; WriteAppend adds to them.
	BulkLoad(ctx context.Context, dataset, table string, src io.Reader, mode WriteMode) (int64, error)

	// Query executes a read query with positional placeholders ($1, $2, ...)
	// and returns an iterator over the result rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is a minimal result-set iterator, decoupled from driver row types.
type Rows interface {
	// Next advances to the next row, returning false when exhausted.
	Next() bool

	// Scan reads the current row's values into dest values.
	Scan(dest ...any) error

	// Err returns any error encountered during iteration.
	Err() error

	// Close releases the result set. Safe to call multiple times.
	Close()
}
