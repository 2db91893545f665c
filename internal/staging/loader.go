// Package staging orchestrates idempotent bulk loads of raw source files
// into staging tables: resolve target table, check the load ledger, perform
// the bulk load, record the outcome.
package staging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcampelo/briza/internal/fingerprint"
	"github.com/rcampelo/briza/pkg/briza"
)

// LoadLedger is the slice of the ledger the loader depends on.
type LoadLedger interface {
	EnsureTable(ctx context.Context) error
	HasSuccessfulLoad(ctx context.Context, table, fileHash string) bool
	Record(ctx context.Context, rec briza.LoadRecord) (briza.LoadRecord, error)
}

// TableResolver maps a source filename to a destination table.
type TableResolver interface {
	Resolve(filename string) string
}

// Loader loads source files into staging tables with replace semantics and
// ledger-backed idempotency.
//
// Replace semantics are a deliberate policy choice favoring simplicity over
// incremental append: every load discards the destination table's prior
// contents. Loading two different files that resolve to the same table name
// destroys the first file's rows.
//
// Thread-Safety: loads within one process are sequential; the Loader holds
// no mutable state of its own and is safe to share. No mutual exclusion is
// provided across processes: two processes racing the same new file may
// both load it and both record SUCCESS, which converges to identical table
// contents plus a harmless duplicate ledger row.
type Loader struct {
	warehouse briza.Warehouse
	ledger    LoadLedger
	resolver  TableResolver
	fp        fingerprint.Fingerprinter
	logger    briza.Logger
	dataset   string
}

// New creates a Loader targeting the given staging dataset.
// Panics on nil dependencies (programmer errors, caught at startup).
func New(
	warehouse briza.Warehouse,
	ldg LoadLedger,
	resolver TableResolver,
	fp fingerprint.Fingerprinter,
	logger briza.Logger,
	dataset string,
) *Loader {
	if warehouse == nil {
		panic("warehouse cannot be nil")
	}
	if ldg == nil {
		panic("ledger cannot be nil")
	}
	if resolver == nil {
		panic("resolver cannot be nil")
	}
	if fp == nil {
		panic("fingerprinter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if dataset == "" {
		panic("dataset cannot be empty")
	}
	return &Loader{
		warehouse: warehouse,
		ledger:    ldg,
		resolver:  resolver,
		fp:        fp,
		logger:    logger,
		dataset:   dataset,
	}
}

// Init prepares the staging dataset and the ledger table. Idempotent;
// called once before the first load.
func (l *Loader) Init(ctx context.Context) error {
	exists, err := l.warehouse.DatasetExists(ctx, l.dataset)
	if err != nil {
		return fmt.Errorf("checking staging dataset: %w", err)
	}
	if !exists {
		l.logger.Info("creating_staging_dataset", "dataset", l.dataset)
		if err := l.warehouse.CreateDataset(ctx, l.dataset,
			"Staging dataset for raw Brazilian E-Commerce data"); err != nil {
			return fmt.Errorf("creating staging dataset: %w", err)
		}
	}
	return l.ledger.EnsureTable(ctx)
}

// LoadFile loads one source file into a staging table.
//
// table overrides the resolved destination when non-empty. When
// skipIfLoaded is true and the ledger already holds a SUCCESS record for
// this (table, fingerprint) pair, the load is skipped without touching the
// warehouse or the ledger; repeating the identical request any number of
// times after one success performs no further mutation.
//
// The outcome of every performed attempt is recorded unconditionally:
// SUCCESS with the row count, FAILED with zero rows. A bulk-load failure is
// recorded and then re-raised wrapping briza.ErrBulkLoadFailed; a failure
// to record an outcome wraps briza.ErrLedgerWrite and always propagates.
func (l *Loader) LoadFile(ctx context.Context, path, table string, skipIfLoaded bool) (*briza.LoadResult, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", briza.ErrMissingSource, path)
	}

	if table == "" {
		table = l.resolver.Resolve(filepath.Base(path))
	}

	l.logger.Info("loading_file", "path", path, "table", table)

	var fileHash string
	if skipIfLoaded {
		fileHash, err = l.fp.SumFile(path)
		if err != nil {
			return nil, fmt.Errorf("fingerprinting %s: %w", path, err)
		}
		if l.ledger.HasSuccessfulLoad(ctx, table, fileHash) {
			l.logger.Info("file_already_loaded",
				"path", path, "table", table, "file_hash", fileHash)
			return &briza.LoadResult{Table: table, Skipped: true, FileHash: fileHash}, nil
		}
	}

	rows, loadErr := l.bulkLoad(ctx, path, table)
	if loadErr != nil {
		// Best-effort FAILED record; a secondary ledger failure propagates as-is.
		if _, recErr := l.ledger.Record(ctx, briza.LoadRecord{
			TableName:  table,
			SourceFile: path,
			RowsLoaded: 0,
			Status:     briza.LoadStatusFailed,
		}); recErr != nil {
			return nil, fmt.Errorf("%w (while recording bulk load failure: %v)", recErr, loadErr)
		}
		l.logger.Error("file_load_failed", "path", path, "table", table, "error", loadErr.Error())
		return nil, fmt.Errorf("%w: %s into %s.%s: %w",
			briza.ErrBulkLoadFailed, path, l.dataset, table, loadErr)
	}

	if _, recErr := l.ledger.Record(ctx, briza.LoadRecord{
		TableName:  table,
		SourceFile: path,
		RowsLoaded: rows,
		FileHash:   fileHash,
		Status:     briza.LoadStatusSuccess,
	}); recErr != nil {
		return nil, recErr
	}

	l.logger.Info("file_loaded", "path", path, "table", table, "rows", rows)
	return &briza.LoadResult{Table: table, RowsLoaded: rows, FileHash: fileHash}, nil
}

func (l *Loader) bulkLoad(ctx context.Context, path, table string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return l.warehouse.BulkLoad(ctx, l.dataset, table, file, briza.WriteReplace)
}

// LoadDirectory loads every file matching pattern (non-recursive) in dir, in
// deterministic lexical order. One file's failure never aborts its siblings:
// the error is logged and recorded as a failed entry in the result, and
// enumeration continues. LoadDirectory itself fails only when dir does not
// reference an existing directory.
func (l *Loader) LoadDirectory(ctx context.Context, dir, pattern string, skipIfLoaded bool) (*briza.DirectoryResult, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", briza.ErrMissingSource, dir)
	}
	if pattern == "" {
		pattern = briza.DefaultFilePattern
	}

	// filepath.Glob returns lexically sorted matches.
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("%w: bad pattern %q", briza.ErrInvalidConfig, pattern)
	}

	if len(matches) == 0 {
		l.logger.Warn("no_files_found", "dir", dir, "pattern", pattern)
		return &briza.DirectoryResult{}, nil
	}

	l.logger.Info("loading_directory", "dir", dir, "files", len(matches))

	result := &briza.DirectoryResult{}
	for _, path := range matches {
		name := filepath.Base(path)
		res, loadErr := l.LoadFile(ctx, path, "", skipIfLoaded)
		if loadErr != nil {
			l.logger.Error("directory_file_failed", "file", name, "error", loadErr.Error())
			result.Entries = append(result.Entries, briza.DirectoryEntry{File: name, Err: loadErr})
			continue
		}
		result.Entries = append(result.Entries, briza.DirectoryEntry{File: name, Result: res})
	}

	l.logger.Info("directory_load_completed",
		"total", len(result.Entries),
		"loaded", result.Loaded(),
		"skipped", result.Skipped(),
		"failed", result.Failed())

	return result, nil
}
