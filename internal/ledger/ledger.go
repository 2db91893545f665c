package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rcampelo/briza/pkg/briza"
)

// columns is the fixed ledger column order, shared by the table schema and
// the CSV rows appended to it.
var columns = []string{
	"load_id",
	"table_name",
	"source_file",
	"rows_loaded",
	"load_timestamp",
	"file_hash",
	"status",
}

// Schema returns the ledger's backing table schema.
func Schema() briza.TableSchema {
	return briza.TableSchema{
		{Name: "load_id", Type: briza.ColumnString, Required: true},
		{Name: "table_name", Type: briza.ColumnString, Required: true},
		{Name: "source_file", Type: briza.ColumnString, Required: true},
		{Name: "rows_loaded", Type: briza.ColumnInteger, Required: true},
		{Name: "load_timestamp", Type: briza.ColumnTimestamp, Required: true},
		{Name: "file_hash", Type: briza.ColumnString, Required: false},
		{Name: "status", Type: briza.ColumnString, Required: true},
	}
}

// Ledger records load attempts and answers idempotency lookups against the
// _load_metadata table of one staging dataset.
//
// Thread-Safety: safe for concurrent use within a process. Across processes
// there is no mutual exclusion; racing writers can only duplicate rows, not
// corrupt them (see package doc).
type Ledger struct {
	warehouse briza.Warehouse
	dataset   string
	logger    briza.Logger

	// Overridable for deterministic tests.
	now       func() time.Time
	newLoadID func() string
}

// New creates a Ledger writing to dataset._load_metadata.
// Panics on nil dependencies: those are programmer errors that should fail
// loudly at startup, not during a load.
func New(warehouse briza.Warehouse, dataset string, logger briza.Logger) *Ledger {
	if warehouse == nil {
		panic("warehouse cannot be nil")
	}
	if dataset == "" {
		panic("dataset cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Ledger{
		warehouse: warehouse,
		dataset:   dataset,
		logger:    logger,
		now:       time.Now,
		newLoadID: func() string { return ulid.Make().String() },
	}
}

// EnsureTable creates the ledger's backing table if it does not already
// exist. Idempotent; the underlying create tolerates "already exists" so a
// concurrent caller racing the same check-then-create does not crash.
func (l *Ledger) EnsureTable(ctx context.Context) error {
	exists, err := l.warehouse.TableExists(ctx, l.dataset, briza.LedgerTableName)
	if err != nil {
		return fmt.Errorf("checking ledger table: %w", err)
	}
	if exists {
		return nil
	}

	if err := l.warehouse.CreateTable(ctx, l.dataset, briza.LedgerTableName, Schema()); err != nil {
		return fmt.Errorf("creating ledger table: %w", err)
	}

	l.logger.Info("ledger_table_created", "dataset", l.dataset, "table", briza.LedgerTableName)
	return nil
}

// HasSuccessfulLoad reports whether at least one SUCCESS record exists for
// the (table, fileHash) pair. Query failures never propagate: they degrade
// to false ("treat as not yet loaded") so a flaky ledger costs a redundant
// reload instead of silently skipping fresh data.
func (l *Ledger) HasSuccessfulLoad(ctx context.Context, table, fileHash string) bool {
	sql := fmt.Sprintf(
		`SELECT count(*) FROM %s.%s WHERE table_name = $1 AND file_hash = $2 AND status = $3`,
		l.dataset, briza.LedgerTableName,
	)

	rows, err := l.warehouse.Query(ctx, sql, table, fileHash, string(briza.LoadStatusSuccess))
	if err != nil {
		l.logger.Warn("idempotency_check_degraded", "table", table, "error", err.Error())
		return false
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			l.logger.Warn("idempotency_check_degraded", "table", table, "error", err.Error())
		}
		return false
	}

	var count int64
	if err := rows.Scan(&count); err != nil {
		l.logger.Warn("idempotency_check_degraded", "table", table, "error", err.Error())
		return false
	}

	return count > 0
}

// Record appends one LoadRecord reflecting a concluded attempt. The record's
// LoadID and LoadTimestamp are assigned here; everything else comes from the
// caller. Failures wrap briza.ErrLedgerWrite and must propagate: an attempt
// whose outcome is not durably recorded is a hard error.
func (l *Ledger) Record(ctx context.Context, rec briza.LoadRecord) (briza.LoadRecord, error) {
	rec.LoadID = l.newLoadID()
	rec.LoadTimestamp = l.now().UTC()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(columns)
	_ = w.Write([]string{
		rec.LoadID,
		rec.TableName,
		rec.SourceFile,
		strconv.FormatInt(rec.RowsLoaded, 10),
		rec.LoadTimestamp.Format(time.RFC3339Nano),
		rec.FileHash,
		string(rec.Status),
	})
	w.Flush()

	if _, err := l.warehouse.BulkLoad(ctx, l.dataset, briza.LedgerTableName, &buf, briza.WriteAppend); err != nil {
		return rec, fmt.Errorf("%w: appending to %s.%s: %w",
			briza.ErrLedgerWrite, l.dataset, briza.LedgerTableName, err)
	}

	return rec, nil
}
