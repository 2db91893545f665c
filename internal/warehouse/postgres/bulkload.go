package postgres

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rcampelo/briza/pkg/briza"
)

// BulkLoad streams CSV content into dataset.table and returns the number of
// rows loaded.
//
// The first CSV record names the source columns. WriteReplace drops and
// recreates the destination from that header (all-text staging columns, the
// raw-zone convention), so the table's prior contents and shape are fully
// replaced. WriteAppend creates the table only if missing and adds rows to
// it; appending into an existing typed table (the load ledger) parses the
// CSV text through COPY's normal input conversion.
//
// The whole load runs in one transaction: a mid-stream failure leaves the
// destination untouched.
func (c *Client) BulkLoad(ctx context.Context, dataset, table string, src io.Reader, mode briza.WriteMode) (int64, error) {
	headerLine, rest, err := peekHeader(src)
	if err != nil {
		return 0, err
	}
	columns, err := headerColumns(headerLine)
	if err != nil {
		return 0, err
	}

	qualified := pgx.Identifier{dataset, table}.Sanitize()

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	switch mode {
	case briza.WriteReplace:
		if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+qualified); err != nil {
			return 0, fmt.Errorf("failed to replace table %s.%s: %w", dataset, table, err)
		}
		if _, err := tx.Exec(ctx, createFromColumns(qualified, columns)); err != nil {
			return 0, fmt.Errorf("failed to create table %s.%s: %w", dataset, table, err)
		}
	case briza.WriteAppend:
		if _, err := tx.Exec(ctx, createIfMissingFromColumns(qualified, columns)); err != nil {
			return 0, fmt.Errorf("failed to ensure table %s.%s: %w", dataset, table, err)
		}
	default:
		return 0, fmt.Errorf("%w: unknown write mode %d", briza.ErrInvalidConfig, mode)
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = pgx.Identifier{col}.Sanitize()
	}
	copySQL := fmt.Sprintf("COPY %s (%s) FROM STDIN WITH (FORMAT csv, HEADER true)",
		qualified, strings.Join(quoted, ", "))

	// COPY consumes the original header again so column order stays attached
	// to the data stream.
	tag, err := tx.Conn().PgConn().CopyFrom(ctx,
		io.MultiReader(strings.NewReader(headerLine), rest), copySQL)
	if err != nil {
		return 0, fmt.Errorf("copy into %s.%s: %w", dataset, table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit load: %w", err)
	}

	rows := tag.RowsAffected()
	c.logger.Info("bulk_load_completed",
		"dataset", dataset, "table", table, "rows", rows, "mode", mode.String())
	return rows, nil
}

// peekHeader reads the first line from src and hands back both the line and
// a reader positioned at the remaining content.
func peekHeader(src io.Reader) (string, io.Reader, error) {
	br := bufio.NewReader(src)
	headerLine, err := br.ReadString('\n')
	if err == io.EOF && headerLine != "" {
		// Header-only file with no trailing newline.
		err = nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("reading CSV header: %w", err)
	}
	return headerLine, br, nil
}

// headerColumns parses the header line into sanitized column names.
func headerColumns(headerLine string) ([]string, error) {
	record, err := csv.NewReader(strings.NewReader(headerLine)).Read()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV header: %w", err)
	}
	columns := make([]string, len(record))
	for i, name := range record {
		columns[i] = sanitizeColumn(name, i)
	}
	return columns, nil
}

// sanitizeColumn normalizes a CSV header cell into a usable column name:
// lowercase, non-alphanumerics folded to underscores, leading digits and
// empty cells handled positionally.
func sanitizeColumn(name string, position int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	col := b.String()
	if col == "" {
		return fmt.Sprintf("column_%d", position+1)
	}
	if col[0] >= '0' && col[0] <= '9' {
		col = "_" + col
	}
	return col
}

func createFromColumns(qualified string, columns []string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = pgx.Identifier{col}.Sanitize() + " text"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", qualified, strings.Join(defs, ", "))
}

func createIfMissingFromColumns(qualified string, columns []string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = pgx.Identifier{col}.Sanitize() + " text"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", qualified, strings.Join(defs, ", "))
}
