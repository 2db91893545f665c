// Package postgres implements the briza.Warehouse interface on PostgreSQL.
// A dataset maps to a schema; bulk loads use COPY FROM STDIN in CSV format.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rcampelo/briza/pkg/briza"
)

const (
	querySchemaExists = `SELECT EXISTS(SELECT 1 FROM information_schema.schemata WHERE schema_name = $1)`
	queryTableExists  = `SELECT EXISTS(
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = $2
	)`
)

// Client is a PostgreSQL-backed warehouse client.
// Safe for concurrent use (pgxpool.Pool is thread-safe).
type Client struct {
	pool   *pgxpool.Pool
	logger briza.Logger
}

// NewClient creates a Client on top of an established connection pool.
// Panics on nil dependencies.
func NewClient(pool *pgxpool.Pool, logger briza.Logger) *Client {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Client{pool: pool, logger: logger}
}

// Close releases the underlying connection pool.
func (c *Client) Close() {
	c.pool.Close()
}

// DatasetExists reports whether the schema exists.
func (c *Client) DatasetExists(ctx context.Context, dataset string) (bool, error) {
	var exists bool
	if err := c.pool.QueryRow(ctx, querySchemaExists, dataset).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check dataset existence: %w", err)
	}
	return exists, nil
}

// CreateDataset creates the schema if absent and attaches the description
// as a schema comment.
func (c *Client) CreateDataset(ctx context.Context, dataset, description string) error {
	ident := pgx.Identifier{dataset}.Sanitize()
	if _, err := c.pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+ident); err != nil {
		return fmt.Errorf("failed to create dataset %q: %w", dataset, err)
	}
	if description != "" {
		comment := strings.ReplaceAll(description, "'", "''")
		sql := fmt.Sprintf("COMMENT ON SCHEMA %s IS '%s'", ident, comment)
		if _, err := c.pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("failed to set dataset description: %w", err)
		}
	}
	c.logger.Info("dataset_created", "dataset", dataset)
	return nil
}

// TableExists reports whether the table exists inside the dataset.
func (c *Client) TableExists(ctx context.Context, dataset, table string) (bool, error) {
	var exists bool
	if err := c.pool.QueryRow(ctx, queryTableExists, dataset, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return exists, nil
}

// CreateTable creates a table from the logical schema. IF NOT EXISTS makes
// a concurrent check-then-create race harmless.
func (c *Client) CreateTable(ctx context.Context, dataset, table string, schema briza.TableSchema) error {
	if len(schema) == 0 {
		return fmt.Errorf("%w: empty table schema for %s.%s", briza.ErrInvalidConfig, dataset, table)
	}

	cols := make([]string, 0, len(schema))
	for _, col := range schema {
		def := pgx.Identifier{col.Name}.Sanitize() + " " + sqlType(col.Type)
		if col.Required {
			def += " NOT NULL"
		}
		cols = append(cols, def)
	}

	sql := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{dataset, table}.Sanitize(), strings.Join(cols, ", "))
	if _, err := c.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to create table %s.%s: %w", dataset, table, err)
	}

	c.logger.Info("table_created", "dataset", dataset, "table", table)
	return nil
}

// Query executes a read query and adapts the driver rows to briza.Rows.
func (c *Client) Query(ctx context.Context, sql string, args ...any) (briza.Rows, error) {
	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &rowsAdapter{rows: rows}, nil
}

// DropDataset drops the schema and everything in it. Not part of the
// briza.Warehouse surface; only the reset command reaches for it.
func (c *Client) DropDataset(ctx context.Context, dataset string) error {
	sql := "DROP SCHEMA IF EXISTS " + pgx.Identifier{dataset}.Sanitize() + " CASCADE"
	if _, err := c.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to drop dataset %q: %w", dataset, err)
	}
	c.logger.Info("dataset_dropped", "dataset", dataset)
	return nil
}

// sqlType maps logical column types onto PostgreSQL types.
func sqlType(t briza.ColumnType) string {
	switch t {
	case briza.ColumnInteger:
		return "bigint"
	case briza.ColumnFloat:
		return "double precision"
	case briza.ColumnTimestamp:
		return "timestamptz"
	case briza.ColumnBool:
		return "boolean"
	default:
		return "text"
	}
}

// rowsAdapter adapts pgx.Rows to implement briza.Rows.
type rowsAdapter struct {
	rows pgx.Rows
}

func (r *rowsAdapter) Next() bool             { return r.rows.Next() }
func (r *rowsAdapter) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *rowsAdapter) Err() error             { return r.rows.Err() }
func (r *rowsAdapter) Close()                 { r.rows.Close() }

// Verify Client implements the Warehouse interface at compile time
var _ briza.Warehouse = (*Client)(nil)
