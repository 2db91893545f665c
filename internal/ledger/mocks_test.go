package ledger

import (
	"context"
	"io"

	"github.com/rcampelo/briza/pkg/briza"
)

type bulkLoadCall struct {
	dataset string
	table   string
	data    []byte
	mode    briza.WriteMode
}

type createTableCall struct {
	dataset string
	table   string
	schema  briza.TableSchema
}

type mockWarehouse struct {
	tableExists    bool
	tableExistsErr error

	createTableErr error
	createdTables  []createTableCall

	queryRows *mockRows
	queryErr  error
	querySQL  string
	queryArgs []any

	bulkLoadErr  error
	bulkLoadRows int64
	bulkLoads    []bulkLoadCall
}

func (m *mockWarehouse) DatasetExists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (m *mockWarehouse) CreateDataset(_ context.Context, _, _ string) error {
	return nil
}

func (m *mockWarehouse) TableExists(_ context.Context, _, _ string) (bool, error) {
	return m.tableExists, m.tableExistsErr
}

func (m *mockWarehouse) CreateTable(_ context.Context, dataset, table string, schema briza.TableSchema) error {
	if m.createTableErr != nil {
		return m.createTableErr
	}
	m.createdTables = append(m.createdTables, createTableCall{dataset, table, schema})
	return nil
}

func (m *mockWarehouse) BulkLoad(_ context.Context, dataset, table string, src io.Reader, mode briza.WriteMode) (int64, error) {
	if m.bulkLoadErr != nil {
		return 0, m.bulkLoadErr
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, err
	}
	m.bulkLoads = append(m.bulkLoads, bulkLoadCall{dataset, table, data, mode})
	return m.bulkLoadRows, nil
}

func (m *mockWarehouse) Query(_ context.Context, sql string, args ...any) (briza.Rows, error) {
	m.querySQL = sql
	m.queryArgs = args
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.queryRows, nil
}

var _ briza.Warehouse = (*mockWarehouse)(nil)

// mockRows yields one int64 value per row.
type mockRows struct {
	counts  []int64
	idx     int
	scanErr error
	rowsErr error
	closed  bool
}

func (m *mockRows) Next() bool {
	if m.idx >= len(m.counts) {
		return false
	}
	m.idx++
	return true
}

func (m *mockRows) Scan(dest ...any) error {
	if m.scanErr != nil {
		return m.scanErr
	}
	if p, ok := dest[0].(*int64); ok {
		*p = m.counts[m.idx-1]
	}
	return nil
}

func (m *mockRows) Err() error { return m.rowsErr }
func (m *mockRows) Close()     { m.closed = true }
