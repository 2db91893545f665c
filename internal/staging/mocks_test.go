package staging

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rcampelo/briza/pkg/briza"
)

type bulkLoadCall struct {
	dataset string
	table   string
	data    []byte
	mode    briza.WriteMode
}

// mockWarehouse counts the CSV data rows it receives so successful loads
// report realistic row counts.
type mockWarehouse struct {
	datasetExists    bool
	datasetExistsErr error
	createdDatasets  []string
	createDatasetErr error

	bulkLoads []bulkLoadCall
	// failTables makes BulkLoad fail for specific destination tables.
	failTables map[string]error
}

func (m *mockWarehouse) DatasetExists(_ context.Context, _ string) (bool, error) {
	return m.datasetExists, m.datasetExistsErr
}

func (m *mockWarehouse) CreateDataset(_ context.Context, dataset, _ string) error {
	if m.createDatasetErr != nil {
		return m.createDatasetErr
	}
	m.createdDatasets = append(m.createdDatasets, dataset)
	return nil
}

func (m *mockWarehouse) TableExists(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

func (m *mockWarehouse) CreateTable(_ context.Context, _, _ string, _ briza.TableSchema) error {
	return nil
}

func (m *mockWarehouse) BulkLoad(_ context.Context, dataset, table string, src io.Reader, mode briza.WriteMode) (int64, error) {
	if err := m.failTables[table]; err != nil {
		return 0, err
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, err
	}
	m.bulkLoads = append(m.bulkLoads, bulkLoadCall{dataset, table, data, mode})

	// Data rows: newline-terminated lines minus the header.
	rows := int64(bytes.Count(data, []byte("\n")))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		rows++
	}
	if rows > 0 {
		rows--
	}
	return rows, nil
}

func (m *mockWarehouse) Query(_ context.Context, _ string, _ ...any) (briza.Rows, error) {
	return nil, fmt.Errorf("not implemented")
}

var _ briza.Warehouse = (*mockWarehouse)(nil)

// mockLedger remembers SUCCESS records so consecutive loads observe earlier
// outcomes, mimicking the real append-only ledger.
type mockLedger struct {
	ensureErr error
	ensured   int

	recordErr error
	records   []briza.LoadRecord

	// lookupErr simulates a degraded ledger: lookups report "not loaded".
	lookupDegraded bool
}

func (m *mockLedger) EnsureTable(_ context.Context) error {
	if m.ensureErr != nil {
		return m.ensureErr
	}
	m.ensured++
	return nil
}

func (m *mockLedger) HasSuccessfulLoad(_ context.Context, table, fileHash string) bool {
	if m.lookupDegraded {
		return false
	}
	for _, rec := range m.records {
		if rec.TableName == table && rec.FileHash == fileHash && rec.Status == briza.LoadStatusSuccess {
			return true
		}
	}
	return false
}

func (m *mockLedger) Record(_ context.Context, rec briza.LoadRecord) (briza.LoadRecord, error) {
	if m.recordErr != nil {
		return rec, m.recordErr
	}
	m.records = append(m.records, rec)
	return rec, nil
}

var _ LoadLedger = (*mockLedger)(nil)

func (m *mockLedger) successCount() int {
	n := 0
	for _, rec := range m.records {
		if rec.Status == briza.LoadStatusSuccess {
			n++
		}
	}
	return n
}
