package staging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcampelo/briza/internal/fingerprint"
	"github.com/rcampelo/briza/internal/logging"
	"github.com/rcampelo/briza/internal/resolver"
	"github.com/rcampelo/briza/pkg/briza"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(w *mockWarehouse, ldg *mockLedger) *Loader {
	return New(w, ldg, resolver.New(), fingerprint.New(), logging.NewNullLogger(), "staging")
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const ordersCSV = "id,name\n1,a\n2,b\n"

func TestNew_PanicsOnNilDependencies(t *testing.T) {
	w := &mockWarehouse{}
	ldg := &mockLedger{}
	r := resolver.New()
	fp := fingerprint.New()
	log := logging.NewNullLogger()

	assert.Panics(t, func() { New(nil, ldg, r, fp, log, "staging") })
	assert.Panics(t, func() { New(w, nil, r, fp, log, "staging") })
	assert.Panics(t, func() { New(w, ldg, nil, fp, log, "staging") })
	assert.Panics(t, func() { New(w, ldg, r, nil, log, "staging") })
	assert.Panics(t, func() { New(w, ldg, r, fp, nil, "staging") })
	assert.Panics(t, func() { New(w, ldg, r, fp, log, "") })
}

func TestInit_CreatesDatasetAndLedger(t *testing.T) {
	w := &mockWarehouse{datasetExists: false}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)

	require.NoError(t, l.Init(context.Background()))
	assert.Equal(t, []string{"staging"}, w.createdDatasets)
	assert.Equal(t, 1, ldg.ensured)
}

func TestInit_SkipsExistingDataset(t *testing.T) {
	w := &mockWarehouse{datasetExists: true}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)

	require.NoError(t, l.Init(context.Background()))
	assert.Empty(t, w.createdDatasets)
	assert.Equal(t, 1, ldg.ensured)
}

func TestLoadFile_MissingSource(t *testing.T) {
	l := newTestLoader(&mockWarehouse{}, &mockLedger{})

	_, err := l.LoadFile(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), "", true)
	require.ErrorIs(t, err, briza.ErrMissingSource)
}

func TestLoadFile_DirectoryIsNotAFile(t *testing.T) {
	l := newTestLoader(&mockWarehouse{}, &mockLedger{})

	_, err := l.LoadFile(context.Background(), t.TempDir(), "", true)
	require.ErrorIs(t, err, briza.ErrMissingSource)
}

func TestLoadFile_LoadsAndRecordsSuccess(t *testing.T) {
	w := &mockWarehouse{}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)
	path := writeFixture(t, t.TempDir(), "orders.csv", ordersCSV)

	result, err := l.LoadFile(context.Background(), path, "t1", true)
	require.NoError(t, err)

	assert.Equal(t, "t1", result.Table)
	assert.Equal(t, int64(2), result.RowsLoaded)
	assert.False(t, result.Skipped)
	assert.NotEmpty(t, result.FileHash)

	require.Len(t, w.bulkLoads, 1)
	assert.Equal(t, "staging", w.bulkLoads[0].dataset)
	assert.Equal(t, "t1", w.bulkLoads[0].table)
	assert.Equal(t, briza.WriteReplace, w.bulkLoads[0].mode)
	assert.Equal(t, ordersCSV, string(w.bulkLoads[0].data))

	require.Len(t, ldg.records, 1)
	rec := ldg.records[0]
	assert.Equal(t, briza.LoadStatusSuccess, rec.Status)
	assert.Equal(t, int64(2), rec.RowsLoaded)
	assert.Equal(t, result.FileHash, rec.FileHash)
	assert.Equal(t, path, rec.SourceFile)
}

func TestLoadFile_ResolvesTableFromFilename(t *testing.T) {
	w := &mockWarehouse{}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)
	path := writeFixture(t, t.TempDir(), "olist_orders_dataset.csv", ordersCSV)

	result, err := l.LoadFile(context.Background(), path, "", true)
	require.NoError(t, err)
	assert.Equal(t, "orders_raw", result.Table)
}

func TestLoadFile_SecondIdenticalLoadIsSkipped(t *testing.T) {
	w := &mockWarehouse{}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)
	path := writeFixture(t, t.TempDir(), "orders.csv", ordersCSV)

	first, err := l.LoadFile(context.Background(), path, "t1", true)
	require.NoError(t, err)
	require.False(t, first.Skipped)

	second, err := l.LoadFile(context.Background(), path, "t1", true)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.FileHash, second.FileHash)

	// One physical load, one SUCCESS record: repeating the identical
	// request performs no further mutation.
	assert.Len(t, w.bulkLoads, 1)
	assert.Equal(t, 1, ldg.successCount())
}

func TestLoadFile_ChangedContentReloads(t *testing.T) {
	w := &mockWarehouse{}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)
	dir := t.TempDir()
	path := writeFixture(t, dir, "orders.csv", ordersCSV)

	_, err := l.LoadFile(context.Background(), path, "t1", true)
	require.NoError(t, err)

	writeFixture(t, dir, "orders.csv", "id,name\n1,a\n2,b\n3,c\n")
	result, err := l.LoadFile(context.Background(), path, "t1", true)
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, int64(3), result.RowsLoaded)
	assert.Len(t, w.bulkLoads, 2)
	assert.Equal(t, 2, ldg.successCount())
}

func TestLoadFile_ForcedReloadBypassesLedger(t *testing.T) {
	w := &mockWarehouse{}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)
	path := writeFixture(t, t.TempDir(), "orders.csv", ordersCSV)

	_, err := l.LoadFile(context.Background(), path, "t1", true)
	require.NoError(t, err)

	result, err := l.LoadFile(context.Background(), path, "t1", false)
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Len(t, w.bulkLoads, 2)
	assert.Equal(t, 2, ldg.successCount())
}

func TestLoadFile_DegradedLedgerStillLoads(t *testing.T) {
	w := &mockWarehouse{}
	ldg := &mockLedger{lookupDegraded: true}
	l := newTestLoader(w, ldg)
	path := writeFixture(t, t.TempDir(), "orders.csv", ordersCSV)

	// A degraded idempotency check costs a redundant reload, never a
	// skipped fresh load.
	for range 2 {
		result, err := l.LoadFile(context.Background(), path, "t1", true)
		require.NoError(t, err)
		assert.False(t, result.Skipped)
	}
	assert.Len(t, w.bulkLoads, 2)
}

func TestLoadFile_BulkLoadFailureRecordedAndWrapped(t *testing.T) {
	loadErr := errors.New("copy rejected")
	w := &mockWarehouse{failTables: map[string]error{"t1": loadErr}}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)
	path := writeFixture(t, t.TempDir(), "orders.csv", ordersCSV)

	_, err := l.LoadFile(context.Background(), path, "t1", true)
	require.ErrorIs(t, err, briza.ErrBulkLoadFailed)
	require.ErrorIs(t, err, loadErr)

	require.Len(t, ldg.records, 1)
	rec := ldg.records[0]
	assert.Equal(t, briza.LoadStatusFailed, rec.Status)
	assert.Equal(t, int64(0), rec.RowsLoaded)
	assert.Empty(t, rec.FileHash)
}

func TestLoadFile_RecordFailurePropagates(t *testing.T) {
	recordErr := errors.New("ledger append failed")
	w := &mockWarehouse{}
	ldg := &mockLedger{recordErr: recordErr}
	l := newTestLoader(w, ldg)
	path := writeFixture(t, t.TempDir(), "orders.csv", ordersCSV)

	_, err := l.LoadFile(context.Background(), path, "t1", true)
	require.ErrorIs(t, err, recordErr)
}

func TestLoadDirectory_MissingDirectory(t *testing.T) {
	l := newTestLoader(&mockWarehouse{}, &mockLedger{})

	_, err := l.LoadDirectory(context.Background(), filepath.Join(t.TempDir(), "absent"), "", true)
	require.ErrorIs(t, err, briza.ErrMissingSource)
}

func TestLoadDirectory_EmptyDirectory(t *testing.T) {
	l := newTestLoader(&mockWarehouse{}, &mockLedger{})

	result, err := l.LoadDirectory(context.Background(), t.TempDir(), "", true)
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Equal(t, 0, result.Loaded())
}

func TestLoadDirectory_OneFailureDoesNotAbortSiblings(t *testing.T) {
	w := &mockWarehouse{failTables: map[string]error{"b_raw": errors.New("copy rejected")}}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)

	dir := t.TempDir()
	writeFixture(t, dir, "a.csv", ordersCSV)
	writeFixture(t, dir, "b.csv", ordersCSV)
	writeFixture(t, dir, "c.csv", ordersCSV)

	result, err := l.LoadDirectory(context.Background(), dir, "", true)
	require.NoError(t, err, "directory loads are best-effort")

	require.Len(t, result.Entries, 3)
	assert.Equal(t, 2, result.Loaded())
	assert.Equal(t, 1, result.Failed())
	assert.Equal(t, 0, result.Skipped())

	// Lexical order: a, b, c.
	assert.Equal(t, "a.csv", result.Entries[0].File)
	assert.Equal(t, "b.csv", result.Entries[1].File)
	assert.Equal(t, "c.csv", result.Entries[2].File)
	assert.ErrorIs(t, result.Entries[1].Err, briza.ErrBulkLoadFailed)
}

func TestLoadDirectory_SecondRunSkipsEverything(t *testing.T) {
	w := &mockWarehouse{}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)

	dir := t.TempDir()
	writeFixture(t, dir, "a.csv", ordersCSV)
	writeFixture(t, dir, "b.csv", "id,name\n1,x\n")

	first, err := l.LoadDirectory(context.Background(), dir, "", true)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Loaded())

	second, err := l.LoadDirectory(context.Background(), dir, "", true)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Loaded())
	assert.Equal(t, 2, second.Skipped())
	assert.Len(t, w.bulkLoads, 2)
}

func TestLoadDirectory_PatternFilters(t *testing.T) {
	w := &mockWarehouse{}
	ldg := &mockLedger{}
	l := newTestLoader(w, ldg)

	dir := t.TempDir()
	writeFixture(t, dir, "a.csv", ordersCSV)
	writeFixture(t, dir, "notes.txt", "not,a,load\n1,2,3\n")

	result, err := l.LoadDirectory(context.Background(), dir, "*.csv", true)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "a.csv", result.Entries[0].File)
}
