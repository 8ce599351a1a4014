package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"churnsynth/events"
	"churnsynth/models"
	"churnsynth/repository/testutil"
	"churnsynth/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "churnsynth.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestOpenRunsMigrations(t *testing.T) {
	store := openTestStore(t)

	for _, table := range []string{"generation_runs", "customers", "churn_labels", "policies", "transactions", "engagement"} {
		var name string
		err := store.sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
	}

	// Reopening an up-to-date database is a no-op
	again, err := Open(store.Path())
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestDatasetLoader_SQLite(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	bus := events.NewBus()
	persisted := 0
	bus.Subscribe(events.EventTypeDatasetPersisted, func(ctx context.Context, e events.Event) {
		persisted++
	})
	loader := service.NewDatasetLoader("sqlite", store.NewUnitOfWorkFactory(bus))

	ds := testutil.GenerateTestDataset(t, 200, 0.2)
	require.NoError(t, loader.Write(ctx, ds))

	counts, err := store.GenerationRuns().CountRows(ctx, ds.RunID)
	require.NoError(t, err)
	assert.Equal(t, ds.RowCounts(), counts)
	assert.Equal(t, 1, persisted)

	var churned int
	err = store.sqlDB.QueryRow(`SELECT COUNT(*) FROM churn_labels WHERE run_id = ? AND churned = 1`, ds.RunID.String()).Scan(&churned)
	require.NoError(t, err)
	assert.Equal(t, 40, churned)

	// Loading the same run again replaces it
	require.NoError(t, loader.Write(ctx, ds))
	counts, err = store.GenerationRuns().CountRows(ctx, ds.RunID)
	require.NoError(t, err)
	assert.Equal(t, ds.RowCounts(), counts)
}

func TestDatasetLoader_SQLiteValues(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ds := testutil.CreateTestDataset()
	require.NoError(t, service.NewDatasetLoader("sqlite", store.NewUnitOfWorkFactory(events.NewBus())).Write(ctx, ds))

	var churnDate, reason sql.NullString
	err := store.sqlDB.QueryRow(`SELECT churn_date, churn_reason FROM churn_labels WHERE customer_id = 'CUST_000002'`).Scan(&churnDate, &reason)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-20", churnDate.String)
	assert.Equal(t, "Life_Change", reason.String)

	err = store.sqlDB.QueryRow(`SELECT churn_date, churn_reason FROM churn_labels WHERE customer_id = 'CUST_000001'`).Scan(&churnDate, &reason)
	require.NoError(t, err)
	assert.False(t, churnDate.Valid)
	assert.False(t, reason.Valid)

	var overdue int
	var status string
	err = store.sqlDB.QueryRow(`SELECT days_overdue, payment_status FROM transactions WHERE customer_id = 'CUST_000002' ORDER BY id DESC LIMIT 1`).Scan(&overdue, &status)
	require.NoError(t, err)
	assert.Equal(t, 12, overdue)
	assert.Equal(t, "Failed", status)
}

func TestDatasetLoader_SQLiteRollsBack(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	bus := events.NewBus()
	persisted := 0
	bus.Subscribe(events.EventTypeDatasetPersisted, func(ctx context.Context, e events.Event) {
		persisted++
	})

	ds := testutil.CreateTestDataset()
	ds.Transactions = append(ds.Transactions, models.Transaction{
		CustomerID: "CUST_404404",
		Date:       ds.Params.EndDate,
		Type:       models.TransactionTypeInquiry,
	})

	err := service.NewDatasetLoader("sqlite", store.NewUnitOfWorkFactory(bus)).Write(ctx, ds)
	require.Error(t, err)

	counts, err := store.GenerationRuns().CountRows(ctx, ds.RunID)
	require.NoError(t, err)
	assert.Equal(t, models.RowCounts{}, counts)
	assert.Zero(t, persisted)
}

func TestUnitOfWork_RepositoriesRequireBegin(t *testing.T) {
	store := openTestStore(t)
	uow := store.NewUnitOfWorkFactory(events.NewBus()).Create()

	assert.Panics(t, func() { uow.PolicyRepository() })
	assert.NoError(t, uow.Rollback())
	assert.Error(t, uow.Commit())
}
