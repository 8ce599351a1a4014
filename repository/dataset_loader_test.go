package repository

import (
	"context"
	"testing"
	"time"

	"churnsynth/events"
	"churnsynth/models"
	"churnsynth/repository/testutil"
	"churnsynth/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetLoader_Postgres(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	var persisted []events.DatasetPersistedEvent
	bus.Subscribe(events.EventTypeDatasetPersisted, func(ctx context.Context, e events.Event) {
		persisted = append(persisted, e.(events.DatasetPersistedEvent))
	})

	loader := service.NewDatasetLoader("postgres", NewUnitOfWorkFactory(testDB.DB, bus))
	runs := NewGenerationRunRepository(testDB.DB)

	t.Run("loads every table", func(t *testing.T) {
		testDB.Reset(t)
		persisted = nil
		ds := testutil.CreateTestDataset()

		require.NoError(t, loader.Write(ctx, ds))

		counts, err := runs.CountRows(ctx, ds.RunID)
		require.NoError(t, err)
		assert.Equal(t, ds.RowCounts(), counts)

		require.Len(t, persisted, 1)
		assert.Equal(t, ds.RunID, persisted[0].RunID)
		assert.Equal(t, 13, persisted[0].Rows)
	})

	t.Run("values round trip", func(t *testing.T) {
		testDB.Reset(t)
		ds := testutil.CreateTestDataset()
		require.NoError(t, loader.Write(ctx, ds))

		var churnDate *time.Time
		var reason *string
		err := testDB.DB.QueryRow(ctx,
			`SELECT churn_date, churn_reason FROM churn_labels WHERE run_id = $1 AND customer_id = $2`,
			pgUUID(ds.RunID), "CUST_000002").Scan(&churnDate, &reason)
		require.NoError(t, err)
		require.NotNil(t, churnDate)
		require.NotNil(t, reason)
		assert.Equal(t, "2023-11-20", churnDate.Format(models.DateLayout))
		assert.Equal(t, "Life_Change", *reason)

		err = testDB.DB.QueryRow(ctx,
			`SELECT churn_date, churn_reason FROM churn_labels WHERE run_id = $1 AND customer_id = $2`,
			pgUUID(ds.RunID), "CUST_000001").Scan(&churnDate, &reason)
		require.NoError(t, err)
		assert.Nil(t, churnDate)
		assert.Nil(t, reason)

		var premium float64
		var start time.Time
		err = testDB.DB.QueryRow(ctx,
			`SELECT premium_amount::float8, policy_start_date FROM policies WHERE run_id = $1 AND customer_id = $2`,
			pgUUID(ds.RunID), "CUST_000002").Scan(&premium, &start)
		require.NoError(t, err)
		assert.Equal(t, 216.67, premium)
		assert.Equal(t, "2023-08-15", start.Format(models.DateLayout))
	})

	t.Run("reloading a run replaces its rows", func(t *testing.T) {
		testDB.Reset(t)
		ds := testutil.GenerateTestDataset(t, 50, 0.2)

		require.NoError(t, loader.Write(ctx, ds))
		require.NoError(t, loader.Write(ctx, ds))

		counts, err := runs.CountRows(ctx, ds.RunID)
		require.NoError(t, err)
		assert.Equal(t, ds.RowCounts(), counts)
	})

	t.Run("failure leaves nothing behind", func(t *testing.T) {
		testDB.Reset(t)
		persisted = nil
		ds := testutil.CreateTestDataset()
		// Engagement row for a customer that does not exist violates the foreign key
		ds.Engagements = append(ds.Engagements, models.Engagement{CustomerID: "CUST_999999", LastLoginDate: ds.Params.EndDate})

		require.Error(t, loader.Write(ctx, ds))

		counts, err := runs.CountRows(ctx, ds.RunID)
		require.NoError(t, err)
		assert.Equal(t, models.RowCounts{}, counts)
		assert.Empty(t, persisted)
	})

	t.Run("delete cascades", func(t *testing.T) {
		testDB.Reset(t)
		ds := testutil.CreateTestDataset()
		require.NoError(t, loader.Write(ctx, ds))

		require.NoError(t, runs.Delete(ctx, ds.RunID))

		counts, err := runs.CountRows(ctx, ds.RunID)
		require.NoError(t, err)
		assert.Equal(t, models.RowCounts{}, counts)
	})
}

func TestUnitOfWork_RepositoriesRequireBegin(t *testing.T) {
	uow := NewUnitOfWorkFactory(nil, events.NewBus()).Create()

	assert.Panics(t, func() { uow.CustomerRepository() })
	assert.Panics(t, func() { uow.GenerationRunRepository() })
	assert.NoError(t, uow.Rollback())
	assert.Error(t, uow.Commit())
}

func TestUnitOfWork_CommitFlushesEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	delivered := 0
	bus.Subscribe(events.EventTypeDatasetPersisted, func(ctx context.Context, e events.Event) {
		delivered++
	})
	factory := NewUnitOfWorkFactory(testDB.DB, bus)

	rolledBack := factory.Create()
	require.NoError(t, rolledBack.Begin(ctx))
	rolledBack.EventBus().Publish(events.DatasetPersistedEvent{Sink: "postgres"})
	require.NoError(t, rolledBack.Rollback())
	assert.Zero(t, delivered)

	committed := factory.Create()
	require.NoError(t, committed.Begin(ctx))
	committed.EventBus().Publish(events.DatasetPersistedEvent{Sink: "postgres"})
	require.NoError(t, committed.Commit())
	assert.Equal(t, 1, delivered)
}
