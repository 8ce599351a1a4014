package service

import (
	"context"
	"errors"
	"testing"

	"churnsynth/events"
	"churnsynth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDatasetLoader_Write_Commits(t *testing.T) {
	ctx := context.Background()
	ds := generateDataset(t, 20, 0.2)

	uow := NewMockUnitOfWork()
	loader := NewDatasetLoader("postgres", &MockUnitOfWorkFactory{UnitOfWork: uow})

	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Runs.On("Delete", ctx, ds.RunID).Return(nil)
	uow.Runs.On("Create", ctx, mock.MatchedBy(func(run *models.GenerationRun) bool {
		return run.RunID == ds.RunID && run.Customers == 20 && run.Counts == ds.RowCounts()
	})).Return(nil)
	uow.Customers.On("BulkInsert", ctx, ds.RunID, ds.Customers).Return(int64(len(ds.Customers)), nil)
	uow.Labels.On("BulkInsert", ctx, ds.RunID, ds.Labels).Return(int64(len(ds.Labels)), nil)
	uow.Policies.On("BulkInsert", ctx, ds.RunID, ds.Policies).Return(int64(len(ds.Policies)), nil)
	uow.Transactions.On("BulkInsert", ctx, ds.RunID, ds.Transactions).Return(int64(len(ds.Transactions)), nil)
	uow.Engagements.On("BulkInsert", ctx, ds.RunID, ds.Engagements).Return(int64(len(ds.Engagements)), nil)

	expectedRows := 80 + len(ds.Transactions)
	uow.Events.On("Publish", events.DatasetPersistedEvent{RunID: ds.RunID, Sink: "postgres", Rows: expectedRows}).Return()

	err := loader.Write(ctx, ds)

	require.NoError(t, err)
	assert.Equal(t, "postgres", loader.Name())
	uow.AssertExpectations(t)
	uow.Runs.AssertExpectations(t)
	uow.Customers.AssertExpectations(t)
	uow.Labels.AssertExpectations(t)
	uow.Policies.AssertExpectations(t)
	uow.Transactions.AssertExpectations(t)
	uow.Engagements.AssertExpectations(t)
	uow.Events.AssertExpectations(t)
}

func TestDatasetLoader_Write_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	ds := generateDataset(t, 20, 0.2)

	uow := NewMockUnitOfWork()
	loader := NewDatasetLoader("sqlite", &MockUnitOfWorkFactory{UnitOfWork: uow})

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Runs.On("Delete", ctx, ds.RunID).Return(nil)
	uow.Runs.On("Create", ctx, mock.Anything).Return(nil)
	uow.Customers.On("BulkInsert", ctx, ds.RunID, ds.Customers).Return(int64(20), nil)
	uow.Labels.On("BulkInsert", ctx, ds.RunID, ds.Labels).Return(int64(20), nil)
	uow.Policies.On("BulkInsert", ctx, ds.RunID, ds.Policies).Return(int64(0), errors.New("disk full"))

	err := loader.Write(ctx, ds)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "policies")
	assert.Contains(t, err.Error(), "disk full")
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit")
	uow.Transactions.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything, mock.Anything)
	uow.Engagements.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything, mock.Anything)
	uow.Events.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestDatasetLoader_Write_BeginFails(t *testing.T) {
	ctx := context.Background()
	ds := generateDataset(t, 5, 0)

	uow := NewMockUnitOfWork()
	uow.On("Begin", ctx).Return(errors.New("connection refused"))

	err := NewDatasetLoader("postgres", &MockUnitOfWorkFactory{UnitOfWork: uow}).Write(ctx, ds)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Rollback")
	uow.Runs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
