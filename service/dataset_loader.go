package service

import (
	"context"
	"fmt"

	"churnsynth/events"
	"churnsynth/models"

	log "github.com/sirupsen/logrus"
)

// datasetLoader persists datasets into a relational store through a unit of work
type datasetLoader struct {
	name       string
	uowFactory UnitOfWorkFactory
}

// NewDatasetLoader creates a sink that loads datasets through units of work from uowFactory
func NewDatasetLoader(name string, uowFactory UnitOfWorkFactory) DatasetSink {
	return &datasetLoader{
		name:       name,
		uowFactory: uowFactory,
	}
}

func (l *datasetLoader) Name() string {
	return l.name
}

// Write replaces any rows previously loaded for the dataset's run id.
// Either every table is stored or none is.
func (l *datasetLoader) Write(ctx context.Context, ds *models.Dataset) error {
	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Reloading the same parameters must not duplicate rows
	if err := uow.GenerationRunRepository().Delete(ctx, ds.RunID); err != nil {
		return fmt.Errorf("failed to clear previous run: %w", err)
	}

	if err := uow.GenerationRunRepository().Create(ctx, models.NewGenerationRun(ds)); err != nil {
		return fmt.Errorf("failed to record generation run: %w", err)
	}

	var total int64
	inserts := []struct {
		table string
		load  func() (int64, error)
	}{
		{"customers", func() (int64, error) {
			return uow.CustomerRepository().BulkInsert(ctx, ds.RunID, ds.Customers)
		}},
		{"labels", func() (int64, error) {
			return uow.LabelRepository().BulkInsert(ctx, ds.RunID, ds.Labels)
		}},
		{"policies", func() (int64, error) {
			return uow.PolicyRepository().BulkInsert(ctx, ds.RunID, ds.Policies)
		}},
		{"transactions", func() (int64, error) {
			return uow.TransactionRepository().BulkInsert(ctx, ds.RunID, ds.Transactions)
		}},
		{"engagement", func() (int64, error) {
			return uow.EngagementRepository().BulkInsert(ctx, ds.RunID, ds.Engagements)
		}},
	}

	for _, insert := range inserts {
		n, err := insert.load()
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", insert.table, err)
		}
		log.WithFields(log.Fields{
			"sink":  l.name,
			"table": insert.table,
			"rows":  n,
		}).Debug("Loaded table")
		total += n
	}

	uow.EventBus().Publish(events.DatasetPersistedEvent{
		RunID: ds.RunID,
		Sink:  l.name,
		Rows:  int(total),
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}

	return nil
}
