package service

import (
	"context"

	"churnsynth/events"
	"churnsynth/models"

	"github.com/google/uuid"
)

// EventPublisher defines the interface for publishing events outside a unit of work
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// TransactionalPublisher stashes events until the owning unit of work commits
type TransactionalPublisher interface {
	Publish(event events.Event)
}

// DatasetSink persists a generated dataset somewhere durable
type DatasetSink interface {
	// Name identifies the sink in logs and events
	Name() string

	// Write stores the complete dataset, or nothing at all on failure
	Write(ctx context.Context, ds *models.Dataset) error
}

// GenerationRunRepository defines the interface for generation run records
type GenerationRunRepository interface {
	// Create records a run; table rows reference it
	Create(ctx context.Context, run *models.GenerationRun) error

	// Delete removes a run and, by cascade, every row loaded under it
	Delete(ctx context.Context, runID uuid.UUID) error

	// CountRows returns the number of rows stored per table for a run
	CountRows(ctx context.Context, runID uuid.UUID) (models.RowCounts, error)
}

// CustomerRepository defines bulk access to the customer table
type CustomerRepository interface {
	BulkInsert(ctx context.Context, runID uuid.UUID, customers []models.Customer) (int64, error)
}

// LabelRepository defines bulk access to the churn label table
type LabelRepository interface {
	BulkInsert(ctx context.Context, runID uuid.UUID, labels []models.Label) (int64, error)
}

// PolicyRepository defines bulk access to the policy table
type PolicyRepository interface {
	BulkInsert(ctx context.Context, runID uuid.UUID, policies []models.Policy) (int64, error)
}

// TransactionRepository defines bulk access to the transaction table
type TransactionRepository interface {
	BulkInsert(ctx context.Context, runID uuid.UUID, transactions []models.Transaction) (int64, error)
}

// EngagementRepository defines bulk access to the engagement table
type EngagementRepository interface {
	BulkInsert(ctx context.Context, runID uuid.UUID, engagements []models.Engagement) (int64, error)
}

// UnitOfWork scopes a set of repositories to one database transaction
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GenerationRunRepository() GenerationRunRepository
	CustomerRepository() CustomerRepository
	LabelRepository() LabelRepository
	PolicyRepository() PolicyRepository
	TransactionRepository() TransactionRepository
	EngagementRepository() EngagementRepository
	EventBus() TransactionalPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
