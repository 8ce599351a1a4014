package repository

import (
	"context"
	"errors"
	"fmt"

	"churnsynth/database"
	"churnsynth/events"
	"churnsynth/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	runRepo          service.GenerationRunRepository
	customerRepo     service.CustomerRepository
	labelRepo        service.LabelRepository
	policyRepo       service.PolicyRepository
	transactionRepo  service.TransactionRepository
	engagementRepo   service.EngagementRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.runRepo = newGenerationRunRepositoryWithTx(tx)
	u.customerRepo = newCustomerRepositoryWithTx(tx)
	u.labelRepo = newLabelRepositoryWithTx(tx)
	u.policyRepo = newPolicyRepositoryWithTx(tx)
	u.transactionRepo = newTransactionRepositoryWithTx(tx)
	u.engagementRepo = newEngagementRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// GenerationRunRepository returns the generation run repository for this unit of work
func (u *unitOfWork) GenerationRunRepository() service.GenerationRunRepository {
	if u.runRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.runRepo
}

// CustomerRepository returns the customer repository for this unit of work
func (u *unitOfWork) CustomerRepository() service.CustomerRepository {
	if u.customerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.customerRepo
}

// LabelRepository returns the label repository for this unit of work
func (u *unitOfWork) LabelRepository() service.LabelRepository {
	if u.labelRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.labelRepo
}

// PolicyRepository returns the policy repository for this unit of work
func (u *unitOfWork) PolicyRepository() service.PolicyRepository {
	if u.policyRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.policyRepo
}

// TransactionRepository returns the transaction repository for this unit of work
func (u *unitOfWork) TransactionRepository() service.TransactionRepository {
	if u.transactionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionRepo
}

// EngagementRepository returns the engagement repository for this unit of work
func (u *unitOfWork) EngagementRepository() service.EngagementRepository {
	if u.engagementRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.engagementRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.TransactionalPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
