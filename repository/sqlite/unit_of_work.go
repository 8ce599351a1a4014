package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"churnsynth/events"
	"churnsynth/service"
)

type unitOfWorkFactory struct {
	db       *sql.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// unitOfWork implements the UnitOfWork interface over one SQLite transaction
type unitOfWork struct {
	db               *sql.DB
	tx               *sql.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx
	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil

	u.transactionalBus.Flush(u.ctx)
	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	u.tx = nil

	u.transactionalBus.Discard()
	return nil
}

func (u *unitOfWork) mustTx() *sql.Tx {
	if u.tx == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.tx
}

func (u *unitOfWork) GenerationRunRepository() service.GenerationRunRepository {
	return &generationRunRepository{q: u.mustTx()}
}

func (u *unitOfWork) CustomerRepository() service.CustomerRepository {
	return &customerRepository{q: u.mustTx()}
}

func (u *unitOfWork) LabelRepository() service.LabelRepository {
	return &labelRepository{q: u.mustTx()}
}

func (u *unitOfWork) PolicyRepository() service.PolicyRepository {
	return &policyRepository{q: u.mustTx()}
}

func (u *unitOfWork) TransactionRepository() service.TransactionRepository {
	return &transactionRepository{q: u.mustTx()}
}

func (u *unitOfWork) EngagementRepository() service.EngagementRepository {
	return &engagementRepository{q: u.mustTx()}
}

func (u *unitOfWork) EventBus() service.TransactionalPublisher {
	return u.transactionalBus
}
