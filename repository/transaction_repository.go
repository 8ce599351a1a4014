package repository

import (
	"context"
	"fmt"

	"churnsynth/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var transactionColumns = []string{
	"run_id", "customer_id", "transaction_date", "transaction_type",
	"amount", "payment_status", "days_overdue",
}

// TransactionRepository implements the TransactionRepository interface
type TransactionRepository struct {
	q queryable
}

// newTransactionRepositoryWithTx creates a new transaction repository with a transaction
func newTransactionRepositoryWithTx(tx queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// BulkInsert copies payment events into the transactions table, keeping their order
func (r *TransactionRepository) BulkInsert(ctx context.Context, runID uuid.UUID, transactions []models.Transaction) (int64, error) {
	id := pgUUID(runID)
	src := pgx.CopyFromSlice(len(transactions), func(i int) ([]any, error) {
		t := transactions[i]
		return []any{
			id,
			t.CustomerID,
			t.Date,
			string(t.Type),
			t.Amount,
			string(t.PaymentStatus),
			t.DaysOverdue,
		}, nil
	})

	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"transactions"}, transactionColumns, src)
	if err != nil {
		return 0, fmt.Errorf("failed to copy transactions: %w", err)
	}
	return n, nil
}
