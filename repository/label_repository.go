package repository

import (
	"context"
	"fmt"

	"churnsynth/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var labelColumns = []string{"run_id", "customer_id", "churned", "churn_date", "churn_reason"}

// LabelRepository implements the LabelRepository interface
type LabelRepository struct {
	q queryable
}

// newLabelRepositoryWithTx creates a new label repository with a transaction
func newLabelRepositoryWithTx(tx queryable) *LabelRepository {
	return &LabelRepository{q: tx}
}

// BulkInsert copies churn labels into the churn_labels table
func (r *LabelRepository) BulkInsert(ctx context.Context, runID uuid.UUID, labels []models.Label) (int64, error) {
	id := pgUUID(runID)
	src := pgx.CopyFromSlice(len(labels), func(i int) ([]any, error) {
		l := labels[i]
		return []any{
			id,
			l.CustomerID,
			l.Churned,
			l.ChurnDate,
			nullableString(l.ChurnReason),
		}, nil
	})

	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"churn_labels"}, labelColumns, src)
	if err != nil {
		return 0, fmt.Errorf("failed to copy churn labels: %w", err)
	}
	return n, nil
}
