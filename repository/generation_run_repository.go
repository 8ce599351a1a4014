package repository

import (
	"context"
	"fmt"

	"churnsynth/database"
	"churnsynth/models"

	"github.com/google/uuid"
)

// GenerationRunRepository implements the GenerationRunRepository interface
type GenerationRunRepository struct {
	q queryable
}

// NewGenerationRunRepository creates a new generation run repository
func NewGenerationRunRepository(db *database.DB) *GenerationRunRepository {
	return &GenerationRunRepository{q: db.Pool}
}

// newGenerationRunRepositoryWithTx creates a new generation run repository with a transaction
func newGenerationRunRepositoryWithTx(tx queryable) *GenerationRunRepository {
	return &GenerationRunRepository{q: tx}
}

// Create records a generation run along with its table sizes
func (r *GenerationRunRepository) Create(ctx context.Context, run *models.GenerationRun) error {
	query := `
		INSERT INTO generation_runs
		(run_id, seed, customers, churn_rate, start_date, end_date,
		 customer_rows, label_rows, policy_rows, transaction_rows, engagement_rows)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.Exec(ctx, query,
		pgUUID(run.RunID),
		run.Seed,
		run.Customers,
		run.ChurnRate,
		run.StartDate,
		run.EndDate,
		run.Counts.Customers,
		run.Counts.Labels,
		run.Counts.Policies,
		run.Counts.Transactions,
		run.Counts.Engagements,
	)
	if err != nil {
		return fmt.Errorf("failed to create generation run %s: %w", run.RunID, err)
	}

	return nil
}

// Delete removes a run; every table row of the run goes with it
func (r *GenerationRunRepository) Delete(ctx context.Context, runID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM generation_runs WHERE run_id = $1`, pgUUID(runID))
	if err != nil {
		return fmt.Errorf("failed to delete generation run %s: %w", runID, err)
	}
	return nil
}

// CountRows counts the stored rows of a run in every table
func (r *GenerationRunRepository) CountRows(ctx context.Context, runID uuid.UUID) (models.RowCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM customers WHERE run_id = $1),
			(SELECT COUNT(*) FROM churn_labels WHERE run_id = $1),
			(SELECT COUNT(*) FROM policies WHERE run_id = $1),
			(SELECT COUNT(*) FROM transactions WHERE run_id = $1),
			(SELECT COUNT(*) FROM engagement WHERE run_id = $1)
	`

	var counts models.RowCounts
	err := r.q.QueryRow(ctx, query, pgUUID(runID)).Scan(
		&counts.Customers,
		&counts.Labels,
		&counts.Policies,
		&counts.Transactions,
		&counts.Engagements,
	)
	if err != nil {
		return models.RowCounts{}, fmt.Errorf("failed to count rows for run %s: %w", runID, err)
	}

	return counts, nil
}
