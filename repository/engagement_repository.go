package repository

import (
	"context"
	"fmt"

	"churnsynth/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var engagementColumns = []string{
	"run_id", "customer_id", "last_login_date", "login_frequency_30d", "mobile_app_user",
	"email_opens_6m", "customer_service_calls_12m", "complaints_filed",
}

// EngagementRepository implements the EngagementRepository interface
type EngagementRepository struct {
	q queryable
}

// newEngagementRepositoryWithTx creates a new engagement repository with a transaction
func newEngagementRepositoryWithTx(tx queryable) *EngagementRepository {
	return &EngagementRepository{q: tx}
}

// BulkInsert copies engagement metrics into the engagement table
func (r *EngagementRepository) BulkInsert(ctx context.Context, runID uuid.UUID, engagements []models.Engagement) (int64, error) {
	id := pgUUID(runID)
	src := pgx.CopyFromSlice(len(engagements), func(i int) ([]any, error) {
		e := engagements[i]
		return []any{
			id,
			e.CustomerID,
			e.LastLoginDate,
			e.LoginFrequency30d,
			e.MobileAppUser,
			e.EmailOpenRate6m,
			e.CustomerServiceCalls12m,
			e.ComplaintsFiled,
		}, nil
	})

	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"engagement"}, engagementColumns, src)
	if err != nil {
		return 0, fmt.Errorf("failed to copy engagement: %w", err)
	}
	return n, nil
}
