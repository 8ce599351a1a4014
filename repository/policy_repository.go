package repository

import (
	"context"
	"fmt"

	"churnsynth/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var policyColumns = []string{
	"run_id", "customer_id", "policy_type", "policy_start_date", "policy_amount",
	"premium_amount", "premium_frequency", "payment_method", "riders",
}

// PolicyRepository implements the PolicyRepository interface
type PolicyRepository struct {
	q queryable
}

// newPolicyRepositoryWithTx creates a new policy repository with a transaction
func newPolicyRepositoryWithTx(tx queryable) *PolicyRepository {
	return &PolicyRepository{q: tx}
}

// BulkInsert copies policies into the policies table
func (r *PolicyRepository) BulkInsert(ctx context.Context, runID uuid.UUID, policies []models.Policy) (int64, error) {
	id := pgUUID(runID)
	src := pgx.CopyFromSlice(len(policies), func(i int) ([]any, error) {
		p := policies[i]
		return []any{
			id,
			p.CustomerID,
			string(p.PolicyType),
			p.StartDate,
			p.CoverageAmount,
			p.MonthlyPremium,
			string(p.PremiumFrequency),
			string(p.PaymentMethod),
			p.Riders,
		}, nil
	})

	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"policies"}, policyColumns, src)
	if err != nil {
		return 0, fmt.Errorf("failed to copy policies: %w", err)
	}
	return n, nil
}
