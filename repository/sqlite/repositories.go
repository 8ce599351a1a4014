package sqlite

import (
	"context"
	"fmt"

	"churnsynth/models"

	"github.com/google/uuid"
)

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// insertEach runs one prepared INSERT per row
func insertEach(ctx context.Context, q queryable, query string, n int, args func(i int) []any) (int64, error) {
	stmt, err := q.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return int64(i), err
		}
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return int64(i), fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return int64(n), nil
}

type generationRunRepository struct {
	q queryable
}

func (r *generationRunRepository) Create(ctx context.Context, run *models.GenerationRun) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO generation_runs
		(run_id, seed, customers, churn_rate, start_date, end_date,
		 customer_rows, label_rows, policy_rows, transaction_rows, engagement_rows)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID.String(),
		run.Seed,
		run.Customers,
		run.ChurnRate,
		run.StartDate.Format(models.DateLayout),
		run.EndDate.Format(models.DateLayout),
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

func (r *generationRunRepository) Delete(ctx context.Context, runID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM generation_runs WHERE run_id = ?`, runID.String()); err != nil {
		return fmt.Errorf("failed to delete generation run %s: %w", runID, err)
	}
	return nil
}

func (r *generationRunRepository) CountRows(ctx context.Context, runID uuid.UUID) (models.RowCounts, error) {
	id := runID.String()
	var counts models.RowCounts
	err := r.q.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM customers WHERE run_id = ?),
			(SELECT COUNT(*) FROM churn_labels WHERE run_id = ?),
			(SELECT COUNT(*) FROM policies WHERE run_id = ?),
			(SELECT COUNT(*) FROM transactions WHERE run_id = ?),
			(SELECT COUNT(*) FROM engagement WHERE run_id = ?)`,
		id, id, id, id, id,
	).Scan(&counts.Customers, &counts.Labels, &counts.Policies, &counts.Transactions, &counts.Engagements)
	if err != nil {
		return models.RowCounts{}, fmt.Errorf("failed to count rows for run %s: %w", runID, err)
	}
	return counts, nil
}

type customerRepository struct {
	q queryable
}

func (r *customerRepository) BulkInsert(ctx context.Context, runID uuid.UUID, customers []models.Customer) (int64, error) {
	id := runID.String()
	n, err := insertEach(ctx, r.q, `
		INSERT INTO customers
		(run_id, customer_id, age, gender, marital_status, dependents,
		 income_bracket, employment_status, education_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(customers), func(i int) []any {
			c := customers[i]
			return []any{
				id, c.CustomerID, c.Age, string(c.Gender), string(c.MaritalStatus), c.Dependents,
				string(c.IncomeBracket), string(c.EmploymentStatus), string(c.EducationLevel),
			}
		})
	if err != nil {
		return n, fmt.Errorf("failed to insert customers: %w", err)
	}
	return n, nil
}

type labelRepository struct {
	q queryable
}

func (r *labelRepository) BulkInsert(ctx context.Context, runID uuid.UUID, labels []models.Label) (int64, error) {
	id := runID.String()
	n, err := insertEach(ctx, r.q, `
		INSERT INTO churn_labels (run_id, customer_id, churned, churn_date, churn_reason)
		VALUES (?, ?, ?, ?, ?)`,
		len(labels), func(i int) []any {
			l := labels[i]
			var churnDate, churnReason any
			if l.ChurnDate != nil {
				churnDate = l.ChurnDate.Format(models.DateLayout)
			}
			if l.ChurnReason != nil {
				churnReason = string(*l.ChurnReason)
			}
			return []any{id, l.CustomerID, boolInt(l.Churned), churnDate, churnReason}
		})
	if err != nil {
		return n, fmt.Errorf("failed to insert churn labels: %w", err)
	}
	return n, nil
}

type policyRepository struct {
	q queryable
}

func (r *policyRepository) BulkInsert(ctx context.Context, runID uuid.UUID, policies []models.Policy) (int64, error) {
	id := runID.String()
	n, err := insertEach(ctx, r.q, `
		INSERT INTO policies
		(run_id, customer_id, policy_type, policy_start_date, policy_amount,
		 premium_amount, premium_frequency, payment_method, riders)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(policies), func(i int) []any {
			p := policies[i]
			return []any{
				id, p.CustomerID, string(p.PolicyType), p.StartDate.Format(models.DateLayout), p.CoverageAmount,
				p.MonthlyPremium, string(p.PremiumFrequency), string(p.PaymentMethod), p.Riders,
			}
		})
	if err != nil {
		return n, fmt.Errorf("failed to insert policies: %w", err)
	}
	return n, nil
}

type transactionRepository struct {
	q queryable
}

func (r *transactionRepository) BulkInsert(ctx context.Context, runID uuid.UUID, transactions []models.Transaction) (int64, error) {
	id := runID.String()
	n, err := insertEach(ctx, r.q, `
		INSERT INTO transactions
		(run_id, customer_id, transaction_date, transaction_type, amount, payment_status, days_overdue)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		len(transactions), func(i int) []any {
			t := transactions[i]
			return []any{
				id, t.CustomerID, t.Date.Format(models.DateLayout), string(t.Type),
				t.Amount, string(t.PaymentStatus), t.DaysOverdue,
			}
		})
	if err != nil {
		return n, fmt.Errorf("failed to insert transactions: %w", err)
	}
	return n, nil
}

type engagementRepository struct {
	q queryable
}

func (r *engagementRepository) BulkInsert(ctx context.Context, runID uuid.UUID, engagements []models.Engagement) (int64, error) {
	id := runID.String()
	n, err := insertEach(ctx, r.q, `
		INSERT INTO engagement
		(run_id, customer_id, last_login_date, login_frequency_30d, mobile_app_user,
		 email_opens_6m, customer_service_calls_12m, complaints_filed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		len(engagements), func(i int) []any {
			e := engagements[i]
			return []any{
				id, e.CustomerID, e.LastLoginDate.Format(models.DateLayout), e.LoginFrequency30d,
				boolInt(e.MobileAppUser), e.EmailOpenRate6m, e.CustomerServiceCalls12m, e.ComplaintsFiled,
			}
		})
	if err != nil {
		return n, fmt.Errorf("failed to insert engagement: %w", err)
	}
	return n, nil
}
