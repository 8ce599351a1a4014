package repository

import (
	"context"
	"fmt"

	"churnsynth/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var customerColumns = []string{
	"run_id", "customer_id", "age", "gender", "marital_status",
	"dependents", "income_bracket", "employment_status", "education_level",
}

// CustomerRepository implements the CustomerRepository interface
type CustomerRepository struct {
	q queryable
}

// newCustomerRepositoryWithTx creates a new customer repository with a transaction
func newCustomerRepositoryWithTx(tx queryable) *CustomerRepository {
	return &CustomerRepository{q: tx}
}

// BulkInsert copies customers into the customers table
func (r *CustomerRepository) BulkInsert(ctx context.Context, runID uuid.UUID, customers []models.Customer) (int64, error) {
	id := pgUUID(runID)
	src := pgx.CopyFromSlice(len(customers), func(i int) ([]any, error) {
		c := customers[i]
		return []any{
			id,
			c.CustomerID,
			c.Age,
			string(c.Gender),
			string(c.MaritalStatus),
			c.Dependents,
			string(c.IncomeBracket),
			string(c.EmploymentStatus),
			string(c.EducationLevel),
		}, nil
	})

	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"customers"}, customerColumns, src)
	if err != nil {
		return 0, fmt.Errorf("failed to copy customers: %w", err)
	}
	return n, nil
}
