package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used across every output table
const DateLayout = "2006-01-02"

// runNamespace scopes name-based run ids so they never collide with other UUIDv5 users
var runNamespace = uuid.MustParse("6f1c2a4e-8d3b-5c7a-9e21-4b0f3d6a8c15")

// GenerationParams are the inputs that fully determine a dataset
type GenerationParams struct {
	Customers int       `json:"customers"`
	ChurnRate float64   `json:"churn_rate"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Seed      int64     `json:"seed"`
}

// RunID derives a deterministic run identifier from the parameters
func (p GenerationParams) RunID() uuid.UUID {
	name := p.StartDate.Format(DateLayout) + "|" + p.EndDate.Format(DateLayout) + "|" +
		formatInt(int64(p.Customers)) + "|" + formatFloat(p.ChurnRate) + "|" + formatInt(p.Seed)
	return uuid.NewSHA1(runNamespace, []byte(name))
}

// Dataset is the complete output of one generation run
type Dataset struct {
	RunID        uuid.UUID
	Params       GenerationParams
	Customers    []Customer
	Labels       []Label
	Policies     []Policy
	Transactions []Transaction
	Engagements  []Engagement
}

// RowCounts returns the number of rows per table
func (d *Dataset) RowCounts() RowCounts {
	return RowCounts{
		Customers:    len(d.Customers),
		Labels:       len(d.Labels),
		Policies:     len(d.Policies),
		Transactions: len(d.Transactions),
		Engagements:  len(d.Engagements),
	}
}

// ChurnedCount returns the number of churned customers
func (d *Dataset) ChurnedCount() int {
	count := 0
	for _, l := range d.Labels {
		if l.Churned {
			count++
		}
	}
	return count
}

// RowCounts summarizes table sizes of a dataset
type RowCounts struct {
	Customers    int `json:"customers"`
	Labels       int `json:"labels"`
	Policies     int `json:"policies"`
	Transactions int `json:"transactions"`
	Engagements  int `json:"engagements"`
}

// Total returns the number of rows across all tables
func (c RowCounts) Total() int {
	return c.Customers + c.Labels + c.Policies + c.Transactions + c.Engagements
}

// GenerationRun is the persisted record of a dataset loaded into a database
type GenerationRun struct {
	RunID     uuid.UUID `db:"run_id"`
	Seed      int64     `db:"seed"`
	Customers int       `db:"customers"`
	ChurnRate float64   `db:"churn_rate"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Counts    RowCounts `db:"-"`
}

// NewGenerationRun builds the run record for a dataset
func NewGenerationRun(ds *Dataset) *GenerationRun {
	return &GenerationRun{
		RunID:     ds.RunID,
		Seed:      ds.Params.Seed,
		Customers: ds.Params.Customers,
		ChurnRate: ds.Params.ChurnRate,
		StartDate: ds.Params.StartDate,
		EndDate:   ds.Params.EndDate,
		Counts:    ds.RowCounts(),
	}
}
