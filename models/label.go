package models

import (
	"time"
)

// Label holds the churn outcome for a customer
type Label struct {
	CustomerID  string       `db:"customer_id"`
	Churned     bool         `db:"churned"`
	ChurnDate   *time.Time   `db:"churn_date"`   // Set only when Churned
	ChurnReason *ChurnReason `db:"churn_reason"` // Set only when Churned
}

// EffectiveEnd returns the last date the customer can produce activity:
// the churn date for churned customers, windowEnd otherwise
func (l *Label) EffectiveEnd(windowEnd time.Time) time.Time {
	if l != nil && l.Churned && l.ChurnDate != nil {
		return *l.ChurnDate
	}
	return windowEnd
}

// ChurnReason is the recorded cause of a customer leaving
type ChurnReason string

const (
	ChurnReasonPrice       ChurnReason = "Price"
	ChurnReasonService     ChurnReason = "Service"
	ChurnReasonFinancial   ChurnReason = "Financial"
	ChurnReasonCompetition ChurnReason = "Competition"
	ChurnReasonLifeChange  ChurnReason = "Life_Change"
	ChurnReasonUnknown     ChurnReason = "Unknown"
)

// String returns the string representation of the churn reason
func (r ChurnReason) String() string {
	return string(r)
}
