package models

import (
	"time"
)

// Transaction is a single premium payment or customer inquiry event
type Transaction struct {
	CustomerID    string          `db:"customer_id"`
	Date          time.Time       `db:"transaction_date"`
	Type          TransactionType `db:"transaction_type"`
	Amount        float64         `db:"amount"`
	PaymentStatus PaymentStatus   `db:"payment_status"`
	DaysOverdue   int             `db:"days_overdue"`
}

// TransactionType represents the kind of event recorded against a policy
type TransactionType string

const (
	TransactionTypePremium TransactionType = "Premium"
	TransactionTypeInquiry TransactionType = "Inquiry"
)

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}

// PaymentStatus is the final outcome of a transaction
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "Success"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// IsLate returns true if the transaction settled after its due date
func (t Transaction) IsLate() bool {
	return t.DaysOverdue > 0
}
