package models

import (
	"time"
)

// Policy represents the life-insurance contract held by a customer
type Policy struct {
	CustomerID       string           `db:"customer_id"`
	PolicyType       PolicyType       `db:"policy_type"`
	StartDate        time.Time        `db:"policy_start_date"`
	CoverageAmount   int64            `db:"policy_amount"`
	MonthlyPremium   float64          `db:"premium_amount"`
	PremiumFrequency PremiumFrequency `db:"premium_frequency"`
	PaymentMethod    PaymentMethod    `db:"payment_method"`
	Riders           int              `db:"riders"`
}

// PolicyType of a life-insurance policy
type PolicyType string

const (
	PolicyTypeTerm      PolicyType = "Term"
	PolicyTypeWhole     PolicyType = "Whole"
	PolicyTypeUniversal PolicyType = "Universal"
)

// PremiumFrequency is the billing cycle of a policy
type PremiumFrequency string

const (
	PremiumFrequencyMonthly   PremiumFrequency = "Monthly"
	PremiumFrequencyQuarterly PremiumFrequency = "Quarterly"
	PremiumFrequencyAnnual    PremiumFrequency = "Annual"
)

// CycleDays returns the number of days between two due dates
func (f PremiumFrequency) CycleDays() int {
	switch f {
	case PremiumFrequencyQuarterly:
		return 90
	case PremiumFrequencyAnnual:
		return 365
	default:
		return 30
	}
}

// MonthsPerCycle returns how many monthly premiums are billed per due date
func (f PremiumFrequency) MonthsPerCycle() int {
	switch f {
	case PremiumFrequencyQuarterly:
		return 3
	case PremiumFrequencyAnnual:
		return 12
	default:
		return 1
	}
}

// PaymentMethod of a policy
type PaymentMethod string

const (
	PaymentMethodAutoPay PaymentMethod = "AutoPay"
	PaymentMethodManual  PaymentMethod = "Manual"
)

// IsAutomatic returns true if premiums are collected without customer action
func (m PaymentMethod) IsAutomatic() bool {
	return m == PaymentMethodAutoPay
}
