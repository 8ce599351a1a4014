package service

import (
	"fmt"
	"time"

	"churnsynth/models"
	"churnsynth/sampling"
)

const (
	maxDaysLate         = 30
	missedFailureChance = 0.3

	inquiryChance     = 0.1
	maxInquiryLagDays = 20
)

// MissProbability returns the chance a due premium is paid late
func MissProbability(method models.PaymentMethod, churned bool) float64 {
	switch {
	case method.IsAutomatic() && !churned:
		return 0.02
	case method.IsAutomatic() && churned:
		return 0.15
	case !churned:
		return 0.08
	default:
		return 0.30
	}
}

// TransactionGenerator walks each policy's billing schedule and records payment events
type TransactionGenerator struct {
	sampler *sampling.Sampler
	window  models.ObservationWindow
}

// NewTransactionGenerator creates a new transaction generator
func NewTransactionGenerator(sampler *sampling.Sampler, window models.ObservationWindow) *TransactionGenerator {
	return &TransactionGenerator{sampler: sampler, window: window}
}

// Generate returns the transactions of every policy, grouped by policy in policy order
func (g *TransactionGenerator) Generate(customers []models.Customer, policies []models.Policy, labels []models.Label) ([]models.Transaction, error) {
	known := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		known[c.CustomerID] = struct{}{}
	}
	labelsByCustomer := indexLabels(labels)

	var transactions []models.Transaction
	for _, p := range policies {
		if _, ok := known[p.CustomerID]; !ok {
			return nil, fmt.Errorf("policy references unknown customer %s", p.CustomerID)
		}
		label, ok := labelsByCustomer[p.CustomerID]
		if !ok {
			return nil, fmt.Errorf("no label for customer %s", p.CustomerID)
		}
		transactions = g.appendPolicy(transactions, p, label)
	}
	return transactions, nil
}

// GenerateForPolicy walks a single policy's schedule
func (g *TransactionGenerator) GenerateForPolicy(policy models.Policy, label *models.Label) []models.Transaction {
	return g.appendPolicy(nil, policy, label)
}

func (g *TransactionGenerator) appendPolicy(out []models.Transaction, p models.Policy, label *models.Label) []models.Transaction {
	churned := label != nil && label.Churned
	end := label.EffectiveEnd(g.window.End)
	cycle := p.PremiumFrequency.CycleDays()
	amount := models.RoundCents(p.MonthlyPremium * float64(p.PremiumFrequency.MonthsPerCycle()))
	missProbability := MissProbability(p.PaymentMethod, churned)

	for cursor := p.StartDate; cursor.Before(end); {
		due := cursor.AddDate(0, 0, cycle)
		if due.After(end) {
			break
		}

		premium := g.premium(p.CustomerID, due, end, amount, missProbability)
		out = append(out, premium)

		if g.sampler.Bernoulli(inquiryChance) {
			inquiryDate := premium.Date.AddDate(0, 0, g.sampler.IntBetween(1, maxInquiryLagDays))
			if inquiryDate.Before(end) {
				out = append(out, models.Transaction{
					CustomerID:    p.CustomerID,
					Date:          inquiryDate,
					Type:          models.TransactionTypeInquiry,
					Amount:        0,
					PaymentStatus: models.PaymentStatusSuccess,
					DaysOverdue:   0,
				})
			}
		}

		// The walk follows due dates, not the dates payments actually landed
		cursor = due
	}

	return out
}

func (g *TransactionGenerator) premium(customerID string, due, end time.Time, amount, missProbability float64) models.Transaction {
	tx := models.Transaction{
		CustomerID:    customerID,
		Date:          due,
		Type:          models.TransactionTypePremium,
		Amount:        amount,
		PaymentStatus: models.PaymentStatusSuccess,
	}

	if !g.sampler.Bernoulli(missProbability) {
		return tx
	}

	tx.DaysOverdue = g.sampler.IntBetween(1, maxDaysLate)
	tx.Date = due.AddDate(0, 0, tx.DaysOverdue)
	if g.sampler.Bernoulli(missedFailureChance) {
		tx.PaymentStatus = models.PaymentStatusFailed
	}

	// Nothing is dated past the effective end; the sampled outcome stands
	if tx.Date.After(end) {
		tx.Date = end
	}

	return tx
}

func indexLabels(labels []models.Label) map[string]*models.Label {
	index := make(map[string]*models.Label, len(labels))
	for i := range labels {
		index[labels[i].CustomerID] = &labels[i]
	}
	return index
}

func indexPolicies(policies []models.Policy) map[string]*models.Policy {
	index := make(map[string]*models.Policy, len(policies))
	for i := range policies {
		index[policies[i].CustomerID] = &policies[i]
	}
	return index
}
