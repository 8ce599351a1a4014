package service

import (
	"math"

	"churnsynth/models"
	"churnsynth/sampling"
)

var churnReasonTable = sampling.MustCategorical(
	sampling.Option[models.ChurnReason]{Value: models.ChurnReasonPrice, Probability: 0.25},
	sampling.Option[models.ChurnReason]{Value: models.ChurnReasonService, Probability: 0.15},
	sampling.Option[models.ChurnReason]{Value: models.ChurnReasonFinancial, Probability: 0.20},
	sampling.Option[models.ChurnReason]{Value: models.ChurnReasonCompetition, Probability: 0.15},
	sampling.Option[models.ChurnReason]{Value: models.ChurnReasonLifeChange, Probability: 0.15},
	sampling.Option[models.ChurnReason]{Value: models.ChurnReasonUnknown, Probability: 0.10},
)

// LabelGenerator decides which customers churn, when, and why
type LabelGenerator struct {
	sampler *sampling.Sampler
	window  models.ObservationWindow
}

// NewLabelGenerator creates a new label generator
func NewLabelGenerator(sampler *sampling.Sampler, window models.ObservationWindow) *LabelGenerator {
	return &LabelGenerator{sampler: sampler, window: window}
}

// ChurnTarget returns the exact number of customers that churn
func ChurnTarget(customers int, churnRate float64) int {
	return int(math.Round(float64(customers) * churnRate))
}

// Generate returns one label per customer, in customer order.
// Exactly ChurnTarget(len(customers), churnRate) labels are churned.
func (g *LabelGenerator) Generate(customers []models.Customer, churnRate float64) []models.Label {
	n := len(customers)
	target := ChurnTarget(n, churnRate)

	churned := make([]bool, n)
	for _, idx := range g.sampler.Perm(n)[:target] {
		churned[idx] = true
	}

	labels := make([]models.Label, 0, n)
	for i, c := range customers {
		label := models.Label{CustomerID: c.CustomerID}
		if churned[i] {
			date := g.sampler.DateBetween(g.window.ChurnStart(), g.window.End)
			reason := churnReasonTable.Sample(g.sampler)
			label.Churned = true
			label.ChurnDate = &date
			label.ChurnReason = &reason
		}
		labels = append(labels, label)
	}

	return labels
}
