package service

import (
	"fmt"
	"math"

	"churnsynth/models"
	"churnsynth/sampling"
)

const (
	coverageStep = 50000

	// Annual premium as a share of coverage, before the age adjustment
	baseAnnualRate = 0.002
	ageFactorBase  = 30
	ageFactorSlope = 0.02

	ridersLambda = 0.5
	maxRiders    = 3
)

type coverageRange struct {
	min, max float64
}

var coverageByIncome = map[models.IncomeBracket]coverageRange{
	models.IncomeBracketLow:      {50000, 150000},
	models.IncomeBracketMedium:   {100000, 300000},
	models.IncomeBracketHigh:     {250000, 750000},
	models.IncomeBracketVeryHigh: {500000, 2000000},
}

var (
	policyTypeTable = sampling.MustCategorical(
		sampling.Option[models.PolicyType]{Value: models.PolicyTypeTerm, Probability: 0.60},
		sampling.Option[models.PolicyType]{Value: models.PolicyTypeWhole, Probability: 0.30},
		sampling.Option[models.PolicyType]{Value: models.PolicyTypeUniversal, Probability: 0.10},
	)
	premiumFrequencyTable = sampling.MustCategorical(
		sampling.Option[models.PremiumFrequency]{Value: models.PremiumFrequencyMonthly, Probability: 0.70},
		sampling.Option[models.PremiumFrequency]{Value: models.PremiumFrequencyQuarterly, Probability: 0.20},
		sampling.Option[models.PremiumFrequency]{Value: models.PremiumFrequencyAnnual, Probability: 0.10},
	)
	paymentMethodTable = sampling.MustCategorical(
		sampling.Option[models.PaymentMethod]{Value: models.PaymentMethodAutoPay, Probability: 0.65},
		sampling.Option[models.PaymentMethod]{Value: models.PaymentMethodManual, Probability: 0.35},
	)
)

// PolicyGenerator samples one policy per customer
type PolicyGenerator struct {
	sampler *sampling.Sampler
	window  models.ObservationWindow
}

// NewPolicyGenerator creates a new policy generator
func NewPolicyGenerator(sampler *sampling.Sampler, window models.ObservationWindow) *PolicyGenerator {
	return &PolicyGenerator{sampler: sampler, window: window}
}

// Generate returns one policy per customer, in customer order
func (g *PolicyGenerator) Generate(customers []models.Customer) ([]models.Policy, error) {
	policies := make([]models.Policy, 0, len(customers))
	for _, c := range customers {
		coverage, err := g.coverage(c.IncomeBracket)
		if err != nil {
			return nil, fmt.Errorf("failed to generate policy for %s: %w", c.CustomerID, err)
		}

		policies = append(policies, models.Policy{
			CustomerID:       c.CustomerID,
			PolicyType:       policyTypeTable.Sample(g.sampler),
			StartDate:        g.sampler.DateBetween(g.window.Start, g.window.LatestPolicyStart()),
			CoverageAmount:   coverage,
			MonthlyPremium:   MonthlyPremium(coverage, c.Age),
			PremiumFrequency: premiumFrequencyTable.Sample(g.sampler),
			PaymentMethod:    paymentMethodTable.Sample(g.sampler),
			Riders:           sampling.ClampInt(g.sampler.Poisson(ridersLambda), 0, maxRiders),
		})
	}
	return policies, nil
}

// coverage draws an amount from the bracket's range, rounded to the nearest step
func (g *PolicyGenerator) coverage(bracket models.IncomeBracket) (int64, error) {
	r, ok := coverageByIncome[bracket]
	if !ok {
		return 0, fmt.Errorf("unknown income bracket %q", bracket)
	}
	amount := g.sampler.Uniform(r.min, r.max)
	return int64(math.RoundToEven(amount/coverageStep)) * coverageStep, nil
}

// AgeFactor scales the premium by 2% per year of age above 30.
// It stays positive for every age the customer generator can produce.
func AgeFactor(age int) float64 {
	return 1 + float64(age-ageFactorBase)*ageFactorSlope
}

// MonthlyPremium derives the monthly premium from coverage and age, rounded to cents.
// The value is monthly regardless of the policy's billing frequency.
func MonthlyPremium(coverage int64, age int) float64 {
	annual := float64(coverage) * baseAnnualRate * AgeFactor(age)
	return models.RoundCents(annual / 12)
}
