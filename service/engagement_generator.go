package service

import (
	"fmt"

	"churnsynth/models"
	"churnsynth/sampling"
)

// engagementProfile holds the distribution parameters for one churn cohort
type engagementProfile struct {
	loginLambda      float64
	emailAlpha       float64
	emailBeta        float64
	callsLambda      float64
	complaintsLambda float64
	mobileAppChance  float64
}

var (
	churnedProfile = engagementProfile{
		loginLambda:      0.5,
		emailAlpha:       2,
		emailBeta:        8,
		callsLambda:      2.5,
		complaintsLambda: 0.8,
		mobileAppChance:  0.20,
	}
	retainedProfile = engagementProfile{
		loginLambda:      2,
		emailAlpha:       5,
		emailBeta:        5,
		callsLambda:      0.8,
		complaintsLambda: 0.1,
		mobileAppChance:  0.45,
	}
)

// EngagementGenerator samples engagement metrics conditioned on churn status
type EngagementGenerator struct {
	sampler *sampling.Sampler
	window  models.ObservationWindow
}

// NewEngagementGenerator creates a new engagement generator
func NewEngagementGenerator(sampler *sampling.Sampler, window models.ObservationWindow) *EngagementGenerator {
	return &EngagementGenerator{sampler: sampler, window: window}
}

// Generate returns one engagement row per customer, in customer order
func (g *EngagementGenerator) Generate(customers []models.Customer, policies []models.Policy, labels []models.Label) ([]models.Engagement, error) {
	policiesByCustomer := indexPolicies(policies)
	labelsByCustomer := indexLabels(labels)

	engagements := make([]models.Engagement, 0, len(customers))
	for _, c := range customers {
		policy, ok := policiesByCustomer[c.CustomerID]
		if !ok {
			return nil, fmt.Errorf("no policy for customer %s", c.CustomerID)
		}
		label, ok := labelsByCustomer[c.CustomerID]
		if !ok {
			return nil, fmt.Errorf("no label for customer %s", c.CustomerID)
		}
		engagements = append(engagements, g.engagement(c.CustomerID, policy, label))
	}
	return engagements, nil
}

func (g *EngagementGenerator) engagement(customerID string, policy *models.Policy, label *models.Label) models.Engagement {
	s := g.sampler
	profile := retainedProfile
	if label.Churned {
		profile = churnedProfile
	}

	return models.Engagement{
		CustomerID:              customerID,
		LoginFrequency30d:       s.Poisson(profile.loginLambda),
		EmailOpenRate6m:         models.RoundCents(s.Beta(profile.emailAlpha, profile.emailBeta)),
		CustomerServiceCalls12m: s.Poisson(profile.callsLambda),
		ComplaintsFiled:         s.Poisson(profile.complaintsLambda),
		LastLoginDate:           s.DateBetween(policy.StartDate, g.window.End),
		MobileAppUser:           s.Bernoulli(profile.mobileAppChance),
	}
}
