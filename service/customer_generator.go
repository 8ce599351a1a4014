package service

import (
	"churnsynth/models"
	"churnsynth/sampling"
)

const (
	ageMean   = 45.0
	ageStdDev = 12.0
	minAge    = 25
	maxAge    = 75

	dependentsLambda = 1.5
	maxDependents    = 6
)

var (
	genderTable = sampling.MustCategorical(
		sampling.Option[models.Gender]{Value: models.GenderMale, Probability: 0.52},
		sampling.Option[models.Gender]{Value: models.GenderFemale, Probability: 0.48},
	)
	maritalStatusTable = sampling.MustCategorical(
		sampling.Option[models.MaritalStatus]{Value: models.MaritalStatusSingle, Probability: 0.25},
		sampling.Option[models.MaritalStatus]{Value: models.MaritalStatusMarried, Probability: 0.55},
		sampling.Option[models.MaritalStatus]{Value: models.MaritalStatusDivorced, Probability: 0.15},
		sampling.Option[models.MaritalStatus]{Value: models.MaritalStatusWidowed, Probability: 0.05},
	)
	incomeBracketTable = sampling.MustCategorical(
		sampling.Option[models.IncomeBracket]{Value: models.IncomeBracketLow, Probability: 0.15},
		sampling.Option[models.IncomeBracket]{Value: models.IncomeBracketMedium, Probability: 0.45},
		sampling.Option[models.IncomeBracket]{Value: models.IncomeBracketHigh, Probability: 0.30},
		sampling.Option[models.IncomeBracket]{Value: models.IncomeBracketVeryHigh, Probability: 0.10},
	)
	employmentStatusTable = sampling.MustCategorical(
		sampling.Option[models.EmploymentStatus]{Value: models.EmploymentStatusEmployed, Probability: 0.65},
		sampling.Option[models.EmploymentStatus]{Value: models.EmploymentStatusSelfEmployed, Probability: 0.20},
		sampling.Option[models.EmploymentStatus]{Value: models.EmploymentStatusRetired, Probability: 0.12},
		sampling.Option[models.EmploymentStatus]{Value: models.EmploymentStatusUnemployed, Probability: 0.03},
	)
	educationLevelTable = sampling.MustCategorical(
		sampling.Option[models.EducationLevel]{Value: models.EducationLevelHighSchool, Probability: 0.30},
		sampling.Option[models.EducationLevel]{Value: models.EducationLevelBachelor, Probability: 0.45},
		sampling.Option[models.EducationLevel]{Value: models.EducationLevelMaster, Probability: 0.20},
		sampling.Option[models.EducationLevel]{Value: models.EducationLevelPhD, Probability: 0.05},
	)
)

// CustomerGenerator samples customer demographics
type CustomerGenerator struct {
	sampler *sampling.Sampler
}

// NewCustomerGenerator creates a new customer generator
func NewCustomerGenerator(sampler *sampling.Sampler) *CustomerGenerator {
	return &CustomerGenerator{sampler: sampler}
}

// Generate returns n customers with ids CUST_000001 through CUST_n
func (g *CustomerGenerator) Generate(n int) []models.Customer {
	customers := make([]models.Customer, 0, n)
	for i := 1; i <= n; i++ {
		customers = append(customers, g.customer(i))
	}
	return customers
}

func (g *CustomerGenerator) customer(seq int) models.Customer {
	s := g.sampler

	// Clamp before truncating so the bounds themselves stay reachable
	age := int(sampling.ClampFloat(s.Normal(ageMean, ageStdDev), minAge, maxAge))

	return models.Customer{
		CustomerID:       models.CustomerIDFor(seq),
		Age:              age,
		Gender:           genderTable.Sample(s),
		MaritalStatus:    maritalStatusTable.Sample(s),
		Dependents:       sampling.ClampInt(s.Poisson(dependentsLambda), 0, maxDependents),
		IncomeBracket:    incomeBracketTable.Sample(s),
		EmploymentStatus: employmentStatusTable.Sample(s),
		EducationLevel:   educationLevelTable.Sample(s),
	}
}
