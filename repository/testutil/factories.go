package testutil

import (
	"context"
	"testing"
	"time"

	"churnsynth/models"
	"churnsynth/service"

	"github.com/stretchr/testify/require"
)

// Date returns UTC midnight of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestParams returns generation parameters over the default window
func CreateTestParams(customers int, churnRate float64) models.GenerationParams {
	return models.GenerationParams{
		Customers: customers,
		ChurnRate: churnRate,
		StartDate: Date(2022, time.January, 1),
		EndDate:   Date(2024, time.January, 1),
		Seed:      42,
	}
}

// CreateTestCustomer creates a test customer with default values
func CreateTestCustomer(seq int) models.Customer {
	return models.Customer{
		CustomerID:       models.CustomerIDFor(seq),
		Age:              45,
		Gender:           models.GenderFemale,
		MaritalStatus:    models.MaritalStatusMarried,
		Dependents:       2,
		IncomeBracket:    models.IncomeBracketMedium,
		EmploymentStatus: models.EmploymentStatusSelfEmployed,
		EducationLevel:   models.EducationLevelBachelor,
	}
}

// CreateTestDataset builds a small hand-written dataset: one retained and one churned customer
func CreateTestDataset() *models.Dataset {
	params := CreateTestParams(2, 0.5)

	churnDate := Date(2023, time.November, 20)
	reason := models.ChurnReasonLifeChange

	first := CreateTestCustomer(1)
	second := CreateTestCustomer(2)
	second.Gender = models.GenderMale
	second.IncomeBracket = models.IncomeBracketVeryHigh

	return &models.Dataset{
		RunID:     params.RunID(),
		Params:    params,
		Customers: []models.Customer{first, second},
		Labels: []models.Label{
			{CustomerID: first.CustomerID},
			{CustomerID: second.CustomerID, Churned: true, ChurnDate: &churnDate, ChurnReason: &reason},
		},
		Policies: []models.Policy{
			{
				CustomerID:       first.CustomerID,
				PolicyType:       models.PolicyTypeTerm,
				StartDate:        Date(2023, time.June, 1),
				CoverageAmount:   150000,
				MonthlyPremium:   32.5,
				PremiumFrequency: models.PremiumFrequencyQuarterly,
				PaymentMethod:    models.PaymentMethodAutoPay,
				Riders:           1,
			},
			{
				CustomerID:       second.CustomerID,
				PolicyType:       models.PolicyTypeWhole,
				StartDate:        Date(2023, time.August, 15),
				CoverageAmount:   1000000,
				MonthlyPremium:   216.67,
				PremiumFrequency: models.PremiumFrequencyMonthly,
				PaymentMethod:    models.PaymentMethodManual,
				Riders:           0,
			},
		},
		Transactions: []models.Transaction{
			{CustomerID: first.CustomerID, Date: Date(2023, time.August, 30), Type: models.TransactionTypePremium, Amount: 97.5, PaymentStatus: models.PaymentStatusSuccess},
			{CustomerID: first.CustomerID, Date: Date(2023, time.September, 10), Type: models.TransactionTypeInquiry, Amount: 0, PaymentStatus: models.PaymentStatusSuccess},
			{CustomerID: first.CustomerID, Date: Date(2023, time.November, 28), Type: models.TransactionTypePremium, Amount: 97.5, PaymentStatus: models.PaymentStatusSuccess},
			{CustomerID: second.CustomerID, Date: Date(2023, time.September, 14), Type: models.TransactionTypePremium, Amount: 216.67, PaymentStatus: models.PaymentStatusSuccess},
			{CustomerID: second.CustomerID, Date: Date(2023, time.October, 26), Type: models.TransactionTypePremium, Amount: 216.67, PaymentStatus: models.PaymentStatusFailed, DaysOverdue: 12},
		},
		Engagements: []models.Engagement{
			{CustomerID: first.CustomerID, LastLoginDate: Date(2023, time.December, 18), LoginFrequency30d: 3, MobileAppUser: true, EmailOpenRate6m: 0.55, CustomerServiceCalls12m: 1},
			{CustomerID: second.CustomerID, LastLoginDate: Date(2023, time.October, 2), LoginFrequency30d: 0, MobileAppUser: false, EmailOpenRate6m: 0.12, CustomerServiceCalls12m: 4, ComplaintsFiled: 2},
		},
	}
}

// GenerateTestDataset runs the generation pipeline with default test parameters
func GenerateTestDataset(t *testing.T, customers int, churnRate float64) *models.Dataset {
	t.Helper()
	ds, err := service.NewPipeline(nil).Generate(context.Background(), CreateTestParams(customers, churnRate))
	require.NoError(t, err)
	return ds
}
