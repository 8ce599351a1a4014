package service

import (
	"fmt"

	"churnsynth/models"
	"churnsynth/sampling"
)

// DistributionChecks draws every categorical table and Bernoulli event used by
// the generators trials times from s and returns one check per distribution
func DistributionChecks(s *sampling.Sampler, trials int) []sampling.FrequencyCheck {
	checks := []sampling.FrequencyCheck{
		sampling.CheckCategorical("gender", s, genderTable, trials),
		sampling.CheckCategorical("marital_status", s, maritalStatusTable, trials),
		sampling.CheckCategorical("income_bracket", s, incomeBracketTable, trials),
		sampling.CheckCategorical("employment_status", s, employmentStatusTable, trials),
		sampling.CheckCategorical("education_level", s, educationLevelTable, trials),
		sampling.CheckCategorical("churn_reason", s, churnReasonTable, trials),
		sampling.CheckCategorical("policy_type", s, policyTypeTable, trials),
		sampling.CheckCategorical("premium_frequency", s, premiumFrequencyTable, trials),
		sampling.CheckCategorical("payment_method", s, paymentMethodTable, trials),
	}

	for _, method := range []models.PaymentMethod{models.PaymentMethodAutoPay, models.PaymentMethodManual} {
		for _, churned := range []bool{false, true} {
			name := fmt.Sprintf("late_payment[%s,churned=%t]", method, churned)
			checks = append(checks, sampling.CheckBernoulli(name, s, MissProbability(method, churned), trials))
		}
	}

	checks = append(checks,
		sampling.CheckBernoulli("late_payment_failed", s, missedFailureChance, trials),
		sampling.CheckBernoulli("inquiry", s, inquiryChance, trials),
		sampling.CheckBernoulli("mobile_app[churned=false]", s, retainedProfile.mobileAppChance, trials),
		sampling.CheckBernoulli("mobile_app[churned=true]", s, churnedProfile.mobileAppChance, trials),
	)

	return checks
}
