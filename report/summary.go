// Package report summarizes generated datasets for humans.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"churnsynth/models"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Count is one bar of a distribution
type Count struct {
	Label string
	Count int
}

// Summary holds the headline statistics of a dataset
type Summary struct {
	RunID     uuid.UUID
	Customers int
	Churned   int
	ChurnRate float64

	ChurnReasons   []Count
	PolicyTypes    []Count
	PaymentMethods []Count

	AvgMonthlyPremium float64

	Transactions   int
	Premiums       int
	Inquiries      int
	FailedPayments int
	AvgDaysOverdue float64

	MobileAppUsers   int
	MobileAppRate    float64
	AvgEmailOpenRate float64
	AvgServiceCalls  float64
}

var churnReasonOrder = []models.ChurnReason{
	models.ChurnReasonPrice,
	models.ChurnReasonService,
	models.ChurnReasonFinancial,
	models.ChurnReasonCompetition,
	models.ChurnReasonLifeChange,
	models.ChurnReasonUnknown,
}

// Summarize computes the summary of a dataset
func Summarize(ds *models.Dataset) Summary {
	s := Summary{
		RunID:     ds.RunID,
		Customers: len(ds.Customers),
		Churned:   ds.ChurnedCount(),
	}
	s.ChurnRate = ratio(s.Churned, s.Customers)

	reasons := make(map[string]int)
	for _, l := range ds.Labels {
		if l.ChurnReason != nil {
			reasons[string(*l.ChurnReason)]++
		}
	}
	for _, r := range churnReasonOrder {
		s.ChurnReasons = append(s.ChurnReasons, Count{Label: string(r), Count: reasons[string(r)]})
	}

	policyTypes := make(map[string]int)
	paymentMethods := make(map[string]int)
	var premiumSum float64
	for _, p := range ds.Policies {
		policyTypes[string(p.PolicyType)]++
		paymentMethods[string(p.PaymentMethod)]++
		premiumSum += p.MonthlyPremium
	}
	s.PolicyTypes = valueCounts(policyTypes)
	s.PaymentMethods = valueCounts(paymentMethods)
	if len(ds.Policies) > 0 {
		s.AvgMonthlyPremium = premiumSum / float64(len(ds.Policies))
	}

	s.Transactions = len(ds.Transactions)
	overdueSum := 0
	for _, t := range ds.Transactions {
		switch t.Type {
		case models.TransactionTypePremium:
			s.Premiums++
		case models.TransactionTypeInquiry:
			s.Inquiries++
		}
		if t.PaymentStatus == models.PaymentStatusFailed {
			s.FailedPayments++
		}
		overdueSum += t.DaysOverdue
	}
	s.AvgDaysOverdue = ratio(overdueSum, s.Transactions)

	var openRateSum float64
	callSum := 0
	for _, e := range ds.Engagements {
		if e.MobileAppUser {
			s.MobileAppUsers++
		}
		openRateSum += e.EmailOpenRate6m
		callSum += e.CustomerServiceCalls12m
	}
	s.MobileAppRate = ratio(s.MobileAppUsers, len(ds.Engagements))
	s.AvgServiceCalls = ratio(callSum, len(ds.Engagements))
	if len(ds.Engagements) > 0 {
		s.AvgEmailOpenRate = openRateSum / float64(len(ds.Engagements))
	}

	return s
}

// valueCounts orders counts from most to least frequent, ties by label
func valueCounts(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for label, n := range m {
		counts = append(counts, Count{Label: label, Count: n})
	}
	slices.SortFunc(counts, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return counts
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// Print writes the summary as a plain text report with grouped thousands
func Print(w io.Writer, s Summary) error {
	p := message.NewPrinter(language.English)
	rule := "=================================================="

	lines := []string{
		"",
		rule,
		"DATASET STATISTICS",
		rule,
		p.Sprintf("Run: %s", s.RunID),
		"",
		"Churn Statistics:",
		p.Sprintf("- Total customers: %d", s.Customers),
		p.Sprintf("- Churned customers: %d", s.Churned),
		p.Sprintf("- Churn rate: %.1f%%", s.ChurnRate*100),
	}
	for _, c := range s.ChurnReasons {
		lines = append(lines, p.Sprintf("  %-12s %d", c.Label, c.Count))
	}

	lines = append(lines, "", "Policy Distribution:")
	for _, c := range s.PolicyTypes {
		lines = append(lines, p.Sprintf("  %-12s %d", c.Label, c.Count))
	}
	lines = append(lines, p.Sprintf("- Average monthly premium: %.2f", s.AvgMonthlyPremium))

	lines = append(lines, "", "Payment Method Distribution:")
	for _, c := range s.PaymentMethods {
		lines = append(lines, p.Sprintf("  %-12s %d", c.Label, c.Count))
	}

	lines = append(lines,
		"",
		"Transaction Summary:",
		p.Sprintf("- Total transactions: %d", s.Transactions),
		p.Sprintf("- Premium payments: %d", s.Premiums),
		p.Sprintf("- Inquiries: %d", s.Inquiries),
		p.Sprintf("- Failed payments: %d", s.FailedPayments),
		p.Sprintf("- Average days overdue: %.2f", s.AvgDaysOverdue),
		"",
		"Engagement Summary:",
		p.Sprintf("- Mobile app users: %d (%.1f%%)", s.MobileAppUsers, s.MobileAppRate*100),
		p.Sprintf("- Avg email open rate: %.1f%%", s.AvgEmailOpenRate*100),
		p.Sprintf("- Avg CS calls per customer: %.2f", s.AvgServiceCalls),
	)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
