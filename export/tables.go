package export

import (
	"strconv"

	"churnsynth/models"
)

// Table is one output table rendered as text records
type Table struct {
	Name   string
	File   string
	Header []string
	Len    int
	Row    func(i int) []string
}

// Tables returns the five dataset tables in output order, formatted the way
// they appear in the CSV files
func Tables(ds *models.Dataset) []Table {
	return []Table{
		customerTable(ds.Customers),
		policyTable(ds.Policies),
		transactionTable(ds.Transactions),
		engagementTable(ds.Engagements),
		labelTable(ds.Labels),
	}
}

func customerTable(customers []models.Customer) Table {
	return Table{
		Name: "customers",
		File: CustomersFile,
		Header: []string{
			"customer_id", "age", "gender", "marital_status", "dependents",
			"income_bracket", "employment_status", "education_level",
		},
		Len: len(customers),
		Row: func(i int) []string {
			c := customers[i]
			return []string{
				c.CustomerID,
				strconv.Itoa(c.Age),
				string(c.Gender),
				string(c.MaritalStatus),
				strconv.Itoa(c.Dependents),
				string(c.IncomeBracket),
				string(c.EmploymentStatus),
				string(c.EducationLevel),
			}
		},
	}
}

func policyTable(policies []models.Policy) Table {
	return Table{
		Name: "policies",
		File: PoliciesFile,
		Header: []string{
			"customer_id", "policy_type", "policy_start_date", "policy_amount",
			"premium_amount", "premium_frequency", "payment_method", "riders",
		},
		Len: len(policies),
		Row: func(i int) []string {
			p := policies[i]
			return []string{
				p.CustomerID,
				string(p.PolicyType),
				p.StartDate.Format(models.DateLayout),
				strconv.FormatInt(p.CoverageAmount, 10),
				models.FormatAmount(p.MonthlyPremium),
				string(p.PremiumFrequency),
				string(p.PaymentMethod),
				strconv.Itoa(p.Riders),
			}
		},
	}
}

func transactionTable(transactions []models.Transaction) Table {
	return Table{
		Name:   "transactions",
		File:   TransactionsFile,
		Header: []string{"customer_id", "transaction_date", "transaction_type", "amount", "payment_status", "days_overdue"},
		Len:    len(transactions),
		Row: func(i int) []string {
			t := transactions[i]
			return []string{
				t.CustomerID,
				t.Date.Format(models.DateLayout),
				string(t.Type),
				models.FormatAmount(t.Amount),
				string(t.PaymentStatus),
				strconv.Itoa(t.DaysOverdue),
			}
		},
	}
}

func engagementTable(engagements []models.Engagement) Table {
	return Table{
		Name: "engagement",
		File: EngagementFile,
		Header: []string{
			"customer_id", "last_login_date", "login_frequency_30d", "mobile_app_user",
			"email_opens_6m", "customer_service_calls_12m", "complaints_filed",
		},
		Len: len(engagements),
		Row: func(i int) []string {
			e := engagements[i]
			mobile := "No"
			if e.MobileAppUser {
				mobile = "Yes"
			}
			return []string{
				e.CustomerID,
				e.LastLoginDate.Format(models.DateLayout),
				strconv.Itoa(e.LoginFrequency30d),
				mobile,
				models.FormatAmount(e.EmailOpenRate6m),
				strconv.Itoa(e.CustomerServiceCalls12m),
				strconv.Itoa(e.ComplaintsFiled),
			}
		},
	}
}

func labelTable(labels []models.Label) Table {
	return Table{
		Name:   "labels",
		File:   LabelsFile,
		Header: []string{"customer_id", "churned", "churn_date", "churn_reason"},
		Len:    len(labels),
		Row: func(i int) []string {
			l := labels[i]
			churned := "0"
			if l.Churned {
				churned = "1"
			}
			var churnDate, reason string
			if l.ChurnDate != nil {
				churnDate = l.ChurnDate.Format(models.DateLayout)
			}
			if l.ChurnReason != nil {
				reason = string(*l.ChurnReason)
			}
			return []string{l.CustomerID, churned, churnDate, reason}
		},
	}
}
