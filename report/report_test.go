package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"churnsynth/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	ds := testutil.CreateTestDataset()

	s := Summarize(ds)

	assert.Equal(t, ds.RunID, s.RunID)
	assert.Equal(t, 2, s.Customers)
	assert.Equal(t, 1, s.Churned)
	assert.InDelta(t, 0.5, s.ChurnRate, 1e-9)

	require.Len(t, s.ChurnReasons, 6)
	assert.Equal(t, Count{Label: "Price", Count: 0}, s.ChurnReasons[0])
	assert.Equal(t, Count{Label: "Life_Change", Count: 1}, s.ChurnReasons[4])

	assert.Equal(t, []Count{{Label: "Term", Count: 1}, {Label: "Whole", Count: 1}}, s.PolicyTypes)
	assert.Equal(t, []Count{{Label: "AutoPay", Count: 1}, {Label: "Manual", Count: 1}}, s.PaymentMethods)
	assert.InDelta(t, 124.585, s.AvgMonthlyPremium, 1e-6)

	assert.Equal(t, 5, s.Transactions)
	assert.Equal(t, 4, s.Premiums)
	assert.Equal(t, 1, s.Inquiries)
	assert.Equal(t, 1, s.FailedPayments)
	assert.InDelta(t, 2.4, s.AvgDaysOverdue, 1e-9)

	assert.Equal(t, 1, s.MobileAppUsers)
	assert.InDelta(t, 0.5, s.MobileAppRate, 1e-9)
	assert.InDelta(t, 0.335, s.AvgEmailOpenRate, 1e-9)
	assert.InDelta(t, 2.5, s.AvgServiceCalls, 1e-9)
}

func TestSummarize_GeneratedDataset(t *testing.T) {
	ds := testutil.GenerateTestDataset(t, 200, 0.25)

	s := Summarize(ds)

	assert.Equal(t, 200, s.Customers)
	assert.Equal(t, 50, s.Churned)

	reasons := 0
	for _, c := range s.ChurnReasons {
		reasons += c.Count
	}
	assert.Equal(t, s.Churned, reasons)

	policies := 0
	for i, c := range s.PolicyTypes {
		policies += c.Count
		if i > 0 {
			assert.GreaterOrEqual(t, s.PolicyTypes[i-1].Count, c.Count)
		}
	}
	assert.Equal(t, 200, policies)
	assert.Equal(t, len(ds.Transactions), s.Premiums+s.Inquiries)
}

func TestSummarize_EmptyDataset(t *testing.T) {
	ds := testutil.CreateTestDataset()
	ds.Customers = nil
	ds.Labels = nil
	ds.Policies = nil
	ds.Transactions = nil
	ds.Engagements = nil

	s := Summarize(ds)

	assert.Zero(t, s.ChurnRate)
	assert.Zero(t, s.AvgDaysOverdue)
	assert.Zero(t, s.AvgEmailOpenRate)
	assert.Empty(t, s.PolicyTypes)
}

func TestPrint(t *testing.T) {
	s := Summarize(testutil.CreateTestDataset())

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "DATASET STATISTICS")
	assert.Contains(t, out, "- Total customers: 2")
	assert.Contains(t, out, "- Churn rate: 50.0%")
	assert.Contains(t, out, "Life_Change")
	assert.Contains(t, out, "- Failed payments: 1")
	assert.Contains(t, out, "- Average days overdue: 2.40")
	assert.Contains(t, out, "- Mobile app users: 1 (50.0%)")
	assert.Contains(t, out, "- Avg CS calls per customer: 2.50")
}

func TestPrint_GroupsThousands(t *testing.T) {
	s := Summary{Customers: 12345, Transactions: 1234567}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, s))

	assert.Contains(t, buf.String(), "- Total customers: 12,345")
	assert.Contains(t, buf.String(), "- Total transactions: 1,234,567")
}

func TestChartRenderer_Render(t *testing.T) {
	s := Summarize(testutil.CreateTestDataset())

	png, err := NewChartRenderer().Render(s)
	require.NoError(t, err)

	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), png[:8])
}

func TestChartRenderer_RenderEmpty(t *testing.T) {
	png, err := NewChartRenderer().Render(Summary{})
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestWriteChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.png")

	require.NoError(t, WriteChart(path, Summarize(testutil.CreateTestDataset())))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestPrintPreview(t *testing.T) {
	ds := testutil.CreateTestDataset()

	var buf bytes.Buffer
	require.NoError(t, PrintPreview(&buf, ds, 1))
	out := buf.String()

	assert.Contains(t, out, "Customer Info (first 1 rows):")
	assert.Contains(t, out, "Policy Data (first 1 rows):")
	assert.Contains(t, out, "Transactions (first 2 rows):")
	assert.Contains(t, out, "Engagement (first 1 rows):")
	assert.Contains(t, out, "Labels (churned customers):")

	// Only the churned customer appears under labels
	labels := out[strings.Index(out, "Labels (churned customers):"):]
	assert.Contains(t, labels, "CUST_000002")
	assert.NotContains(t, labels, "CUST_000001")
	assert.Contains(t, labels, "Life_Change")

	// Two transactions shown, the third is not
	transactions := out[strings.Index(out, "Transactions"):strings.Index(out, "Engagement")]
	assert.Contains(t, transactions, "2023-09-10")
	assert.NotContains(t, transactions, "2023-11-28")
}

func TestPrintPreview_Disabled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintPreview(&buf, testutil.CreateTestDataset(), 0))
	assert.Empty(t, buf.String())
}
